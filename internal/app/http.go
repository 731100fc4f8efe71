package app

import (
	"context"
	"net/http"

	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/auth/gateway"
	"auth-gateway/internal/auth/handler"
	"auth-gateway/internal/auth/provider"
	"auth-gateway/internal/auth/provider/facebook"
	"auth-gateway/internal/auth/provider/google"
	"auth-gateway/internal/auth/resolver"
	"auth-gateway/internal/auth/strategy"
	"auth-gateway/internal/config"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/metrics"
	"auth-gateway/internal/middleware"
	"auth-gateway/internal/session"
	"auth-gateway/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func setupHTTP(ctx context.Context, cfg config.Config, infra *Infra) (*gin.Engine, error) {
	// ----------------------------
	// Dependencies
	// ----------------------------

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(infra.DB.DB, "users"),
	)
	m := metrics.New(registry)

	users := user.NewBunStore(infra.DB, cfg.DBQueryTimeout)
	hasher := credentials.NewHasher(cfg.BcryptCost, cfg.HashConcurrency)
	sessions := session.NewManager(infra.Sessions, users, []byte(cfg.SessionSecret), cfg.SessionTTL)

	providers, err := setupProviders(ctx, cfg)
	if err != nil {
		return nil, err
	}

	identityResolver := resolver.NewStoreResolver(users)
	strategies := []strategy.Strategy{strategy.NewLocal(users, hasher)}
	for _, p := range providers {
		strategies = append(strategies, strategy.NewFederated(p, identityResolver))
	}

	gw := gateway.New(
		strategy.NewRegistry(strategies...),
		sessions,
		credentials.NewService(users, hasher),
		m,
	)

	authHandler := handler.NewHandler(gw, session.CookieOptions{
		Name:   cfg.SessionCookieName,
		Secure: cfg.SessionCookieSecure,
		MaxAge: cfg.SessionTTL,
	})

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinMetrics(m))

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		if err := infra.DB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(m.Handler()))

	return router, nil
}

// setupProviders builds the identity providers whose credentials are
// configured. A provider with partial configuration is skipped.
func setupProviders(ctx context.Context, cfg config.Config) ([]provider.OAuthProvider, error) {
	var providers []provider.OAuthProvider

	if cfg.GoogleEnabled() {
		p, err := google.New(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	if cfg.FacebookEnabled() {
		p, err := facebook.New(facebook.Config{
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			RedirectURL:  cfg.FacebookRedirectURL,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	logger.Info("identity providers configured", map[string]any{"providers": names})

	return providers, nil
}
