package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"auth-gateway/internal/config"
)

const readHeaderTimeout = 10 * time.Second

type App struct {
	httpServer *http.Server
	infra      *Infra
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, err
	}

	router, err := setupHTTP(ctx, cfg, infra)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return &App{
		httpServer: server,
		infra:      infra,
	}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run serves until Shutdown is called.
func (a *App) Run() error {
	if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return a.infra.Close()
}
