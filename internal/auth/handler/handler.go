package handler

import (
	"net/http"

	"auth-gateway/internal/auth/gateway"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/middleware"
	"auth-gateway/internal/session"
	"auth-gateway/internal/user"

	"github.com/gin-gonic/gin"
)

const (
	pathRoot     = "/"
	pathLogin    = "/login"
	pathHomepage = "/homepage"
)

// Handler exposes the gateway over HTTP. Failed logins of any kind go back
// to the login page without saying which factor failed.
type Handler struct {
	gateway *gateway.Gateway
	auth    *middleware.AuthMiddleware
	cookie  session.CookieOptions
}

func NewHandler(gw *gateway.Gateway, cookie session.CookieOptions) *Handler {
	return &Handler{
		gateway: gw,
		auth:    middleware.NewAuthMiddleware(gw, cookie),
		cookie:  cookie,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET(pathRoot, middleware.GinLoadUser(h.auth), h.landing)

	r.GET(pathLogin, h.loginPage)
	r.POST(pathLogin, h.Login)
	r.POST("/signup", h.Register)

	r.GET("/auth/:provider", h.begin)
	r.GET("/auth/:provider/callback", h.callback)

	r.GET("/logout", h.Logout)
	r.POST("/logout", h.Logout)

	r.GET(pathHomepage, middleware.GinRequireLogin(h.auth, pathLogin), h.homepage)

	api := r.Group("/api")
	api.Use(middleware.GinRequireAuth(h.auth))
	api.GET("/me", h.me)

	for _, route := range r.Routes() {
		logger.Debug("route registered", map[string]any{
			"method": route.Method,
			"path":   route.Path,
		})
	}
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func viewOf(u *user.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (h *Handler) landing(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, pathHomepage)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "unauthenticated",
		"providers": h.gateway.Providers(),
	})
}

func (h *Handler) homepage(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"status": "authenticated",
		"user":   viewOf(u),
	})
}

func (h *Handler) me(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, viewOf(u))
}

// Logout revokes the presented session, clears the cookie and sends the
// client to the root page. Without a session it just redirects.
func (h *Handler) Logout(c *gin.Context) {
	token := session.ReadCookie(c.Request, h.cookie)

	if err := h.gateway.Logout(c.Request.Context(), token); err != nil {
		internalError(c)
		return
	}

	session.ClearCookie(c.Writer, h.cookie)
	c.Redirect(http.StatusFound, pathRoot)
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
