package middleware

import (
	"context"
	"errors"
	"net/http"

	"auth-gateway/internal/logger"
	"auth-gateway/internal/session"
	"auth-gateway/internal/user"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// UserFromContext returns the authenticated user attached by the
// middleware.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userKey).(*user.User)
	return u, ok && u != nil
}

// WithUser attaches u to ctx.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// Resumer maps a presented session token back to its user.
type Resumer interface {
	Resume(ctx context.Context, token string) (*user.User, error)
}

// AuthMiddleware re-enters an active session on every request. It never
// runs an authentication strategy.
type AuthMiddleware struct {
	sessions Resumer
	cookie   session.CookieOptions
}

func NewAuthMiddleware(sessions Resumer, cookie session.CookieOptions) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cookie: cookie}
}

// authenticate resolves the request's session cookie. A nil user with a
// nil error means the request is unauthenticated.
func (a *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*user.User, error) {
	token := session.ReadCookie(r, a.cookie)
	if token == "" {
		return nil, nil
	}

	u, err := a.sessions.Resume(r.Context(), token)
	if errors.Is(err, session.ErrInvalidSession) {
		// stale or forged cookie; stop the client from sending it again
		session.ClearCookie(w, a.cookie)
		return nil, nil
	}
	return u, err
}

func (a *AuthMiddleware) guard(deny http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := a.authenticate(w, r)
			if err != nil {
				logger.Error("session lookup failed", map[string]any{
					"path":  r.URL.Path,
					"error": err.Error(),
				})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if u == nil {
				deny.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireAuth answers unauthenticated requests with 401.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return a.guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))(next)
}

// RequireLogin redirects unauthenticated requests to loginPath.
func (a *AuthMiddleware) RequireLogin(loginPath string) func(http.Handler) http.Handler {
	return a.guard(http.RedirectHandler(loginPath, http.StatusFound))
}

// LoadUser attaches the user when a valid session is presented and lets
// every request through.
func (a *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := a.authenticate(w, r)
		if err != nil {
			logger.Warn("session lookup failed", map[string]any{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
		}
		if u != nil {
			r = r.WithContext(WithUser(r.Context(), u))
		}
		next.ServeHTTP(w, r)
	})
}
