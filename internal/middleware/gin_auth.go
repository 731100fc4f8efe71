package middleware

import (
	"net/http"

	"auth-gateway/internal/user"

	"github.com/gin-gonic/gin"
)

// Gin adapts net/http middleware to a Gin handler. If the middleware
// answers the request itself, the Gin chain stops there.
func Gin(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			c.Request = r
			c.Next()
		})

		mw(next).ServeHTTP(c.Writer, c.Request)

		if !called {
			c.Abort()
		}
	}
}

// GinRequireAuth responds 401 to requests without a valid session.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return Gin(auth.RequireAuth)
}

// GinRequireLogin redirects requests without a valid session to loginPath.
func GinRequireLogin(auth *AuthMiddleware, loginPath string) gin.HandlerFunc {
	return Gin(auth.RequireLogin(loginPath))
}

// GinLoadUser attaches the session user when there is one.
func GinLoadUser(auth *AuthMiddleware) gin.HandlerFunc {
	return Gin(auth.LoadUser)
}

// CurrentUser returns the user attached to the Gin request.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	return UserFromContext(c.Request.Context())
}
