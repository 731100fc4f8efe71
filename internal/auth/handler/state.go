package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"auth-gateway/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	stateCookieName = "__oauth_state"
	stateTTL        = 5 * time.Minute
	stateBytes      = 32
)

// generateState creates the anti-CSRF state for one federated login and
// stores it in a short-lived cookie scoped to the callback path.
func (h *Handler) generateState(c *gin.Context) (string, error) {
	state, err := utils.RandomString(stateBytes)
	if err != nil {
		return "", err
	}
	h.setFlowCookie(c, stateCookieName, state, stateTTL)
	return state, nil
}

// validateState checks the callback's state against the cookie and
// consumes the cookie either way.
func (h *Handler) validateState(c *gin.Context) bool {
	stateQuery := c.Query("state")
	cookie, err := c.Request.Cookie(stateCookieName)
	h.clearFlowCookie(c, stateCookieName)

	if stateQuery == "" || err != nil || cookie.Value == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(stateQuery)) == 1
}

func (h *Handler) setFlowCookie(c *gin.Context, name, value string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

func (h *Handler) clearFlowCookie(c *gin.Context, name string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
