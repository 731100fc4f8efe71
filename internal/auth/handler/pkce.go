package handler

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"auth-gateway/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	pkceCookieName = "__oauth_pkce"
	pkceTTL        = 5 * time.Minute

	// 32 bytes encode to a 43 character verifier, the RFC 7636 minimum
	pkceVerifierBytes = 32
)

// generatePKCE creates a verifier, keeps it in a cookie for the callback
// and returns the S256 challenge for the authorization URL.
func (h *Handler) generatePKCE(c *gin.Context) (challenge string, err error) {
	verifier, err := utils.RandomString(pkceVerifierBytes)
	if err != nil {
		return "", err
	}
	h.setFlowCookie(c, pkceCookieName, verifier, pkceTTL)
	return pkceChallenge(verifier), nil
}

func pkceChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// takePKCEVerifier returns the verifier cookie and clears it.
func (h *Handler) takePKCEVerifier(c *gin.Context) string {
	cookie, err := c.Request.Cookie(pkceCookieName)
	h.clearFlowCookie(c, pkceCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
