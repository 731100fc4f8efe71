package handler

import (
	"errors"
	"net/http"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/auth/strategy"
	"auth-gateway/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) begin(c *gin.Context) {
	providerName := c.Param("provider")

	state, err := h.generateState(c)
	if err != nil {
		logger.Error("failed to generate oauth state", map[string]any{"error": err.Error()})
		internalError(c)
		return
	}
	challenge, err := h.generatePKCE(c)
	if err != nil {
		logger.Error("failed to generate pkce verifier", map[string]any{"error": err.Error()})
		internalError(c)
		return
	}

	authURL, err := h.gateway.BeginFederated(providerName, state, challenge)
	if errors.Is(err, auth.ErrNoSuchStrategy) {
		h.clearFlowCookie(c, stateCookieName)
		h.clearFlowCookie(c, pkceCookieName)
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider"})
		return
	}
	if err != nil {
		internalError(c)
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	stateOK := h.validateState(c)
	verifier := h.takePKCEVerifier(c)

	if !stateOK {
		logger.Warn("oauth callback state mismatch", map[string]any{
			"provider": providerName,
		})
		c.Redirect(http.StatusFound, pathLogin)
		return
	}

	// denied consent or a provider-side failure
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, pathLogin)
		return
	}

	if verifier == "" {
		logger.Warn("oauth callback missing pkce verifier", map[string]any{
			"provider": providerName,
		})
		c.Redirect(http.StatusFound, pathLogin)
		return
	}

	res, err := h.gateway.Authenticate(
		c.Request.Context(),
		providerName,
		strategy.CallbackEvidence{Code: c.Query("code"), CodeVerifier: verifier},
	)
	if errors.Is(err, auth.ErrNoSuchStrategy) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider"})
		return
	}
	h.finish(c, res, err)
}
