package handler

import (
	"errors"
	"net/http"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/auth/gateway"
	"auth-gateway/internal/auth/strategy"
	"auth-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (h *Handler) loginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"providers": h.gateway.Providers(),
	})
}

// Login authenticates a form or JSON body with the local strategy.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusFound, pathLogin)
		return
	}

	res, err := h.gateway.Authenticate(
		c.Request.Context(),
		strategy.LocalName,
		strategy.LocalEvidence{Email: req.Email, Password: req.Password},
	)
	h.finish(c, res, err)
}

// finish completes a login attempt: cookie and homepage on success,
// login page on rejection, a generic 500 on anything else.
func (h *Handler) finish(c *gin.Context, res *gateway.Result, err error) {
	switch {
	case err == nil && res.State == gateway.SessionActive:
		session.SetCookie(c.Writer, res.Token, h.cookie)
		c.Redirect(http.StatusFound, pathHomepage)
	case errors.Is(err, auth.ErrRejected):
		c.Redirect(http.StatusFound, pathLogin)
	default:
		internalError(c)
	}
}
