package handler

import (
	"errors"
	"net/http"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/user"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Register creates a local account. It does not start a session; the
// client logs in afterwards.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"field": "", "message": "invalid request"})
		return
	}

	u, err := h.gateway.Signup(c.Request.Context(), credentials.Signup{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})

	var verr *auth.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"status": "created", "id": u.ID})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"field": verr.Field, "message": verr.Message})
	case errors.Is(err, user.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"field": "email", "message": "user already exists"})
	default:
		internalError(c)
	}
}
