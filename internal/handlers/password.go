package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/api/internal/repository"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword kicks off the recovery flow. The response is identical for
// known and unknown emails so the endpoint cannot be used to enumerate
// accounts; the internal not-found only reaches the log.
func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide an email"})
		return
	}

	if err := h.resetService.Request(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.log.Debug().Str("email", req.Email).Msg("password reset requested for unknown email")
		} else {
			h.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "if that email is registered, a reset link has been sent"})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rawToken := c.Param("resetToken")
	if err := h.resetService.Consume(c.Request.Context(), rawToken, req.Password); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset successful, please login"})
}
