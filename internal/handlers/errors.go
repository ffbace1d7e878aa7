package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/api/internal/repository"
	"stockroom/api/internal/service"
)

// respondError converts a service failure into the single JSON envelope.
// Anything unmapped is a 500 with a generic message; internals stay in logs.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	var validation service.ValidationError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, service.ErrResetTokenInvalid):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMailDelivery):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
