package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthProbeTimeout = 2 * time.Second

// Health reports dependency status. It always answers 200 so load
// balancers see a live process; degraded backends show up in the body.
func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	status := gin.H{
		"status":      "ok",
		"environment": h.cfg.Environment,
		"database":    "ok",
		"cache":       "ok",
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			status["database"] = "unreachable"
			h.log.Error().Err(err).Msg("health: postgres ping failed")
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx).Err(); err != nil {
			status["cache"] = "unreachable"
			h.log.Error().Err(err).Msg("health: redis ping failed")
		}
	}

	c.JSON(http.StatusOK, status)
}
