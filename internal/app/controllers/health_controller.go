package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models/dto"
)

// Pinger is anything whose liveness can be checked, such as the pgx pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports whether the API can reach its database
type HealthController struct {
	db     Pinger
	logger zerolog.Logger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger, logger zerolog.Logger) *HealthController {
	return &HealthController{db: db, logger: logger}
}

// Health reports service health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.db.Ping(pingCtx); err != nil {
			c.logger.Warn().Err(err).Msg("Health check: database unreachable")
			ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
