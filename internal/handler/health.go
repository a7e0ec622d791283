package handler

import (
	"smartnotes/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports process liveness and cache connectivity
type HealthHandler struct {
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler instance. The cache may be
// nil when the server runs without Redis.
func NewHealthHandler(cache domain.Cache) *HealthHandler {
	return &HealthHandler{
		cache: cache,
	}
}

// Check godoc
// @Summary Health check
// @Description Returns service status and cache connectivity
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{
		"status": "ok",
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			status["cache"] = "unavailable"
		} else {
			status["cache"] = "ok"
		}
	}

	return c.JSON(status)
}
