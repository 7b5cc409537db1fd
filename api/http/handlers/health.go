package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finmark/auth-service/pkg/health"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	svc            health.ReadinessUseCase
	service        string
	storeConnected func() bool
}

func NewHealthHandler(svc health.ReadinessUseCase, service string, storeConnected func() bool) *HealthHandler {
	return &HealthHandler{svc: svc, service: service, storeConnected: storeConnected}
}

// Health: basic liveness check with store connectivity snapshot.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]any
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":         "healthy",
		"service":        h.service,
		"storeConnected": h.storeConnected(),
	})
}

// Ready: readiness check with store ping.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()
	if err := h.svc.Ready(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
