package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/services"
)

// HealthHandler serves the service health endpoint
type HealthHandler struct {
	Checker *services.HealthChecker
}

// Check handles GET /api/health
// @Summary Service health
// @Description Database, queue and notifier status. Returns 503 when unhealthy.
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := h.Checker.Check(c.UserContext())
	status := fiber.StatusOK
	if result.Status == services.StatusUnhealthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
