package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/wisdomgraph/backend/internal/database"
	"github.com/wisdomgraph/backend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles GET /healthz - liveness via a store ping.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		slog.Error("health check failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Database not reachable",
		})
	}

	return c.JSON(dto.HealthResponse{
		Status:   "ok",
		Database: "connected",
	})
}
