package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisdomgraph/backend/internal/dto"
	"github.com/wisdomgraph/backend/internal/services"
)

type GenerateHandler struct {
	llmService *services.LLMService
}

func NewGenerateHandler(llmService *services.LLMService) *GenerateHandler {
	return &GenerateHandler{llmService: llmService}
}

// GenerateMap handles POST /generate-map - asks the model for a full map.
func (h *GenerateHandler) GenerateMap(c *fiber.Ctx) error {
	var req dto.GenerateMapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Topic == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "topic is required",
		})
	}
	if req.Level == "" {
		req.Level = "Beginner"
	}

	data, err := h.llmService.GenerateMap(req.Topic, req.Level)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

// ExpandNode handles POST /expand-node - asks the model for 3-6 subtopics.
func (h *GenerateHandler) ExpandNode(c *fiber.Ctx) error {
	var req dto.ExpandNodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.NodeLabel == "" || req.Topic == "" || req.Level == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "node_label, topic and level are required",
		})
	}

	subtopics, err := h.llmService.ExpandNode(req.NodeLabel, req.Topic, req.Level)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "subtopics": subtopics})
}
