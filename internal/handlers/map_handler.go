package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wisdomgraph/backend/internal/dto"
	"github.com/wisdomgraph/backend/internal/middleware"
	"github.com/wisdomgraph/backend/internal/services"
	"gorm.io/datatypes"
)

type MapHandler struct {
	mapService *services.MapService
}

func NewMapHandler(mapService *services.MapService) *MapHandler {
	return &MapHandler{mapService: mapService}
}

// Save handles POST /maps/save - always inserts a new record.
func (h *MapHandler) Save(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SaveMapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Topic == "" || req.Nodes == nil || req.Edges == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "topic, nodes and edges are required",
		})
	}

	m, err := h.mapService.Save(user.ID, req.Topic, req.Level,
		datatypes.JSON(req.Nodes), datatypes.JSON(req.Edges))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save map",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Learning map saved successfully",
		"map_id":  m.ID,
	})
}

func (h *MapHandler) List(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	maps, err := h.mapService.List(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch maps",
		})
	}

	return c.JSON(fiber.Map{"success": true, "maps": maps})
}

func (h *MapHandler) Get(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return mapNotFound(c)
	}

	m, err := h.mapService.Get(user.ID, mapID)
	if err != nil {
		if errors.Is(err, services.ErrMapNotFound) {
			return mapNotFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch map",
		})
	}

	return c.JSON(fiber.Map{"success": true, "map": m})
}

func (h *MapHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return mapNotFound(c)
	}

	if err := h.mapService.Delete(user.ID, mapID); err != nil {
		if errors.Is(err, services.ErrMapNotFound) {
			return mapNotFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete map",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Learning map deleted successfully",
	})
}

// Export returns the bare stored record, without the success envelope Get
// uses. Existing clients depend on this asymmetry.
func (h *MapHandler) Export(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return mapNotFound(c)
	}

	m, err := h.mapService.Export(user.ID, mapID)
	if err != nil {
		if errors.Is(err, services.ErrMapNotFound) {
			return mapNotFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to export map",
		})
	}

	return c.JSON(m)
}

func mapNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "Learning map not found",
	})
}
