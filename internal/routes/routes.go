package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wisdomgraph/backend/internal/config"
	"github.com/wisdomgraph/backend/internal/handlers"
	"github.com/wisdomgraph/backend/internal/middleware"
	"github.com/wisdomgraph/backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	mapHandler *handlers.MapHandler,
	generateHandler *handlers.GenerateHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Wisdom Graph API"})
	})
	api.Get("/healthz", healthHandler.Check)

	// Auth - public
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Every protected route verifies the signature and resolves the token
	// subject to a live user record.
	guard := middleware.JWTProtected(cfg)
	resolve := middleware.ResolveUser(authService)

	api.Get("/auth/me", guard, resolve, authHandler.Me)

	api.Post("/generate-map", guard, resolve, generateHandler.GenerateMap)
	api.Post("/expand-node", guard, resolve, generateHandler.ExpandNode)

	api.Post("/maps/save", guard, resolve, mapHandler.Save)
	api.Get("/maps", guard, resolve, mapHandler.List)
	api.Get("/maps/:id", guard, resolve, mapHandler.Get)
	api.Delete("/maps/:id", guard, resolve, mapHandler.Delete)
	api.Get("/maps/:id/export", guard, resolve, mapHandler.Export)
}
