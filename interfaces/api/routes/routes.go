package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nihalturkar/Event-System-backend/interfaces/api/handlers"
	"github.com/Nihalturkar/Event-System-backend/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, cfg *config.Config) {
	SetupHealthRoutes(app, h)

	// API version group
	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h, &cfg.RateLimit)
	SetupEventRoutes(api, h)
	SetupPhotoRoutes(api, h)
	SetupGuestRoutes(api, h)
}
