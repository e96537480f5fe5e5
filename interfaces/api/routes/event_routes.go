package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nihalturkar/Event-System-backend/interfaces/api/handlers"
	"github.com/Nihalturkar/Event-System-backend/interfaces/api/middleware"
)

func SetupEventRoutes(api fiber.Router, h *handlers.Handlers) {
	events := api.Group("/events", middleware.Protected())

	// Photographer-owned operations
	events.Post("/", middleware.PhotographerOnly(), h.Event.Create)
	events.Get("/", middleware.PhotographerOnly(), h.Event.List)
	events.Put("/:id", middleware.PhotographerOnly(), h.Event.Update)
	events.Delete("/:id", middleware.PhotographerOnly(), h.Event.Delete)
	events.Get("/:id/guests", middleware.PhotographerOnly(), h.Event.Guests)
	events.Post("/:id/process", middleware.PhotographerOnly(), h.Event.Process)

	// Visible to any authenticated member
	events.Get("/:id", h.Event.Get)
	events.Get("/:id/stats", h.Event.Stats)
	events.Get("/:id/qr", h.Event.QRCode)
	events.Get("/:id/processing-status", h.Event.ProcessingStatus)
}
