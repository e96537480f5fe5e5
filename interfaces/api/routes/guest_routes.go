package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nihalturkar/Event-System-backend/interfaces/api/handlers"
	"github.com/Nihalturkar/Event-System-backend/interfaces/api/middleware"
)

func SetupGuestRoutes(api fiber.Router, h *handlers.Handlers) {
	guest := api.Group("/guest", middleware.Protected())

	guest.Post("/join", h.Guest.Join)
	guest.Get("/events", h.Guest.MyEvents)
	guest.Post("/events/:id/scan", h.Guest.Scan)
	guest.Get("/events/:id/matches", h.Guest.Matches)
	guest.Get("/events/:id/download-all", h.Guest.DownloadAll)
	guest.Get("/photos/:photoId/download", h.Guest.Download)
}
