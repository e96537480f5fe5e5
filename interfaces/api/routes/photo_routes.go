package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nihalturkar/Event-System-backend/interfaces/api/handlers"
	"github.com/Nihalturkar/Event-System-backend/interfaces/api/middleware"
)

func SetupPhotoRoutes(api fiber.Router, h *handlers.Handlers) {
	events := api.Group("/events", middleware.Protected())

	events.Post("/:id/photos", middleware.PhotographerOnly(), h.Photo.Upload)
	events.Get("/:id/photos", h.Photo.List)

	photos := api.Group("/photos", middleware.Protected())

	photos.Get("/:photoId", h.Photo.Get)
	photos.Delete("/:photoId", middleware.PhotographerOnly(), h.Photo.Delete)
	photos.Post("/:photoId/faces", middleware.PhotographerOnly(), h.Photo.SubmitFaces)
}
