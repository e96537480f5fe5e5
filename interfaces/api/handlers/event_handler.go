package handlers

import (
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/pkg/utils"
)

type EventHandler struct {
	eventService      services.EventService
	processingService services.ProcessingService
}

func NewEventHandler(eventService services.EventService, processingService services.ProcessingService) *EventHandler {
	return &EventHandler{
		eventService:      eventService,
		processingService: processingService,
	}
}

// Create creates a new event for the authenticated photographer
func (h *EventHandler) Create(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var input services.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequestResponse(c, "Event name and date are required")
	}

	event, err := h.eventService.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.CreatedResponse(c, "Event created", event)
}

// List returns the photographer's events
func (h *EventHandler) List(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	events, err := h.eventService.GetByPhotographer(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", events)
}

// Get returns one event by ID
func (h *EventHandler) Get(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	event, err := h.eventService.GetByID(c.UserContext(), eventID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", event)
}

// Update applies partial changes to an event
func (h *EventHandler) Update(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	var input services.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	event, err := h.eventService.Update(c.UserContext(), user.ID, eventID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Event updated", event)
}

// Delete removes the event and all of its photos and guests
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	if err := h.eventService.Delete(c.UserContext(), user.ID, eventID); err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Event deleted", nil)
}

// Stats returns live counters for the event dashboard
func (h *EventHandler) Stats(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	stats, err := h.eventService.GetStats(c.UserContext(), eventID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", stats)
}

// Guests lists everyone who joined the event
func (h *EventHandler) Guests(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	guests, err := h.eventService.GetGuests(c.UserContext(), user.ID, eventID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", guests)
}

// QRCode renders the event join code as a PNG, or as a base64 data URL
// when ?format=dataurl is requested
func (h *EventHandler) QRCode(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	png, err := h.eventService.QRCodePNG(c.UserContext(), eventID)
	if err != nil {
		return serviceError(c, err)
	}

	if c.Query("format") == "dataurl" {
		return utils.SuccessResponse(c, "OK", fiber.Map{
			"qrCode": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// Process kicks off the face detection pipeline for the event
func (h *EventHandler) Process(c *fiber.Ctx) error {
	if h.processingService == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Face processing is not available")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	// Existence check keeps the fire-and-forget trigger from silently
	// accepting garbage IDs.
	if _, err := h.eventService.GetByID(c.UserContext(), eventID); err != nil {
		return serviceError(c, err)
	}

	h.processingService.Trigger(eventID)

	return utils.SuccessResponse(c, "Processing started", h.processingService.Progress(eventID))
}

// ProcessingStatus reports pipeline progress for polling clients
func (h *EventHandler) ProcessingStatus(c *fiber.Ctx) error {
	if h.processingService == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Face processing is not available")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	return utils.SuccessResponse(c, "OK", h.processingService.Progress(eventID))
}
