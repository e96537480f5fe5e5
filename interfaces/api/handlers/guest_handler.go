package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/pkg/utils"
)

type GuestHandler struct {
	guestService services.GuestService
}

func NewGuestHandler(guestService services.GuestService) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
	}
}

type joinRequest struct {
	EventCode string `json:"eventCode" validate:"required,len=8"`
}

// Join adds the authenticated user to an event by join code
func (h *GuestHandler) Join(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req joinRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.BadRequestResponse(c, "An 8-character event code is required")
	}

	event, guest, err := h.guestService.Join(c.UserContext(), user.ID, req.EventCode)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Joined event", fiber.Map{
		"event":    event,
		"joinedAt": guest.JoinedAt,
	})
}

type scanRequest struct {
	Descriptor []float32 `json:"descriptor" validate:"required"`
}

// Scan matches the guest's descriptor against the event's photos
func (h *GuestHandler) Scan(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	result, err := h.guestService.Scan(c.UserContext(), eventID, user.ID, req.Descriptor)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Scan completed", result)
}

// Matches returns the cached result of the guest's last scan
func (h *GuestHandler) Matches(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	result, err := h.guestService.Matches(c.UserContext(), eventID, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", result)
}

// MyEvents lists the events the guest has joined
func (h *GuestHandler) MyEvents(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	events, err := h.guestService.JoinedEvents(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", events)
}

// Download hands out one photo URL and records the download
func (h *GuestHandler) Download(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid photo ID")
	}

	url, err := h.guestService.Download(c.UserContext(), user.ID, photoID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", fiber.Map{"url": url})
}

// DownloadAll hands out every matched photo URL in one response
func (h *GuestHandler) DownloadAll(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	urls, err := h.guestService.DownloadAll(c.UserContext(), eventID, user.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", fiber.Map{
		"count": len(urls),
		"urls":  urls,
	})
}
