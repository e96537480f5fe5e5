package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
	"github.com/Nihalturkar/Event-System-backend/pkg/utils"
)

type PhotoHandler struct {
	photoService services.PhotoService
}

func NewPhotoHandler(photoService services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// Upload accepts a multipart batch of photos for an event
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.BadRequestResponse(c, "Expected multipart form data")
	}

	files := form.File["photos"]
	uploads := make([]services.PhotoUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			logger.API("upload_read", "Failed to open multipart file", map[string]interface{}{
				"file_name": fh.Filename,
				"error":     err.Error(),
			})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		uploads = append(uploads, services.PhotoUpload{
			FileName: fh.Filename,
			Data:     data,
		})
	}

	result, err := h.photoService.Upload(c.UserContext(), user.ID, eventID, uploads)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.CreatedResponse(c, "Photos uploaded", result)
}

// List returns a page of the event's photos
func (h *PhotoHandler) List(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid event ID")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	photos, total, err := h.photoService.List(c.UserContext(), eventID, page, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", fiber.Map{
		"photos": photos,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// Get returns one photo by ID
func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid photo ID")
	}

	photo, err := h.photoService.GetByID(c.UserContext(), photoID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "OK", photo)
}

// Delete removes one photo and its stored object
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid photo ID")
	}

	if err := h.photoService.Delete(c.UserContext(), user.ID, photoID); err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Photo deleted", nil)
}

type submitFacesRequest struct {
	Faces []services.SubmittedFace `json:"faces" validate:"required"`
}

// SubmitFaces stores client-side detected descriptors for a photo
func (h *PhotoHandler) SubmitFaces(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	photoID, err := uuid.Parse(c.Params("photoId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid photo ID")
	}

	var req submitFacesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	saved, err := h.photoService.SubmitFaces(c.UserContext(), user.ID, photoID, req.Faces)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, "Faces saved", fiber.Map{
		"facesSaved": saved,
	})
}
