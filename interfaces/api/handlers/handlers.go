package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/faceapi"
	"github.com/Nihalturkar/Event-System-backend/pkg/config"
	"github.com/Nihalturkar/Event-System-backend/pkg/utils"
)

var validate = validator.New()

// Services contains all the services needed for handlers
type Services struct {
	AuthService       services.AuthService
	EventService      services.EventService
	PhotoService      services.PhotoService
	GuestService      services.GuestService
	ProcessingService services.ProcessingService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth   *AuthHandler
	Event  *EventHandler
	Photo  *PhotoHandler
	Guest  *GuestHandler
	Health *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(svcs *Services, db *gorm.DB, redisClient *goredis.Client, faceClient *faceapi.FaceClient, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:   NewAuthHandler(svcs.AuthService),
		Event:  NewEventHandler(svcs.EventService, svcs.ProcessingService),
		Photo:  NewPhotoHandler(svcs.PhotoService),
		Guest:  NewGuestHandler(svcs.GuestService),
		Health: NewHealthHandler(db, redisClient, faceClient, cfg),
	}
}

// serviceError maps domain errors to HTTP responses. Anything unmapped
// is a 500 with a generic message.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDescriptor),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrRoleRequired),
		errors.Is(err, services.ErrNoFilesUploaded):
		return utils.BadRequestResponse(c, err.Error())

	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrGuestNotFound):
		return utils.NotFoundResponse(c, err.Error())

	case errors.Is(err, services.ErrNotEventOwner),
		errors.Is(err, services.ErrNotJoined):
		return utils.ForbiddenResponse(c, err.Error())

	case errors.Is(err, services.ErrEventCodeExhausted):
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error())

	default:
		return utils.InternalErrorResponse(c, "Something went wrong")
	}
}
