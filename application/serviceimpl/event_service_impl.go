package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/storage"
	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
	"github.com/Nihalturkar/Event-System-backend/pkg/utils"
)

// maxCodeAttempts bounds the retry loop when a generated join code
// collides with an existing event.
const maxCodeAttempts = 10

type EventServiceImpl struct {
	eventRepo repositories.EventRepository
	photoRepo repositories.PhotoRepository
	faceRepo  repositories.FaceRepository
	guestRepo repositories.EventGuestRepository
	storage   storage.ObjectStorage
	baseURL   string
}

func NewEventService(
	eventRepo repositories.EventRepository,
	photoRepo repositories.PhotoRepository,
	faceRepo repositories.FaceRepository,
	guestRepo repositories.EventGuestRepository,
	objectStorage storage.ObjectStorage,
	baseURL string,
) services.EventService {
	return &EventServiceImpl{
		eventRepo: eventRepo,
		photoRepo: photoRepo,
		faceRepo:  faceRepo,
		guestRepo: guestRepo,
		storage:   objectStorage,
		baseURL:   baseURL,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, photographerID uuid.UUID, input services.CreateEventInput) (*models.Event, error) {
	code, err := s.uniqueCode(ctx, input.EventName, input)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		PhotographerID: photographerID,
		EventName:      input.EventName,
		EventCode:      code,
		EventDate:      input.EventDate,
		Venue:          input.Venue,
		Description:    input.Description,
		IsActive:       true,
		Settings: models.EventSettings{
			AllowDownload: true,
			AllowShare:    true,
		},
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.API("event_created", "Event created", map[string]interface{}{
		"event_id":   event.ID.String(),
		"event_code": event.EventCode,
	})
	return event, nil
}

// uniqueCode generates join codes until one does not collide, giving up
// after maxCodeAttempts.
func (s *EventServiceImpl) uniqueCode(ctx context.Context, name string, input services.CreateEventInput) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := utils.GenerateEventCode(name, input.EventDate)
		exists, err := s.eventRepo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", services.ErrEventCodeExhausted
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventServiceImpl) GetByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]models.Event, error) {
	return s.eventRepo.GetByPhotographer(ctx, photographerID)
}

func (s *EventServiceImpl) Update(ctx context.Context, photographerID, eventID uuid.UUID, input services.UpdateEventInput) (*models.Event, error) {
	event, err := s.ownedEvent(ctx, photographerID, eventID)
	if err != nil {
		return nil, err
	}

	if input.EventName != nil {
		event.EventName = *input.EventName
	}
	if input.EventDate != nil {
		event.EventDate = *input.EventDate
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.CoverImage != nil {
		event.CoverImage = *input.CoverImage
	}
	if input.IsActive != nil {
		event.IsActive = *input.IsActive
	}
	if input.Settings != nil {
		event.Settings = *input.Settings
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes the event and everything hanging off it. Stored
// objects are deleted best effort; a storage failure does not abort the
// database cleanup.
func (s *EventServiceImpl) Delete(ctx context.Context, photographerID, eventID uuid.UUID) error {
	if _, err := s.ownedEvent(ctx, photographerID, eventID); err != nil {
		return err
	}

	photos, _, err := s.photoRepo.GetByEvent(ctx, eventID, 0, -1)
	if err != nil {
		return err
	}
	for _, photo := range photos {
		if err := s.storage.Delete(ctx, photo.StorageKey); err != nil {
			logger.StorageError("delete_object", "Failed to delete stored photo", err, map[string]interface{}{
				"photo_id": photo.ID.String(),
				"key":      photo.StorageKey,
			})
		}
	}

	if _, err := s.faceRepo.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}
	if _, err := s.photoRepo.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}
	if _, err := s.guestRepo.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}

	logger.API("event_deleted", "Event and related data deleted", map[string]interface{}{
		"event_id": eventID.String(),
		"photos":   len(photos),
	})
	return nil
}

func (s *EventServiceImpl) GetStats(ctx context.Context, eventID uuid.UUID) (*services.EventStats, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	totalPhotos, err := s.photoRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	processed, err := s.photoRepo.CountProcessedByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	guests, err := s.guestRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	faces, err := s.faceRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &services.EventStats{
		EventName:       event.EventName,
		EventCode:       event.EventCode,
		TotalPhotos:     totalPhotos,
		ProcessedPhotos: processed,
		TotalGuests:     guests,
		TotalFaces:      faces,
	}, nil
}

func (s *EventServiceImpl) GetGuests(ctx context.Context, photographerID, eventID uuid.UUID) ([]models.EventGuest, error) {
	if _, err := s.ownedEvent(ctx, photographerID, eventID); err != nil {
		return nil, err
	}
	return s.guestRepo.GetByEvent(ctx, eventID)
}

// QRCodePNG renders the guest join URL for the event as a PNG.
func (s *EventServiceImpl) QRCodePNG(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	joinURL := fmt.Sprintf("%s/join/%s", s.baseURL, event.EventCode)
	return qrcode.Encode(joinURL, qrcode.Medium, 256)
}

func (s *EventServiceImpl) ownedEvent(ctx context.Context, photographerID, eventID uuid.UUID) (*models.Event, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.PhotographerID != photographerID {
		return nil, services.ErrNotEventOwner
	}
	return event, nil
}
