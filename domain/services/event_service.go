package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
)

type CreateEventInput struct {
	EventName   string    `json:"eventName" validate:"required"`
	EventDate   time.Time `json:"eventDate" validate:"required"`
	Venue       string    `json:"venue"`
	Description string    `json:"description"`
}

type UpdateEventInput struct {
	EventName   *string               `json:"eventName"`
	EventDate   *time.Time            `json:"eventDate"`
	Venue       *string               `json:"venue"`
	Description *string               `json:"description"`
	CoverImage  *string               `json:"coverImage"`
	IsActive    *bool                 `json:"isActive"`
	Settings    *models.EventSettings `json:"settings"`
}

// EventStats aggregates live counts for an event dashboard.
type EventStats struct {
	EventName       string `json:"eventName"`
	EventCode       string `json:"eventCode"`
	TotalPhotos     int64  `json:"totalPhotos"`
	ProcessedPhotos int64  `json:"processedPhotos"`
	TotalGuests     int64  `json:"totalGuests"`
	TotalFaces      int64  `json:"totalFaces"`
}

type EventService interface {
	Create(ctx context.Context, photographerID uuid.UUID, input CreateEventInput) (*models.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]models.Event, error)
	Update(ctx context.Context, photographerID, eventID uuid.UUID, input UpdateEventInput) (*models.Event, error)

	// Delete removes the event, its photos (including stored objects,
	// best effort) and guest memberships.
	Delete(ctx context.Context, photographerID, eventID uuid.UUID) error

	GetStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error)
	GetGuests(ctx context.Context, photographerID, eventID uuid.UUID) ([]models.EventGuest, error)

	// QRCodePNG renders the event join payload as a PNG image.
	QRCodePNG(ctx context.Context, eventID uuid.UUID) ([]byte, error)
}
