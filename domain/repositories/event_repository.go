package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetByCode(ctx context.Context, code string) (*models.Event, error)
	GetByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	CodeExists(ctx context.Context, code string) (bool, error)

	// Counter mutations. Both run as a single SQL UPDATE with an
	// expression increment so concurrent uploads and pipeline
	// completions never lose updates.
	IncrementTotalPhotos(ctx context.Context, id uuid.UUID, delta int) error
	IncrementProcessedPhotos(ctx context.Context, id uuid.UUID, delta int) error
}
