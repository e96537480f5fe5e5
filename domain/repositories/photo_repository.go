package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	GetByEvent(ctx context.Context, eventID uuid.UUID, offset, limit int) ([]models.Photo, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)

	// Pipeline queries
	GetUnprocessedByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Photo, error)
	// GetProcessedWithFaces returns processed photos that contain at
	// least one face, with Faces preloaded, in a stable order.
	GetProcessedWithFaces(ctx context.Context, eventID uuid.UUID) ([]models.Photo, error)
	// MarkProcessed sets is_processed and faces_count in one update.
	MarkProcessed(ctx context.Context, id uuid.UUID, facesCount int) error

	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	CountProcessedByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
}
