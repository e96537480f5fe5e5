package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
)

type FaceRepository interface {
	CreateBatch(ctx context.Context, faces []*models.Face) error
	GetByPhoto(ctx context.Context, photoID uuid.UUID) ([]models.Face, error)
	DeleteByPhoto(ctx context.Context, photoID uuid.UUID) error
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
}
