package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
)

type EventGuestRepository interface {
	Create(ctx context.Context, guest *models.EventGuest) error
	GetByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*models.EventGuest, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.EventGuest, error)
	GetByEvent(ctx context.Context, eventID uuid.UUID) ([]models.EventGuest, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)

	// SaveScanResult upserts the membership row for (eventID, userID),
	// fully overwriting the matched photo set. Safe to call before the
	// guest row exists (create-on-first-scan).
	SaveScanResult(ctx context.Context, guest *models.EventGuest) error

	// Update persists mutations to an existing row (e.g. the downloaded
	// photo set after a union performed by the service).
	Update(ctx context.Context, guest *models.EventGuest) error
}
