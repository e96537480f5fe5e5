package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
)

type EventRepositoryImpl struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) repositories.EventRepository {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) GetByCode(ctx context.Context, code string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("event_code = ?", code).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) GetByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("photographer_id = ?", photographerID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{}).Error
}

func (r *EventRepositoryImpl) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).Where("event_code = ?", code).Count(&count).Error
	return count > 0, err
}

// IncrementTotalPhotos bumps the denormalized upload counter in a single
// UPDATE so concurrent uploads never lose increments.
func (r *EventRepositoryImpl) IncrementTotalPhotos(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", id).
		UpdateColumn("total_photos", gorm.Expr("total_photos + ?", delta)).Error
}

func (r *EventRepositoryImpl) IncrementProcessedPhotos(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", id).
		UpdateColumn("processed_photos", gorm.Expr("processed_photos + ?", delta)).Error
}
