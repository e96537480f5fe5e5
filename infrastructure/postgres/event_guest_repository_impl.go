package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
)

type EventGuestRepositoryImpl struct {
	db *gorm.DB
}

func NewEventGuestRepository(db *gorm.DB) repositories.EventGuestRepository {
	return &EventGuestRepositoryImpl{db: db}
}

func (r *EventGuestRepositoryImpl) Create(ctx context.Context, guest *models.EventGuest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *EventGuestRepositoryImpl) GetByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*models.EventGuest, error) {
	var guest models.EventGuest
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *EventGuestRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.EventGuest, error) {
	var guests []models.EventGuest
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&guests).Error
	return guests, err
}

func (r *EventGuestRepositoryImpl) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]models.EventGuest, error) {
	var guests []models.EventGuest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("joined_at DESC").
		Find(&guests).Error
	return guests, err
}

func (r *EventGuestRepositoryImpl) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventGuest{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *EventGuestRepositoryImpl) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&models.EventGuest{})
	return result.RowsAffected, result.Error
}

// SaveScanResult upserts on the (event_id, user_id) unique index so the
// first scan of a guest who joined through a side channel still lands.
// The matched set is overwritten, never merged.
func (r *EventGuestRepositoryImpl) SaveScanResult(ctx context.Context, guest *models.EventGuest) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"matched_photo_ids", "matched_count", "last_scanned_at",
		}),
	}).Create(guest).Error
}

func (r *EventGuestRepositoryImpl) Update(ctx context.Context, guest *models.EventGuest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}
