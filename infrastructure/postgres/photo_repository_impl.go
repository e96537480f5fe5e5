package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
)

type PhotoRepositoryImpl struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) repositories.PhotoRepository {
	return &PhotoRepositoryImpl{db: db}
}

func (r *PhotoRepositoryImpl) Create(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *PhotoRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepositoryImpl) GetByEvent(ctx context.Context, eventID uuid.UUID, offset, limit int) ([]models.Photo, int64, error) {
	var photos []models.Photo
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Photo{}).Where("event_id = ?", eventID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("uploaded_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&photos).Error

	return photos, total, err
}

func (r *PhotoRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Photo{}).Error
}

func (r *PhotoRepositoryImpl) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&models.Photo{})
	return result.RowsAffected, result.Error
}

func (r *PhotoRepositoryImpl) GetUnprocessedByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND is_processed = ?", eventID, false).
		Order("uploaded_at ASC").
		Find(&photos).Error
	return photos, err
}

// GetProcessedWithFaces returns the candidate set for a guest scan: one
// consistent list, faces preloaded, in upload order.
func (r *PhotoRepositoryImpl) GetProcessedWithFaces(ctx context.Context, eventID uuid.UUID) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Preload("Faces").
		Where("event_id = ? AND is_processed = ? AND faces_count > 0", eventID, true).
		Order("uploaded_at ASC").
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepositoryImpl) MarkProcessed(ctx context.Context, id uuid.UUID, facesCount int) error {
	return r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_processed": true,
			"faces_count":  facesCount,
			"updated_at":   time.Now(),
		}).Error
}

func (r *PhotoRepositoryImpl) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *PhotoRepositoryImpl) CountProcessedByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).
		Where("event_id = ? AND is_processed = ?", eventID, true).
		Count(&count).Error
	return count, err
}
