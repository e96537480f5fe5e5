package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
)

type FaceRepositoryImpl struct {
	db *gorm.DB
}

func NewFaceRepository(db *gorm.DB) repositories.FaceRepository {
	return &FaceRepositoryImpl{db: db}
}

func (r *FaceRepositoryImpl) CreateBatch(ctx context.Context, faces []*models.Face) error {
	if len(faces) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(faces, 50).Error
}

func (r *FaceRepositoryImpl) GetByPhoto(ctx context.Context, photoID uuid.UUID) ([]models.Face, error) {
	var faces []models.Face
	err := r.db.WithContext(ctx).Where("photo_id = ?", photoID).Find(&faces).Error
	return faces, err
}

func (r *FaceRepositoryImpl) DeleteByPhoto(ctx context.Context, photoID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("photo_id = ?", photoID).Delete(&models.Face{}).Error
}

func (r *FaceRepositoryImpl) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&models.Face{})
	return result.RowsAffected, result.Error
}

func (r *FaceRepositoryImpl) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Face{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
