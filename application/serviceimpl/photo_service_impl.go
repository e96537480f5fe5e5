package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/storage"
	"github.com/Nihalturkar/Event-System-backend/pkg/facematch"
	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type PhotoServiceImpl struct {
	photoRepo repositories.PhotoRepository
	eventRepo repositories.EventRepository
	faceRepo  repositories.FaceRepository
	storage   storage.ObjectStorage
}

func NewPhotoService(
	photoRepo repositories.PhotoRepository,
	eventRepo repositories.EventRepository,
	faceRepo repositories.FaceRepository,
	objectStorage storage.ObjectStorage,
) services.PhotoService {
	return &PhotoServiceImpl{
		photoRepo: photoRepo,
		eventRepo: eventRepo,
		faceRepo:  faceRepo,
		storage:   objectStorage,
	}
}

// Upload stores each file and creates an unprocessed photo row. One bad
// file does not fail the batch; the caller sees per-file outcomes.
func (s *PhotoServiceImpl) Upload(ctx context.Context, photographerID, eventID uuid.UUID, files []services.PhotoUpload) (*services.UploadResult, error) {
	if len(files) == 0 {
		return nil, services.ErrNoFilesUploaded
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if event.PhotographerID != photographerID {
		return nil, services.ErrNotEventOwner
	}

	result := &services.UploadResult{}
	for _, file := range files {
		photo, err := s.uploadOne(ctx, eventID, file)
		if err != nil {
			logger.StorageError("upload_photo", "Failed to upload photo", err, map[string]interface{}{
				"event_id":  eventID.String(),
				"file_name": file.FileName,
			})
			result.Failed++
			continue
		}
		result.Uploaded++
		result.Photos = append(result.Photos, services.UploadedPhoto{
			ID:           photo.ID,
			ThumbnailURL: photo.ThumbnailURL,
			IsProcessed:  photo.IsProcessed,
		})
	}

	if result.Uploaded > 0 {
		if err := s.eventRepo.IncrementTotalPhotos(ctx, eventID, result.Uploaded); err != nil {
			logger.DB("increment_total", "Failed to bump total photo counter", map[string]interface{}{
				"event_id": eventID.String(),
				"error":    err.Error(),
			})
		}
	}

	logger.Storage("upload_batch", "Photo batch uploaded", map[string]interface{}{
		"event_id": eventID.String(),
		"uploaded": result.Uploaded,
		"failed":   result.Failed,
	})
	return result, nil
}

func (s *PhotoServiceImpl) uploadOne(ctx context.Context, eventID uuid.UUID, file services.PhotoUpload) (*models.Photo, error) {
	ext := strings.ToLower(filepath.Ext(file.FileName))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("events/%s/%s%s", eventID, uuid.New(), ext)
	imageURL, err := s.storage.Upload(ctx, key, file.Data, contentType)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		EventID:      eventID,
		ImageURL:     imageURL,
		ThumbnailURL: imageURL + "?width=400",
		StorageKey:   key,
		SizeBytes:    int64(len(file.Data)),
		UploadedAt:   time.Now(),
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// Orphaned object, remove it so the bucket does not leak.
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}
	return photo, nil
}

func (s *PhotoServiceImpl) List(ctx context.Context, eventID uuid.UUID, page, limit int) ([]models.Photo, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.photoRepo.GetByEvent(ctx, eventID, (page-1)*limit, limit)
}

func (s *PhotoServiceImpl) GetByID(ctx context.Context, photoID uuid.UUID) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoServiceImpl) Delete(ctx context.Context, photographerID, photoID uuid.UUID) error {
	photo, err := s.GetByID(ctx, photoID)
	if err != nil {
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, photo.EventID)
	if err != nil {
		return err
	}
	if event.PhotographerID != photographerID {
		return services.ErrNotEventOwner
	}

	if err := s.storage.Delete(ctx, photo.StorageKey); err != nil {
		logger.StorageError("delete_object", "Failed to delete stored photo", err, map[string]interface{}{
			"photo_id": photoID.String(),
			"key":      photo.StorageKey,
		})
	}

	if err := s.faceRepo.DeleteByPhoto(ctx, photoID); err != nil {
		return err
	}
	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		return err
	}

	if err := s.eventRepo.IncrementTotalPhotos(ctx, photo.EventID, -1); err != nil {
		logger.DB("decrement_total", "Failed to lower total photo counter", map[string]interface{}{
			"event_id": photo.EventID.String(),
			"error":    err.Error(),
		})
	}
	if photo.IsProcessed {
		if err := s.eventRepo.IncrementProcessedPhotos(ctx, photo.EventID, -1); err != nil {
			logger.DB("decrement_processed", "Failed to lower processed photo counter", map[string]interface{}{
				"event_id": photo.EventID.String(),
				"error":    err.Error(),
			})
		}
	}
	return nil
}

// SubmitFaces persists descriptors detected on the uploader's device.
// Wrong-length descriptors are dropped silently; the photo is marked
// processed either way so it joins the matchable set exactly once.
func (s *PhotoServiceImpl) SubmitFaces(ctx context.Context, photographerID, photoID uuid.UUID, faces []services.SubmittedFace) (int, error) {
	photo, err := s.GetByID(ctx, photoID)
	if err != nil {
		return 0, err
	}

	event, err := s.eventRepo.GetByID(ctx, photo.EventID)
	if err != nil {
		return 0, err
	}
	if event.PhotographerID != photographerID {
		return 0, services.ErrNotEventOwner
	}

	// Resubmission replaces the previous set instead of stacking
	// duplicates.
	if photo.IsProcessed {
		if err := s.faceRepo.DeleteByPhoto(ctx, photoID); err != nil {
			return 0, err
		}
	}

	rows := make([]*models.Face, 0, len(faces))
	for _, f := range faces {
		if len(f.Descriptor) != facematch.DescriptorLength {
			logger.Face("descriptor_skipped", "Submitted descriptor has unexpected length", map[string]interface{}{
				"photo_id": photoID.String(),
				"face_id":  f.FaceID,
				"length":   len(f.Descriptor),
			})
			continue
		}
		rows = append(rows, &models.Face{
			EventID:    photo.EventID,
			PhotoID:    photoID,
			FaceID:     f.FaceID,
			Descriptor: pgvector.NewVector(f.Descriptor),
			BboxX:      f.BboxX,
			BboxY:      f.BboxY,
			BboxWidth:  f.BboxWidth,
			BboxHeight: f.BboxHeight,
		})
	}

	if err := s.faceRepo.CreateBatch(ctx, rows); err != nil {
		return 0, err
	}
	if err := s.photoRepo.MarkProcessed(ctx, photoID, len(rows)); err != nil {
		return 0, err
	}
	if !photo.IsProcessed {
		if err := s.eventRepo.IncrementProcessedPhotos(ctx, photo.EventID, 1); err != nil {
			logger.DB("increment_processed", "Failed to bump processed photo counter", map[string]interface{}{
				"event_id": photo.EventID.String(),
				"error":    err.Error(),
			})
		}
	}

	logger.Face("faces_submitted", "Client-side faces saved", map[string]interface{}{
		"photo_id":    photoID.String(),
		"faces_saved": len(rows),
		"submitted":   len(faces),
	})
	return len(rows), nil
}
