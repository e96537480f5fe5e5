package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
)

// PhotoUpload is one file submitted by the photographer.
type PhotoUpload struct {
	FileName string
	Data     []byte
}

// UploadedPhoto is the per-file outcome of a batch upload.
type UploadedPhoto struct {
	ID           uuid.UUID `json:"id"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	IsProcessed  bool      `json:"isProcessed"`
}

type UploadResult struct {
	Uploaded int             `json:"uploaded"`
	Failed   int             `json:"failed"`
	Photos   []UploadedPhoto `json:"photos"`
}

// SubmittedFace is a client-side detected face posted by the uploader.
type SubmittedFace struct {
	FaceID     string    `json:"faceId"`
	Descriptor []float32 `json:"descriptor"`
	BboxX      float64   `json:"x"`
	BboxY      float64   `json:"y"`
	BboxWidth  float64   `json:"width"`
	BboxHeight float64   `json:"height"`
}

type PhotoService interface {
	// Upload stores each file in object storage and creates an
	// unprocessed Photo row; totalPhotos is incremented by the number
	// of photos that actually made it. Per-file failures are reported,
	// not fatal.
	Upload(ctx context.Context, photographerID, eventID uuid.UUID, files []PhotoUpload) (*UploadResult, error)

	List(ctx context.Context, eventID uuid.UUID, page, limit int) ([]models.Photo, int64, error)
	GetByID(ctx context.Context, photoID uuid.UUID) (*models.Photo, error)
	Delete(ctx context.Context, photographerID, photoID uuid.UUID) error

	// SubmitFaces persists client-side detected descriptors for one
	// photo, marks it processed and bumps processedPhotos. Faces with
	// wrong-length descriptors are filtered out, not rejected.
	SubmitFaces(ctx context.Context, photographerID, photoID uuid.UUID, faces []SubmittedFace) (int, error)
}
