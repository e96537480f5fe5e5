package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Face is one detected face in a photo. Created by the processing
// pipeline (or by a client-side descriptor submission), never mutated
// afterwards.
type Face struct {
	ID      uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index"` // For faster per-event queries
	PhotoID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Label assigned by the detection backend, e.g. "face_0".
	FaceID string `gorm:"type:varchar(32)"`

	// 128-dimension embedding from the recognition model.
	Descriptor pgvector.Vector `gorm:"type:vector(128);not null"`

	// Bounding box in image pixel coordinates.
	BboxX      float64
	BboxY      float64
	BboxWidth  float64
	BboxHeight float64

	CreatedAt time.Time

	// Relations
	Photo Photo `gorm:"foreignKey:PhotoID"`
}

func (Face) TableName() string {
	return "faces"
}
