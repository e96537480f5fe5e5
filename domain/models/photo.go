package models

import (
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID      uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index"`

	ImageURL     string `gorm:"not null"`
	ThumbnailURL string `gorm:"not null"`
	// Object key in storage, needed for deletion.
	StorageKey string `gorm:"not null"`

	Width     int
	Height    int
	SizeBytes int64

	// FacesCount mirrors len(Faces) and is what the matching query
	// filters on. IsProcessed transitions to true exactly once and never
	// reverts; a photo whose detection failed is still marked processed
	// with zero faces so it cannot block the batch forever.
	FacesCount  int  `gorm:"default:0"`
	IsProcessed bool `gorm:"default:false;index"`

	UploadedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Relations
	Event Event  `gorm:"foreignKey:EventID"`
	Faces []Face `gorm:"foreignKey:PhotoID"`
}

func (Photo) TableName() string {
	return "photos"
}
