package models

import (
	"time"

	"github.com/google/uuid"
)

// EventCodeLength is the fixed length of the join code printed on QR
// cards and typed in by guests.
const EventCodeLength = 8

type EventSettings struct {
	AllowDownload    bool   `gorm:"default:true" json:"allowDownload"`
	AllowShare       bool   `gorm:"default:true" json:"allowShare"`
	WatermarkEnabled bool   `gorm:"default:false" json:"watermarkEnabled"`
	WatermarkText    string `json:"watermarkText"`
}

type Event struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PhotographerID uuid.UUID `gorm:"type:uuid;not null;index"`

	EventName   string `gorm:"not null"`
	EventCode   string `gorm:"uniqueIndex;not null;type:varchar(8)"`
	EventDate   time.Time
	Venue       string
	CoverImage  string
	Description string

	// Denormalized counters. Mutated only through atomic increments in
	// the repository; never recomputed client-side because uploads and
	// pipeline completions race.
	TotalPhotos     int `gorm:"default:0"`
	ProcessedPhotos int `gorm:"default:0"`

	IsActive bool          `gorm:"default:true"`
	Settings EventSettings `gorm:"embedded;embeddedPrefix:settings_"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Photographer User         `gorm:"foreignKey:PhotographerID"`
	Photos       []Photo      `gorm:"foreignKey:EventID"`
	Guests       []EventGuest `gorm:"foreignKey:EventID"`
}

func (Event) TableName() string {
	return "events"
}
