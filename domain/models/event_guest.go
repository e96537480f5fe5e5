package models

import (
	"time"

	"github.com/google/uuid"
)

// EventGuest is the membership row linking a guest to an event, plus the
// cached result of the guest's last face scan.
//
// MatchedPhotoIDs is a snapshot: every scan fully overwrites it.
// DownloadedPhotoIDs is a set: downloads accumulate via idempotent union.
type EventGuest struct {
	ID      uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_guest"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_guest"`

	MatchedPhotoIDs    []uuid.UUID `gorm:"serializer:json;type:jsonb"`
	MatchedCount       int         `gorm:"default:0"`
	DownloadedPhotoIDs []uuid.UUID `gorm:"serializer:json;type:jsonb"`

	LastScannedAt *time.Time
	JoinedAt      time.Time

	// Relations
	Event Event `gorm:"foreignKey:EventID"`
	User  User  `gorm:"foreignKey:UserID"`
}

func (EventGuest) TableName() string {
	return "event_guests"
}
