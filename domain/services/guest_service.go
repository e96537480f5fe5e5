package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
)

// MatchedPhoto is one photo in a scan result.
type MatchedPhoto struct {
	ID           uuid.UUID `json:"id"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	ImageURL     string    `json:"imageUrl"`
}

// ScanResult is what the guest sees after a scan; the same set is
// persisted on the membership row.
type ScanResult struct {
	MatchedCount int            `json:"matchedCount"`
	Photos       []MatchedPhoto `json:"photos"`
}

// JoinedEvent summarizes one event a guest is a member of.
type JoinedEvent struct {
	EventID      uuid.UUID `json:"eventId"`
	EventName    string    `json:"eventName"`
	EventDate    string    `json:"eventDate"`
	Venue        string    `json:"venue"`
	CoverImage   string    `json:"coverImage"`
	TotalPhotos  int       `json:"totalPhotos"`
	IsActive     bool      `json:"isActive"`
	JoinedAt     string    `json:"joinedAt"`
	MatchedCount int       `json:"matchedCount"`
}

type GuestService interface {
	// Join looks up an active event by code and creates the membership
	// if it does not exist yet. Idempotent.
	Join(ctx context.Context, userID uuid.UUID, eventCode string) (*models.Event, *models.EventGuest, error)

	// Scan compares the probe descriptor against every processed photo
	// of the event and overwrites the guest's cached match set with the
	// result. The returned set and the persisted set are the same
	// snapshot.
	Scan(ctx context.Context, eventID, userID uuid.UUID, descriptor []float32) (*ScanResult, error)

	// Matches returns the cached result of the last scan.
	Matches(ctx context.Context, eventID, userID uuid.UUID) (*ScanResult, error)

	JoinedEvents(ctx context.Context, userID uuid.UUID) ([]JoinedEvent, error)

	// Download returns the image URL for one photo and records the
	// download on the membership row (set-union, idempotent).
	Download(ctx context.Context, userID, photoID uuid.UUID) (string, error)

	// DownloadAll returns URLs for every matched photo and records them
	// all as downloaded.
	DownloadAll(ctx context.Context, eventID, userID uuid.UUID) ([]string, error)
}
