package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/pkg/facematch"
	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
)

type GuestServiceImpl struct {
	eventRepo repositories.EventRepository
	guestRepo repositories.EventGuestRepository
	photoRepo repositories.PhotoRepository
	userRepo  repositories.UserRepository
	threshold float64
}

func NewGuestService(
	eventRepo repositories.EventRepository,
	guestRepo repositories.EventGuestRepository,
	photoRepo repositories.PhotoRepository,
	userRepo repositories.UserRepository,
	threshold float64,
) services.GuestService {
	if threshold <= 0 {
		threshold = facematch.DefaultThreshold
	}
	return &GuestServiceImpl{
		eventRepo: eventRepo,
		guestRepo: guestRepo,
		photoRepo: photoRepo,
		userRepo:  userRepo,
		threshold: threshold,
	}
}

// Join resolves the join code and creates the membership if needed.
func (s *GuestServiceImpl) Join(ctx context.Context, userID uuid.UUID, eventCode string) (*models.Event, *models.EventGuest, error) {
	code := strings.ToUpper(strings.TrimSpace(eventCode))

	event, err := s.eventRepo.GetByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, services.ErrEventNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !event.IsActive {
		return nil, nil, services.ErrEventNotFound
	}

	guest, err := s.guestRepo.GetByEventAndUser(ctx, event.ID, userID)
	if err == nil {
		return event, guest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	guest = &models.EventGuest{
		EventID:  event.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, nil, err
	}

	logger.API("guest_joined", "Guest joined event", map[string]interface{}{
		"event_id": event.ID.String(),
		"user_id":  userID.String(),
	})
	return event, guest, nil
}

// Scan matches the probe descriptor against every processed photo of
// the event and persists the result as the guest's new match set. The
// previous set is gone after this; a scan is a snapshot, not a merge.
func (s *GuestServiceImpl) Scan(ctx context.Context, eventID, userID uuid.UUID, descriptor []float32) (*services.ScanResult, error) {
	if len(descriptor) != facematch.DescriptorLength {
		return nil, services.ErrInvalidDescriptor
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrEventNotFound
	} else if err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.GetProcessedWithFaces(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var matchedIDs []uuid.UUID
	var matched []services.MatchedPhoto
	for _, photo := range photos {
		candidates := make([][]float32, 0, len(photo.Faces))
		for _, face := range photo.Faces {
			candidates = append(candidates, face.Descriptor.Slice())
		}
		if facematch.MatchesAny(descriptor, candidates, s.threshold) {
			matchedIDs = append(matchedIDs, photo.ID)
			matched = append(matched, services.MatchedPhoto{
				ID:           photo.ID,
				ThumbnailURL: photo.ThumbnailURL,
				ImageURL:     photo.ImageURL,
			})
		}
	}

	now := time.Now()
	guest := &models.EventGuest{
		EventID:         eventID,
		UserID:          userID,
		MatchedPhotoIDs: matchedIDs,
		MatchedCount:    len(matchedIDs),
		LastScannedAt:   &now,
		JoinedAt:        now,
	}
	if err := s.guestRepo.SaveScanResult(ctx, guest); err != nil {
		return nil, err
	}

	s.rememberDescriptor(ctx, userID, descriptor)

	logger.Face("scan_completed", "Guest scan completed", map[string]interface{}{
		"event_id":      eventID.String(),
		"user_id":       userID.String(),
		"matched_count": len(matchedIDs),
		"candidates":    len(photos),
	})

	return &services.ScanResult{
		MatchedCount: len(matchedIDs),
		Photos:       matched,
	}, nil
}

// rememberDescriptor caches the guest's descriptor on the user row so a
// returning guest can re-scan without a new selfie. Best effort.
func (s *GuestServiceImpl) rememberDescriptor(ctx context.Context, userID uuid.UUID, descriptor []float32) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return
	}
	vec := pgvector.NewVector(descriptor)
	user.FaceDescriptor = &vec
	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.FaceError("remember_descriptor", "Failed to cache descriptor", err, map[string]interface{}{
			"user_id": userID.String(),
		})
	}
}

// Matches returns the cached result of the last scan. Photos deleted
// since that scan drop out of the list.
func (s *GuestServiceImpl) Matches(ctx context.Context, eventID, userID uuid.UUID) (*services.ScanResult, error) {
	guest, err := s.membership(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	photos := make([]services.MatchedPhoto, 0, len(guest.MatchedPhotoIDs))
	for _, photoID := range guest.MatchedPhotoIDs {
		photo, err := s.photoRepo.GetByID(ctx, photoID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		photos = append(photos, services.MatchedPhoto{
			ID:           photo.ID,
			ThumbnailURL: photo.ThumbnailURL,
			ImageURL:     photo.ImageURL,
		})
	}

	return &services.ScanResult{
		MatchedCount: guest.MatchedCount,
		Photos:       photos,
	}, nil
}

func (s *GuestServiceImpl) JoinedEvents(ctx context.Context, userID uuid.UUID) ([]services.JoinedEvent, error) {
	memberships, err := s.guestRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	events := make([]services.JoinedEvent, 0, len(memberships))
	for _, m := range memberships {
		events = append(events, services.JoinedEvent{
			EventID:      m.EventID,
			EventName:    m.Event.EventName,
			EventDate:    m.Event.EventDate.Format(time.RFC3339),
			Venue:        m.Event.Venue,
			CoverImage:   m.Event.CoverImage,
			TotalPhotos:  m.Event.TotalPhotos,
			IsActive:     m.Event.IsActive,
			JoinedAt:     m.JoinedAt.Format(time.RFC3339),
			MatchedCount: m.MatchedCount,
		})
	}
	return events, nil
}

// Download hands out the photo URL and records the download on the
// membership row. Downloading the same photo twice leaves one entry.
func (s *GuestServiceImpl) Download(ctx context.Context, userID, photoID uuid.UUID) (string, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", services.ErrPhotoNotFound
	}
	if err != nil {
		return "", err
	}

	guest, err := s.membership(ctx, photo.EventID, userID)
	if err != nil {
		return "", err
	}

	guest.DownloadedPhotoIDs = unionIDs(guest.DownloadedPhotoIDs, []uuid.UUID{photoID})
	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return "", err
	}
	return photo.ImageURL, nil
}

// DownloadAll returns every matched photo URL and records all of them as
// downloaded in one update.
func (s *GuestServiceImpl) DownloadAll(ctx context.Context, eventID, userID uuid.UUID) ([]string, error) {
	guest, err := s.membership(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(guest.MatchedPhotoIDs))
	downloaded := make([]uuid.UUID, 0, len(guest.MatchedPhotoIDs))
	for _, photoID := range guest.MatchedPhotoIDs {
		photo, err := s.photoRepo.GetByID(ctx, photoID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		urls = append(urls, photo.ImageURL)
		downloaded = append(downloaded, photoID)
	}

	guest.DownloadedPhotoIDs = unionIDs(guest.DownloadedPhotoIDs, downloaded)
	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, err
	}
	return urls, nil
}

func (s *GuestServiceImpl) membership(ctx context.Context, eventID, userID uuid.UUID) (*models.EventGuest, error) {
	guest, err := s.guestRepo.GetByEventAndUser(ctx, eventID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotJoined
	}
	if err != nil {
		return nil, err
	}
	return guest, nil
}

// unionIDs merges additions into the set, preserving existing order and
// dropping duplicates.
func unionIDs(existing, additions []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}
	result := existing
	for _, id := range additions {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
