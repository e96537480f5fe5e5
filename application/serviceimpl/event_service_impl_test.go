package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
)

// collidingEventRepo reports every code as taken.
type collidingEventRepo struct {
	*memEventRepo
	attempts int
}

func (r *collidingEventRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	r.attempts++
	return true, nil
}

func TestEventCreateAssignsUniqueCode(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMemEventRepo()

	svc := NewEventService(eventRepo, newMemPhotoRepo(), nil, newMemGuestRepo(), nil, "http://localhost:3000")

	event, err := svc.Create(ctx, uuid.New(), services.CreateEventInput{
		EventName: "Wedding",
		EventDate: time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(event.EventCode) != models.EventCodeLength {
		t.Errorf("code %q has length %d, want %d", event.EventCode, len(event.EventCode), models.EventCodeLength)
	}
	if !event.IsActive {
		t.Error("new event should be active")
	}
	if !event.Settings.AllowDownload {
		t.Error("downloads should default to allowed")
	}
}

func TestEventCreateGivesUpAfterCollisions(t *testing.T) {
	repo := &collidingEventRepo{memEventRepo: newMemEventRepo()}

	svc := NewEventService(repo, newMemPhotoRepo(), nil, newMemGuestRepo(), nil, "http://localhost:3000")

	_, err := svc.Create(context.Background(), uuid.New(), services.CreateEventInput{
		EventName: "Wedding",
		EventDate: time.Now(),
	})
	if !errors.Is(err, services.ErrEventCodeExhausted) {
		t.Fatalf("err = %v, want ErrEventCodeExhausted", err)
	}
	if repo.attempts != maxCodeAttempts {
		t.Errorf("attempted %d codes, want %d", repo.attempts, maxCodeAttempts)
	}
}

func TestEventUpdateRejectsNonOwner(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMemEventRepo()

	owner := uuid.New()
	event := &models.Event{ID: uuid.New(), PhotographerID: owner, EventCode: "WED25AAA", IsActive: true}
	eventRepo.add(event)

	svc := NewEventService(eventRepo, newMemPhotoRepo(), nil, newMemGuestRepo(), nil, "http://localhost:3000")

	name := "Renamed"
	_, err := svc.Update(ctx, uuid.New(), event.ID, services.UpdateEventInput{EventName: &name})
	if !errors.Is(err, services.ErrNotEventOwner) {
		t.Errorf("err = %v, want ErrNotEventOwner", err)
	}

	updated, err := svc.Update(ctx, owner, event.ID, services.UpdateEventInput{EventName: &name})
	if err != nil {
		t.Fatalf("owner Update: %v", err)
	}
	if updated.EventName != "Renamed" {
		t.Errorf("EventName = %q, want %q", updated.EventName, "Renamed")
	}
}

func TestEventGetByIDNotFound(t *testing.T) {
	svc := NewEventService(newMemEventRepo(), newMemPhotoRepo(), nil, newMemGuestRepo(), nil, "http://localhost:3000")

	if _, err := svc.GetByID(context.Background(), uuid.New()); !errors.Is(err, services.ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}
