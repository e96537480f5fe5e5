package worker

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/services"
)

func TestTrackerBeginBlocksWhileProcessing(t *testing.T) {
	tracker := NewProcessingTracker(0)
	eventID := uuid.New()

	if !tracker.Begin(eventID) {
		t.Fatal("first Begin should succeed")
	}
	if tracker.Begin(eventID) {
		t.Fatal("second Begin should fail while a run is in flight")
	}

	tracker.Complete(eventID, 3)
	if !tracker.Begin(eventID) {
		t.Fatal("Begin should succeed again after the run completed")
	}
}

func TestTrackerBeginAfterFailure(t *testing.T) {
	tracker := NewProcessingTracker(0)
	eventID := uuid.New()

	tracker.Begin(eventID)
	tracker.Fail(eventID, "boom")

	if !tracker.Begin(eventID) {
		t.Fatal("Begin should succeed after a failed run")
	}
	if got := tracker.Progress(eventID).Status; got != services.StatusProcessing {
		t.Errorf("Status = %q, want %q", got, services.StatusProcessing)
	}
}

func TestTrackerConcurrentBeginSingleWinner(t *testing.T) {
	tracker := NewProcessingTracker(0)
	eventID := uuid.New()

	const goroutines = 50
	var wg sync.WaitGroup
	wins := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.Begin(eventID) {
				wins <- true
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	if count != 1 {
		t.Errorf("got %d winners, want exactly 1", count)
	}
}

func TestTrackerProgressLifecycle(t *testing.T) {
	tracker := NewProcessingTracker(0)
	eventID := uuid.New()

	if got := tracker.Progress(eventID); got.Status != services.StatusIdle || got.Progress != 0 {
		t.Fatalf("untracked event: got %+v, want idle at 0", got)
	}

	tracker.Begin(eventID)
	if got := tracker.Progress(eventID); got.Status != services.StatusProcessing || got.Progress != 0 {
		t.Fatalf("after Begin: got %+v, want processing at 0", got)
	}

	tracker.Advance(eventID, 1, 3)
	got := tracker.Progress(eventID)
	if got.Progress != 33 || got.Processed != 1 || got.Total != 3 {
		t.Errorf("after 1/3: got %+v, want progress 33", got)
	}

	tracker.Advance(eventID, 2, 3)
	if got := tracker.Progress(eventID); got.Progress != 67 {
		t.Errorf("after 2/3: progress = %d, want 67", got.Progress)
	}

	tracker.Complete(eventID, 3)
	got = tracker.Progress(eventID)
	if got.Status != services.StatusCompleted || got.Progress != 100 || got.Processed != 3 {
		t.Errorf("after Complete: got %+v, want completed at 100", got)
	}
}

func TestTrackerFailureState(t *testing.T) {
	tracker := NewProcessingTracker(0)
	eventID := uuid.New()

	tracker.Begin(eventID)
	tracker.Fail(eventID, "detector unreachable")

	got := tracker.Progress(eventID)
	if got.Status != services.StatusFailed {
		t.Errorf("Status = %q, want %q", got.Status, services.StatusFailed)
	}
	if got.Error != "detector unreachable" {
		t.Errorf("Error = %q, want the failure message", got.Error)
	}
}

func TestTrackerTerminalEntryExpires(t *testing.T) {
	tracker := NewProcessingTracker(5 * time.Minute)
	eventID := uuid.New()

	now := time.Now()
	tracker.now = func() time.Time { return now }

	tracker.Begin(eventID)
	tracker.Complete(eventID, 2)

	// Just before the retention window ends the entry is still visible.
	tracker.now = func() time.Time { return now.Add(5*time.Minute - time.Second) }
	if got := tracker.Progress(eventID).Status; got != services.StatusCompleted {
		t.Fatalf("before expiry: Status = %q, want completed", got)
	}

	tracker.now = func() time.Time { return now.Add(5*time.Minute + time.Second) }
	if got := tracker.Progress(eventID).Status; got != services.StatusIdle {
		t.Errorf("after expiry: Status = %q, want idle", got)
	}
}

func TestTrackerProcessingNeverExpires(t *testing.T) {
	tracker := NewProcessingTracker(5 * time.Minute)
	eventID := uuid.New()

	now := time.Now()
	tracker.now = func() time.Time { return now }
	tracker.Begin(eventID)

	tracker.now = func() time.Time { return now.Add(time.Hour) }
	if got := tracker.Progress(eventID).Status; got != services.StatusProcessing {
		t.Errorf("in-flight entry expired: Status = %q, want processing", got)
	}
	if tracker.Begin(eventID) {
		t.Error("Begin should still be blocked by the in-flight run")
	}
}

func TestTrackerSweep(t *testing.T) {
	tracker := NewProcessingTracker(5 * time.Minute)
	now := time.Now()
	tracker.now = func() time.Time { return now }

	expired := uuid.New()
	tracker.Begin(expired)
	tracker.Complete(expired, 1)

	active := uuid.New()
	tracker.Begin(active)

	tracker.now = func() time.Time { return now.Add(10 * time.Minute) }

	if removed := tracker.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if got := tracker.Progress(active).Status; got != services.StatusProcessing {
		t.Errorf("active entry swept: Status = %q, want processing", got)
	}
}
