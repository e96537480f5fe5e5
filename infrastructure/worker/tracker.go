package worker

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/services"
)

// DefaultRetention is how long a terminal (completed/failed) entry stays
// visible before lookups revert to idle.
const DefaultRetention = 5 * time.Minute

type trackerEntry struct {
	progress  services.ProcessingProgress
	expiresAt time.Time // zero while processing
}

// ProcessingTracker keeps per-event pipeline state in process memory.
// State is intentionally volatile: a restart loses all in-flight
// progress while photos already marked processed stay processed.
type ProcessingTracker struct {
	mu        sync.Mutex
	entries   map[uuid.UUID]*trackerEntry
	retention time.Duration
	now       func() time.Time
}

func NewProcessingTracker(retention time.Duration) *ProcessingTracker {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &ProcessingTracker{
		entries:   make(map[uuid.UUID]*trackerEntry),
		retention: retention,
		now:       time.Now,
	}
}

// Begin claims the event for a new pipeline run. Returns false when a
// run is already in flight, which makes concurrent triggers for the
// same event collapse into one. The check and the insert happen under
// one lock acquisition; there is no window for two winners.
func (t *ProcessingTracker) Begin(eventID uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.entries[eventID]; ok && !t.expired(entry) {
		if entry.progress.Status == services.StatusProcessing {
			return false
		}
	}

	t.entries[eventID] = &trackerEntry{
		progress: services.ProcessingProgress{
			Status:   services.StatusProcessing,
			Progress: 0,
		},
	}
	return true
}

// Advance overwrites the progress percentage from the processed/total
// ratio. Not additive: the caller owns the running counts.
func (t *ProcessingTracker) Advance(eventID uuid.UUID, processed, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[eventID]
	if !ok {
		return
	}

	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(processed) / float64(total) * 100))
	}
	entry.progress = services.ProcessingProgress{
		Status:    services.StatusProcessing,
		Progress:  pct,
		Processed: processed,
		Total:     total,
	}
}

// Complete transitions the entry to its terminal completed state and
// schedules it for removal after the retention window.
func (t *ProcessingTracker) Complete(eventID uuid.UUID, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[eventID] = &trackerEntry{
		progress: services.ProcessingProgress{
			Status:    services.StatusCompleted,
			Progress:  100,
			Processed: total,
			Total:     total,
		},
		expiresAt: t.now().Add(t.retention),
	}
}

// Fail transitions the entry to its terminal failed state.
func (t *ProcessingTracker) Fail(eventID uuid.UUID, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[eventID] = &trackerEntry{
		progress: services.ProcessingProgress{
			Status: services.StatusFailed,
			Error:  errMsg,
		},
		expiresAt: t.now().Add(t.retention),
	}
}

// Progress returns the current state for the event, or the idle default
// when no entry exists or the terminal entry has expired.
func (t *ProcessingTracker) Progress(eventID uuid.UUID) services.ProcessingProgress {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[eventID]
	if !ok || t.expired(entry) {
		if ok {
			delete(t.entries, eventID)
		}
		return services.ProcessingProgress{Status: services.StatusIdle, Progress: 0}
	}
	return entry.progress
}

// Sweep removes expired terminal entries and returns how many were
// dropped. Expiry also happens lazily on read; the sweep keeps the map
// from accumulating entries for events nobody polls again.
func (t *ProcessingTracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, entry := range t.entries {
		if t.expired(entry) {
			delete(t.entries, id)
			removed++
		}
	}
	return removed
}

func (t *ProcessingTracker) expired(entry *trackerEntry) bool {
	return !entry.expiresAt.IsZero() && t.now().After(entry.expiresAt)
}
