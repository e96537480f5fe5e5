package services

import "github.com/google/uuid"

type ProcessingStatus string

const (
	StatusIdle       ProcessingStatus = "idle"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// ProcessingProgress is the externally visible state of one event's
// pipeline run.
type ProcessingProgress struct {
	Status    ProcessingStatus `json:"status"`
	Progress  int              `json:"progress"`
	Processed int              `json:"processed,omitempty"`
	Total     int              `json:"total,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// ProcessingService drives the per-event face detection pipeline.
type ProcessingService interface {
	// Trigger enqueues a pipeline run for the event and returns
	// immediately. If a run is already in flight for the event the call
	// is a silent no-op.
	Trigger(eventID uuid.UUID)

	// Progress reports the current pipeline state; idle when no run has
	// been triggered or the terminal entry has expired.
	Progress(eventID uuid.UUID) ProcessingProgress
}
