package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/repositories"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/faceapi"
	"github.com/Nihalturkar/Event-System-backend/pkg/facematch"
	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
)

// Detector produces face descriptors for a stored image.
type Detector interface {
	Detect(ctx context.Context, imageURL string) ([]faceapi.DetectedFace, error)
}

// ProcessingPipeline runs face detection over an event's unprocessed
// photos in a background goroutine, one event at a time per event.
type ProcessingPipeline struct {
	photoRepo repositories.PhotoRepository
	faceRepo  repositories.FaceRepository
	eventRepo repositories.EventRepository
	detector  Detector
	tracker   *ProcessingTracker
}

func NewProcessingPipeline(
	photoRepo repositories.PhotoRepository,
	faceRepo repositories.FaceRepository,
	eventRepo repositories.EventRepository,
	detector Detector,
	tracker *ProcessingTracker,
) *ProcessingPipeline {
	return &ProcessingPipeline{
		photoRepo: photoRepo,
		faceRepo:  faceRepo,
		eventRepo: eventRepo,
		detector:  detector,
		tracker:   tracker,
	}
}

var _ services.ProcessingService = (*ProcessingPipeline)(nil)

// Trigger starts a pipeline run for the event unless one is already in
// flight. Returns immediately; progress is observable via Progress.
func (p *ProcessingPipeline) Trigger(eventID uuid.UUID) {
	if !p.tracker.Begin(eventID) {
		logger.Queue("trigger_skipped", "run already in flight", map[string]interface{}{
			"event_id": eventID.String(),
		})
		return
	}
	go p.run(eventID)
}

// Progress reports the current pipeline state for the event.
func (p *ProcessingPipeline) Progress(eventID uuid.UUID) services.ProcessingProgress {
	return p.tracker.Progress(eventID)
}

func (p *ProcessingPipeline) run(eventID uuid.UUID) {
	// Detached from any request lifetime: the run must outlive the
	// HTTP call that triggered it.
	ctx := context.Background()

	photos, err := p.photoRepo.GetUnprocessedByEvent(ctx, eventID)
	if err != nil {
		logger.QueueError("list_unprocessed", "failed to list unprocessed photos", err, map[string]interface{}{
			"event_id": eventID.String(),
		})
		p.tracker.Fail(eventID, fmt.Sprintf("failed to list unprocessed photos: %v", err))
		return
	}

	total := len(photos)
	if total == 0 {
		p.tracker.Complete(eventID, 0)
		return
	}

	logger.Queue("run_started", "processing event photos", map[string]interface{}{
		"event_id": eventID.String(),
		"total":    total,
	})

	processed := 0
	for i := range photos {
		p.processPhoto(ctx, eventID, &photos[i])

		// A photo that errored out still counts as handled; it was
		// marked processed so the next run does not pick it up again.
		if err := p.eventRepo.IncrementProcessedPhotos(ctx, eventID, 1); err != nil {
			logger.QueueError("increment_processed", "failed to bump processed counter", err, map[string]interface{}{
				"event_id": eventID.String(),
				"photo_id": photos[i].ID.String(),
			})
		}

		processed++
		p.tracker.Advance(eventID, processed, total)
	}

	p.tracker.Complete(eventID, total)
	logger.Queue("run_completed", "event photos processed", map[string]interface{}{
		"event_id": eventID.String(),
		"total":    total,
	})
}

// processPhoto detects faces in one photo and persists them. Detection
// failures mark the photo processed with zero faces so it cannot wedge
// the event in an endless retry loop.
func (p *ProcessingPipeline) processPhoto(ctx context.Context, eventID uuid.UUID, photo *models.Photo) {
	detected, err := p.detector.Detect(ctx, photo.ImageURL)
	if err != nil {
		logger.QueueError("detect_faces", "face detection failed for photo", err, map[string]interface{}{
			"event_id": eventID.String(),
			"photo_id": photo.ID.String(),
		})
		if err := p.photoRepo.MarkProcessed(ctx, photo.ID, 0); err != nil {
			logger.QueueError("mark_processed", "failed to mark failed photo processed", err, map[string]interface{}{
				"photo_id": photo.ID.String(),
			})
		}
		return
	}

	faces := make([]*models.Face, 0, len(detected))
	for _, d := range detected {
		if len(d.Descriptor) != facematch.DescriptorLength {
			logger.Queue("descriptor_skipped", "descriptor has unexpected length", map[string]interface{}{
				"photo_id": photo.ID.String(),
				"face_id":  d.FaceID,
				"length":   len(d.Descriptor),
			})
			continue
		}
		faces = append(faces, &models.Face{
			EventID:    eventID,
			PhotoID:    photo.ID,
			FaceID:     d.FaceID,
			Descriptor: pgvector.NewVector(d.Descriptor),
			BboxX:      d.BboxX,
			BboxY:      d.BboxY,
			BboxWidth:  d.BboxWidth,
			BboxHeight: d.BboxHeight,
		})
	}

	if err := p.faceRepo.CreateBatch(ctx, faces); err != nil {
		logger.QueueError("save_faces", "failed to save detected faces", err, map[string]interface{}{
			"event_id": eventID.String(),
			"photo_id": photo.ID.String(),
		})
		if err := p.photoRepo.MarkProcessed(ctx, photo.ID, 0); err != nil {
			logger.QueueError("mark_processed", "failed to mark failed photo processed", err, map[string]interface{}{
				"photo_id": photo.ID.String(),
			})
		}
		return
	}

	if err := p.photoRepo.MarkProcessed(ctx, photo.ID, len(faces)); err != nil {
		logger.QueueError("mark_processed", "failed to mark photo processed", err, map[string]interface{}{
			"photo_id": photo.ID.String(),
		})
		return
	}

	logger.Queue("photo_processed", "photo processed", map[string]interface{}{
		"event_id":    eventID.String(),
		"photo_id":    photo.ID.String(),
		"faces_found": len(faces),
	})
}
