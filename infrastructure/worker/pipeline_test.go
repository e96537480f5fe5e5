package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/infrastructure/faceapi"
	"github.com/Nihalturkar/Event-System-backend/pkg/facematch"
)

type fakePhotoRepo struct {
	mu          sync.Mutex
	unprocessed []models.Photo
	listErr     error
	processed   map[uuid.UUID]int // photo ID -> faces count
}

func (f *fakePhotoRepo) Create(ctx context.Context, photo *models.Photo) error { return nil }
func (f *fakePhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePhotoRepo) GetByEvent(ctx context.Context, eventID uuid.UUID, offset, limit int) ([]models.Photo, int64, error) {
	return nil, 0, nil
}
func (f *fakePhotoRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakePhotoRepo) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}
func (f *fakePhotoRepo) GetUnprocessedByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Photo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.unprocessed, nil
}
func (f *fakePhotoRepo) GetProcessedWithFaces(ctx context.Context, eventID uuid.UUID) ([]models.Photo, error) {
	return nil, nil
}
func (f *fakePhotoRepo) MarkProcessed(ctx context.Context, id uuid.UUID, facesCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processed == nil {
		f.processed = make(map[uuid.UUID]int)
	}
	f.processed[id] = facesCount
	return nil
}
func (f *fakePhotoRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}
func (f *fakePhotoRepo) CountProcessedByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeFaceRepo struct {
	mu    sync.Mutex
	saved []*models.Face
}

func (f *fakeFaceRepo) CreateBatch(ctx context.Context, faces []*models.Face) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, faces...)
	return nil
}
func (f *fakeFaceRepo) GetByPhoto(ctx context.Context, photoID uuid.UUID) ([]models.Face, error) {
	return nil, nil
}
func (f *fakeFaceRepo) DeleteByPhoto(ctx context.Context, photoID uuid.UUID) error { return nil }
func (f *fakeFaceRepo) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}
func (f *fakeFaceRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeEventRepo struct {
	mu             sync.Mutex
	processedDelta int
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.Event) error { return nil }
func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeEventRepo) GetByCode(ctx context.Context, code string) (*models.Event, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeEventRepo) GetByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]models.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) Update(ctx context.Context, event *models.Event) error { return nil }
func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (f *fakeEventRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}
func (f *fakeEventRepo) IncrementTotalPhotos(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (f *fakeEventRepo) IncrementProcessedPhotos(ctx context.Context, id uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processedDelta += delta
	return nil
}

type fakeDetector struct {
	faces map[string][]faceapi.DetectedFace
	errs  map[string]error
}

func (f *fakeDetector) Detect(ctx context.Context, imageURL string) ([]faceapi.DetectedFace, error) {
	if err, ok := f.errs[imageURL]; ok {
		return nil, err
	}
	return f.faces[imageURL], nil
}

func validDescriptor() []float32 {
	return make([]float32, facematch.DescriptorLength)
}

func newTestPipeline(photoRepo *fakePhotoRepo, faceRepo *fakeFaceRepo, eventRepo *fakeEventRepo, detector *fakeDetector) *ProcessingPipeline {
	return NewProcessingPipeline(photoRepo, faceRepo, eventRepo, detector, NewProcessingTracker(0))
}

func TestPipelineProcessesAllPhotos(t *testing.T) {
	eventID := uuid.New()
	photos := []models.Photo{
		{ID: uuid.New(), EventID: eventID, ImageURL: "u1"},
		{ID: uuid.New(), EventID: eventID, ImageURL: "u2"},
		{ID: uuid.New(), EventID: eventID, ImageURL: "u3"},
	}

	photoRepo := &fakePhotoRepo{unprocessed: photos}
	faceRepo := &fakeFaceRepo{}
	eventRepo := &fakeEventRepo{}
	detector := &fakeDetector{
		faces: map[string][]faceapi.DetectedFace{
			"u1": {{FaceID: "face_0", Descriptor: validDescriptor()}},
			"u2": {{FaceID: "face_0", Descriptor: validDescriptor()}, {FaceID: "face_1", Descriptor: validDescriptor()}},
			"u3": {},
		},
	}

	p := newTestPipeline(photoRepo, faceRepo, eventRepo, detector)
	p.tracker.Begin(eventID)
	p.run(eventID)

	progress := p.Progress(eventID)
	if progress.Status != services.StatusCompleted || progress.Progress != 100 {
		t.Fatalf("progress = %+v, want completed at 100", progress)
	}
	if progress.Processed != 3 || progress.Total != 3 {
		t.Errorf("processed/total = %d/%d, want 3/3", progress.Processed, progress.Total)
	}

	if len(faceRepo.saved) != 3 {
		t.Errorf("saved %d faces, want 3", len(faceRepo.saved))
	}
	if got := photoRepo.processed[photos[1].ID]; got != 2 {
		t.Errorf("photo 2 faces count = %d, want 2", got)
	}
	if got := photoRepo.processed[photos[2].ID]; got != 0 {
		t.Errorf("faceless photo count = %d, want 0", got)
	}
	if eventRepo.processedDelta != 3 {
		t.Errorf("processed counter delta = %d, want 3", eventRepo.processedDelta)
	}
}

func TestPipelineDetectionFailureDoesNotAbortBatch(t *testing.T) {
	eventID := uuid.New()
	good := models.Photo{ID: uuid.New(), EventID: eventID, ImageURL: "good"}
	bad := models.Photo{ID: uuid.New(), EventID: eventID, ImageURL: "bad"}

	photoRepo := &fakePhotoRepo{unprocessed: []models.Photo{bad, good}}
	faceRepo := &fakeFaceRepo{}
	eventRepo := &fakeEventRepo{}
	detector := &fakeDetector{
		faces: map[string][]faceapi.DetectedFace{
			"good": {{FaceID: "face_0", Descriptor: validDescriptor()}},
		},
		errs: map[string]error{
			"bad": errors.New("detector timeout"),
		},
	}

	p := newTestPipeline(photoRepo, faceRepo, eventRepo, detector)
	p.tracker.Begin(eventID)
	p.run(eventID)

	progress := p.Progress(eventID)
	if progress.Status != services.StatusCompleted {
		t.Fatalf("status = %q, want completed despite one failure", progress.Status)
	}
	if progress.Processed != 2 {
		t.Errorf("processed = %d, want 2", progress.Processed)
	}

	// The failed photo is marked processed with zero faces so the next
	// run will not pick it up again.
	if got, ok := photoRepo.processed[bad.ID]; !ok || got != 0 {
		t.Errorf("failed photo: processed=%v count=%d, want marked with 0", ok, got)
	}
	if got := photoRepo.processed[good.ID]; got != 1 {
		t.Errorf("good photo faces count = %d, want 1", got)
	}
	if eventRepo.processedDelta != 2 {
		t.Errorf("processed counter delta = %d, want 2", eventRepo.processedDelta)
	}
}

func TestPipelineSkipsWrongLengthDescriptors(t *testing.T) {
	eventID := uuid.New()
	photo := models.Photo{ID: uuid.New(), EventID: eventID, ImageURL: "u"}

	photoRepo := &fakePhotoRepo{unprocessed: []models.Photo{photo}}
	faceRepo := &fakeFaceRepo{}
	eventRepo := &fakeEventRepo{}
	detector := &fakeDetector{
		faces: map[string][]faceapi.DetectedFace{
			"u": {
				{FaceID: "face_0", Descriptor: validDescriptor()},
				{FaceID: "face_1", Descriptor: []float32{1, 2, 3}},
			},
		},
	}

	p := newTestPipeline(photoRepo, faceRepo, eventRepo, detector)
	p.tracker.Begin(eventID)
	p.run(eventID)

	if len(faceRepo.saved) != 1 {
		t.Errorf("saved %d faces, want 1 (wrong-length dropped)", len(faceRepo.saved))
	}
	if got := photoRepo.processed[photo.ID]; got != 1 {
		t.Errorf("faces count = %d, want 1", got)
	}
}

func TestPipelineEmptyEventCompletesImmediately(t *testing.T) {
	eventID := uuid.New()

	p := newTestPipeline(&fakePhotoRepo{}, &fakeFaceRepo{}, &fakeEventRepo{}, &fakeDetector{})
	p.tracker.Begin(eventID)
	p.run(eventID)

	progress := p.Progress(eventID)
	if progress.Status != services.StatusCompleted || progress.Progress != 100 {
		t.Errorf("progress = %+v, want completed at 100 with nothing to do", progress)
	}
}

func TestPipelineListFailureMarksRunFailed(t *testing.T) {
	eventID := uuid.New()

	photoRepo := &fakePhotoRepo{listErr: errors.New("connection refused")}
	p := newTestPipeline(photoRepo, &fakeFaceRepo{}, &fakeEventRepo{}, &fakeDetector{})
	p.tracker.Begin(eventID)
	p.run(eventID)

	progress := p.Progress(eventID)
	if progress.Status != services.StatusFailed {
		t.Fatalf("status = %q, want failed", progress.Status)
	}
	if progress.Error == "" {
		t.Error("expected an error message on the failed run")
	}
}

func TestPipelineTriggerIgnoresDuplicateRuns(t *testing.T) {
	eventID := uuid.New()

	p := newTestPipeline(&fakePhotoRepo{}, &fakeFaceRepo{}, &fakeEventRepo{}, &fakeDetector{})

	if !p.tracker.Begin(eventID) {
		t.Fatal("first Begin should win")
	}

	// Trigger must not start a second run while one is in flight; if it
	// did, the tracker state would be reset to processing at 0.
	p.Trigger(eventID)

	if got := p.Progress(eventID).Status; got != services.StatusProcessing {
		t.Errorf("status = %q, want the original in-flight run untouched", got)
	}
}
