package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/Nihalturkar/Event-System-backend/domain/models"
	"github.com/Nihalturkar/Event-System-backend/domain/services"
	"github.com/Nihalturkar/Event-System-backend/pkg/facematch"
)

type memEventRepo struct {
	events map[uuid.UUID]*models.Event
	byCode map[string]*models.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{
		events: make(map[uuid.UUID]*models.Event),
		byCode: make(map[string]*models.Event),
	}
}

func (r *memEventRepo) add(event *models.Event) {
	r.events[event.ID] = event
	r.byCode[event.EventCode] = event
}

func (r *memEventRepo) Create(ctx context.Context, event *models.Event) error {
	event.ID = uuid.New()
	r.add(event)
	return nil
}
func (r *memEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}
func (r *memEventRepo) GetByCode(ctx context.Context, code string) (*models.Event, error) {
	event, ok := r.byCode[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return event, nil
}
func (r *memEventRepo) GetByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]models.Event, error) {
	return nil, nil
}
func (r *memEventRepo) Update(ctx context.Context, event *models.Event) error { return nil }
func (r *memEventRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (r *memEventRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	_, ok := r.byCode[code]
	return ok, nil
}
func (r *memEventRepo) IncrementTotalPhotos(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (r *memEventRepo) IncrementProcessedPhotos(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}

type memGuestRepo struct {
	guests map[string]*models.EventGuest
}

func newMemGuestRepo() *memGuestRepo {
	return &memGuestRepo{guests: make(map[string]*models.EventGuest)}
}

func guestKey(eventID, userID uuid.UUID) string {
	return eventID.String() + "/" + userID.String()
}

func (r *memGuestRepo) Create(ctx context.Context, guest *models.EventGuest) error {
	guest.ID = uuid.New()
	r.guests[guestKey(guest.EventID, guest.UserID)] = guest
	return nil
}
func (r *memGuestRepo) GetByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*models.EventGuest, error) {
	guest, ok := r.guests[guestKey(eventID, userID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return guest, nil
}
func (r *memGuestRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.EventGuest, error) {
	var out []models.EventGuest
	for _, g := range r.guests {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}
func (r *memGuestRepo) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]models.EventGuest, error) {
	return nil, nil
}
func (r *memGuestRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *memGuestRepo) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *memGuestRepo) SaveScanResult(ctx context.Context, guest *models.EventGuest) error {
	key := guestKey(guest.EventID, guest.UserID)
	if existing, ok := r.guests[key]; ok {
		existing.MatchedPhotoIDs = guest.MatchedPhotoIDs
		existing.MatchedCount = guest.MatchedCount
		existing.LastScannedAt = guest.LastScannedAt
		return nil
	}
	guest.ID = uuid.New()
	r.guests[key] = guest
	return nil
}
func (r *memGuestRepo) Update(ctx context.Context, guest *models.EventGuest) error {
	r.guests[guestKey(guest.EventID, guest.UserID)] = guest
	return nil
}

type memPhotoRepo struct {
	photos    map[uuid.UUID]*models.Photo
	withFaces []models.Photo
}

func newMemPhotoRepo() *memPhotoRepo {
	return &memPhotoRepo{photos: make(map[uuid.UUID]*models.Photo)}
}

func (r *memPhotoRepo) Create(ctx context.Context, photo *models.Photo) error { return nil }
func (r *memPhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	photo, ok := r.photos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return photo, nil
}
func (r *memPhotoRepo) GetByEvent(ctx context.Context, eventID uuid.UUID, offset, limit int) ([]models.Photo, int64, error) {
	return nil, 0, nil
}
func (r *memPhotoRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (r *memPhotoRepo) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *memPhotoRepo) GetUnprocessedByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Photo, error) {
	return nil, nil
}
func (r *memPhotoRepo) GetProcessedWithFaces(ctx context.Context, eventID uuid.UUID) ([]models.Photo, error) {
	return r.withFaces, nil
}
func (r *memPhotoRepo) MarkProcessed(ctx context.Context, id uuid.UUID, facesCount int) error {
	return nil
}
func (r *memPhotoRepo) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *memPhotoRepo) CountProcessedByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return 0, nil
}

type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	r.users[user.ID] = user
	return nil
}
func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}
func (r *memUserRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}
func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// photoWithFace builds a processed photo containing one face at the
// given single-component distance from the zero descriptor.
func photoWithFace(eventID uuid.UUID, distance float32) models.Photo {
	descriptor := make([]float32, facematch.DescriptorLength)
	descriptor[0] = distance
	return models.Photo{
		ID:           uuid.New(),
		EventID:      eventID,
		ImageURL:     "https://cdn.example.com/" + uuid.NewString(),
		ThumbnailURL: "https://cdn.example.com/thumb/" + uuid.NewString(),
		IsProcessed:  true,
		FacesCount:   1,
		Faces: []models.Face{
			{Descriptor: pgvector.NewVector(descriptor)},
		},
	}
}

func newTestGuestService(eventRepo *memEventRepo, guestRepo *memGuestRepo, photoRepo *memPhotoRepo, userRepo *memUserRepo) services.GuestService {
	return NewGuestService(eventRepo, guestRepo, photoRepo, userRepo, facematch.DefaultThreshold)
}

func TestGuestJoinIdempotent(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMemEventRepo()
	guestRepo := newMemGuestRepo()

	event := &models.Event{ID: uuid.New(), EventCode: "WED25ABC", IsActive: true}
	eventRepo.add(event)
	userID := uuid.New()

	svc := newTestGuestService(eventRepo, guestRepo, newMemPhotoRepo(), newMemUserRepo())

	_, first, err := svc.Join(ctx, userID, "wed25abc")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	_, second, err := svc.Join(ctx, userID, "WED25ABC")
	if err != nil {
		t.Fatalf("second Join: %v", err)
	}
	if first.ID != second.ID {
		t.Error("second join created a new membership row")
	}
	if len(guestRepo.guests) != 1 {
		t.Errorf("got %d membership rows, want 1", len(guestRepo.guests))
	}
}

func TestGuestJoinUnknownOrInactiveEvent(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMemEventRepo()
	eventRepo.add(&models.Event{ID: uuid.New(), EventCode: "OLD24XYZ", IsActive: false})

	svc := newTestGuestService(eventRepo, newMemGuestRepo(), newMemPhotoRepo(), newMemUserRepo())

	if _, _, err := svc.Join(ctx, uuid.New(), "NOPE1234"); !errors.Is(err, services.ErrEventNotFound) {
		t.Errorf("unknown code: err = %v, want ErrEventNotFound", err)
	}
	if _, _, err := svc.Join(ctx, uuid.New(), "OLD24XYZ"); !errors.Is(err, services.ErrEventNotFound) {
		t.Errorf("inactive event: err = %v, want ErrEventNotFound", err)
	}
}

func TestGuestScanRejectsBadDescriptor(t *testing.T) {
	svc := newTestGuestService(newMemEventRepo(), newMemGuestRepo(), newMemPhotoRepo(), newMemUserRepo())

	for _, bad := range [][]float32{nil, {}, make([]float32, 64), make([]float32, 129)} {
		if _, err := svc.Scan(context.Background(), uuid.New(), uuid.New(), bad); !errors.Is(err, services.ErrInvalidDescriptor) {
			t.Errorf("descriptor len %d: err = %v, want ErrInvalidDescriptor", len(bad), err)
		}
	}
}

func TestGuestScanMatchesAndPersists(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMemEventRepo()
	guestRepo := newMemGuestRepo()
	photoRepo := newMemPhotoRepo()
	userRepo := newMemUserRepo()

	event := &models.Event{ID: uuid.New(), EventCode: "PRT25AAA", IsActive: true}
	eventRepo.add(event)

	near := photoWithFace(event.ID, 0.3)
	atThreshold := photoWithFace(event.ID, 0.5)
	far := photoWithFace(event.ID, 2.0)
	photoRepo.withFaces = []models.Photo{near, atThreshold, far}

	user := &models.User{Phone: "+1000000001", Role: models.RoleGuest}
	userRepo.Create(ctx, user)

	svc := newTestGuestService(eventRepo, guestRepo, photoRepo, userRepo)

	probe := make([]float32, facematch.DescriptorLength)
	result, err := svc.Scan(ctx, event.ID, user.ID, probe)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	// Distance 0.3 matches, 0.5 is exactly at the threshold and does
	// not, 2.0 is far out.
	if result.MatchedCount != 1 {
		t.Fatalf("MatchedCount = %d, want 1", result.MatchedCount)
	}
	if result.Photos[0].ID != near.ID {
		t.Errorf("matched photo = %s, want %s", result.Photos[0].ID, near.ID)
	}

	guest, err := guestRepo.GetByEventAndUser(ctx, event.ID, user.ID)
	if err != nil {
		t.Fatalf("membership not persisted: %v", err)
	}
	if guest.MatchedCount != 1 || len(guest.MatchedPhotoIDs) != 1 {
		t.Errorf("persisted set = %v (count %d), want the same snapshot", guest.MatchedPhotoIDs, guest.MatchedCount)
	}
	if guest.LastScannedAt == nil {
		t.Error("LastScannedAt not set")
	}
}

func TestGuestRescanOverwritesMatches(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMemEventRepo()
	guestRepo := newMemGuestRepo()
	photoRepo := newMemPhotoRepo()
	userRepo := newMemUserRepo()

	event := &models.Event{ID: uuid.New(), EventCode: "PRT25BBB", IsActive: true}
	eventRepo.add(event)

	user := &models.User{Phone: "+1000000002", Role: models.RoleGuest}
	userRepo.Create(ctx, user)

	svc := newTestGuestService(eventRepo, guestRepo, photoRepo, userRepo)
	probe := make([]float32, facematch.DescriptorLength)

	matching := photoWithFace(event.ID, 0.1)
	photoRepo.withFaces = []models.Photo{matching}
	if _, err := svc.Scan(ctx, event.ID, user.ID, probe); err != nil {
		t.Fatalf("first Scan: %v", err)
	}

	// The matching photo disappears before the second scan; the old
	// match must not survive it.
	photoRepo.withFaces = nil
	result, err := svc.Scan(ctx, event.ID, user.ID, probe)
	if err != nil {
		t.Fatalf("second Scan: %v", err)
	}
	if result.MatchedCount != 0 {
		t.Errorf("MatchedCount after rescan = %d, want 0", result.MatchedCount)
	}

	guest, _ := guestRepo.GetByEventAndUser(ctx, event.ID, user.ID)
	if len(guest.MatchedPhotoIDs) != 0 {
		t.Errorf("persisted matches = %v, want the overwritten empty set", guest.MatchedPhotoIDs)
	}
}

func TestGuestMatchesRequiresMembership(t *testing.T) {
	svc := newTestGuestService(newMemEventRepo(), newMemGuestRepo(), newMemPhotoRepo(), newMemUserRepo())

	if _, err := svc.Matches(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, services.ErrNotJoined) {
		t.Errorf("err = %v, want ErrNotJoined", err)
	}
}

func TestGuestDownloadRecordsUnion(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMemEventRepo()
	guestRepo := newMemGuestRepo()
	photoRepo := newMemPhotoRepo()

	event := &models.Event{ID: uuid.New(), EventCode: "PRT25CCC", IsActive: true}
	eventRepo.add(event)

	photoA := &models.Photo{ID: uuid.New(), EventID: event.ID, ImageURL: "https://cdn.example.com/a.jpg"}
	photoB := &models.Photo{ID: uuid.New(), EventID: event.ID, ImageURL: "https://cdn.example.com/b.jpg"}
	photoRepo.photos[photoA.ID] = photoA
	photoRepo.photos[photoB.ID] = photoB

	userID := uuid.New()
	joined := time.Now()
	guestRepo.guests[guestKey(event.ID, userID)] = &models.EventGuest{
		ID:       uuid.New(),
		EventID:  event.ID,
		UserID:   userID,
		JoinedAt: joined,
	}

	svc := newTestGuestService(eventRepo, guestRepo, photoRepo, newMemUserRepo())

	// A, A, B downloads must leave exactly {A, B} recorded.
	for _, id := range []uuid.UUID{photoA.ID, photoA.ID, photoB.ID} {
		url, err := svc.Download(ctx, userID, id)
		if err != nil {
			t.Fatalf("Download(%s): %v", id, err)
		}
		if url == "" {
			t.Fatal("Download returned empty URL")
		}
	}

	guest, _ := guestRepo.GetByEventAndUser(ctx, event.ID, userID)
	if len(guest.DownloadedPhotoIDs) != 2 {
		t.Errorf("downloaded set = %v, want 2 distinct entries", guest.DownloadedPhotoIDs)
	}
}

func TestGuestDownloadAll(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMemEventRepo()
	guestRepo := newMemGuestRepo()
	photoRepo := newMemPhotoRepo()

	event := &models.Event{ID: uuid.New(), EventCode: "PRT25DDD", IsActive: true}
	eventRepo.add(event)

	photoA := &models.Photo{ID: uuid.New(), EventID: event.ID, ImageURL: "https://cdn.example.com/a.jpg"}
	photoB := &models.Photo{ID: uuid.New(), EventID: event.ID, ImageURL: "https://cdn.example.com/b.jpg"}
	photoRepo.photos[photoA.ID] = photoA
	photoRepo.photos[photoB.ID] = photoB
	deleted := uuid.New()

	userID := uuid.New()
	guestRepo.guests[guestKey(event.ID, userID)] = &models.EventGuest{
		ID:              uuid.New(),
		EventID:         event.ID,
		UserID:          userID,
		MatchedPhotoIDs: []uuid.UUID{photoA.ID, deleted, photoB.ID},
		MatchedCount:    3,
		JoinedAt:        time.Now(),
	}

	svc := newTestGuestService(eventRepo, guestRepo, photoRepo, newMemUserRepo())

	urls, err := svc.DownloadAll(ctx, event.ID, userID)
	if err != nil {
		t.Fatalf("DownloadAll: %v", err)
	}
	// The deleted photo silently drops out.
	if len(urls) != 2 {
		t.Errorf("got %d URLs, want 2", len(urls))
	}

	guest, _ := guestRepo.GetByEventAndUser(ctx, event.ID, userID)
	if len(guest.DownloadedPhotoIDs) != 2 {
		t.Errorf("downloaded set = %v, want 2 entries", guest.DownloadedPhotoIDs)
	}
}
