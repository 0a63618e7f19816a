package water

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/audit"
)

type fakeRepository struct {
	mu      sync.Mutex
	nextID  uint
	intakes map[uint]WaterIntake
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, intakes: make(map[uint]WaterIntake)}
}

func (f *fakeRepository) Create(_ context.Context, intake *WaterIntake) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	intake.ID = f.nextID
	f.nextID++
	f.intakes[intake.ID] = *intake
	return nil
}

func (f *fakeRepository) ReadAllByUserID(_ context.Context, userID uint) ([]WaterIntake, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []WaterIntake
	for _, w := range f.intakes {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepository) ReadByIDForUser(_ context.Context, id, userID uint) (*WaterIntake, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.intakes[id]
	if !ok || w.UserID != userID {
		return nil, ErrWaterNotFound
	}
	return &w, nil
}

func (f *fakeRepository) Update(_ context.Context, intake *WaterIntake) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intakes[intake.ID] = *intake
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.intakes[id]
	if !ok || w.UserID != userID {
		return ErrWaterNotFound
	}
	delete(f.intakes, id)
	return nil
}

// recordingAudit captures entries synchronously so tests can assert on them.
type recordingAudit struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *recordingAudit) Record(_ uint, entry audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingAudit) all() []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Entry(nil), r.entries...)
}

func newTestService() (Service, *fakeRepository, *recordingAudit) {
	repo := newFakeRepository()
	rec := &recordingAudit{}
	return NewService(repo, rec, zap.NewNop()), repo, rec
}

func TestAdd_DefaultsRecordedAt(t *testing.T) {
	svc, _, _ := newTestService()

	before := time.Now().UTC()
	intake, err := svc.Add(context.Background(), 1, CreateRequest{AmountML: 250})
	require.NoError(t, err)

	assert.Equal(t, 250, intake.AmountML)
	assert.Equal(t, uint(1), intake.UserID)
	assert.False(t, intake.RecordedAt.Before(before))
}

func TestAdd_RecordsAuditEntry(t *testing.T) {
	svc, _, rec := newTestService()

	intake, err := svc.Add(context.Background(), 1, CreateRequest{AmountML: 250})
	require.NoError(t, err)

	entries := rec.all()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionAdd, entries[0].Action)
	assert.Equal(t, "water", entries[0].ObjectType)
	assert.Equal(t, intake.ID, entries[0].ObjectID)
	assert.Equal(t, 250, entries[0].Payload["amount_ml"])
}

func TestReadByID_ForeignRecordLooksMissing(t *testing.T) {
	svc, _, _ := newTestService()

	intake, err := svc.Add(context.Background(), 1, CreateRequest{AmountML: 250})
	require.NoError(t, err)

	_, err = svc.ReadByID(context.Background(), intake.ID, 2)
	assert.ErrorIs(t, err, ErrWaterNotFound)

	got, err := svc.ReadByID(context.Background(), intake.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, intake.ID, got.ID)
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, _, rec := newTestService()

	at := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	intake, err := svc.Add(context.Background(), 1, CreateRequest{AmountML: 250, RecordedAt: &at})
	require.NoError(t, err)

	amount := 500
	updated, err := svc.Update(context.Background(), intake.ID, 1, UpdateRequest{AmountML: &amount})
	require.NoError(t, err)
	assert.Equal(t, 500, updated.AmountML)
	assert.Equal(t, at, updated.RecordedAt)

	entries := rec.all()
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionUpdate, entries[1].Action)
}

func TestUpdate_ForeignRecord(t *testing.T) {
	svc, _, rec := newTestService()

	intake, err := svc.Add(context.Background(), 1, CreateRequest{AmountML: 250})
	require.NoError(t, err)

	amount := 500
	_, err = svc.Update(context.Background(), intake.ID, 2, UpdateRequest{AmountML: &amount})
	assert.ErrorIs(t, err, ErrWaterNotFound)
	assert.Len(t, rec.all(), 1)
}

func TestDelete_RemovesAndRecords(t *testing.T) {
	svc, repo, rec := newTestService()

	intake, err := svc.Add(context.Background(), 1, CreateRequest{AmountML: 250})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), intake.ID, 1))
	assert.Empty(t, repo.intakes)

	entries := rec.all()
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionDelete, entries[1].Action)
}

func TestReadAll_ScopedToOwner(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Add(context.Background(), 1, CreateRequest{AmountML: 250})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), 2, CreateRequest{AmountML: 300})
	require.NoError(t, err)

	mine, err := svc.ReadAll(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 250, mine[0].AmountML)
}
