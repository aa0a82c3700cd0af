package rating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stiapanreha-dev/yaminecraft-students-sub001/app/model"
)

type fakeSource struct {
	achievements []model.Achievement
	err          error
}

func (f *fakeSource) ListAll(ctx context.Context) ([]model.Achievement, error) {
	return f.achievements, f.err
}

type fakeStore struct {
	summaries []model.RatingSummary
	getErr    error
	upsertErr error
	upserted  [][]model.RatingSummary
}

func (f *fakeStore) UpsertAll(ctx context.Context, summaries []model.RatingSummary) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, summaries)
	return nil
}

func (f *fakeStore) GetAll(ctx context.Context) ([]model.RatingSummary, error) {
	return f.summaries, f.getErr
}

func (f *fakeStore) GetByUserID(ctx context.Context, userID string) (*model.RatingSummary, error) {
	for i := range f.summaries {
		if f.summaries[i].UserID == userID {
			return &f.summaries[i], nil
		}
	}
	return nil, errors.New("not found")
}

type fakeDirectory struct {
	ids []string
	err error
}

func (f *fakeDirectory) ListUserIDs(ctx context.Context) ([]string, error) {
	return f.ids, f.err
}

func newTestEngine(src *fakeSource, store *fakeStore, dir *fakeDirectory) *Engine {
	e := NewEngine(src, store, dir)
	e.now = func() time.Time { return date("2024-03-20") }
	return e
}

func TestRecompute(t *testing.T) {
	src := &fakeSource{achievements: []model.Achievement{
		{UserID: "B", Category: model.CategorySport, Points: 7, Date: date("2024-03-15")},
		{UserID: "A", Category: model.CategorySport, Points: 10, Date: date("2024-03-01")},
		{UserID: "", Category: model.CategoryStudy, Points: 1},
	}}
	store := &fakeStore{}

	report, err := newTestEngine(src, store, &fakeDirectory{}).Recompute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.UsersUpdated)
	assert.Equal(t, 1, report.SkippedNoUser)
	assert.Equal(t, date("2024-03-20"), report.RanAt)

	require.Len(t, store.upserted, 1)
	batch := store.upserted[0]
	require.Len(t, batch, 2)
	// Deterministic write order by userId.
	assert.Equal(t, "A", batch[0].UserID)
	assert.Equal(t, "B", batch[1].UserID)
}

func TestRecomputeSourceFaultAborts(t *testing.T) {
	src := &fakeSource{err: errors.New("cursor died")}
	store := &fakeStore{}

	_, err := newTestEngine(src, store, &fakeDirectory{}).Recompute(context.Background())

	require.Error(t, err)
	// Nothing may be written when the log could not be read in full.
	assert.Empty(t, store.upserted)
}

func TestRecomputeWriteFaultSurfaced(t *testing.T) {
	src := &fakeSource{achievements: []model.Achievement{
		{UserID: "A", Category: model.CategorySport, Points: 1},
	}}
	store := &fakeStore{upsertErr: errors.New("transaction aborted")}

	_, err := newTestEngine(src, store, &fakeDirectory{}).Recompute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist summaries")
}

func TestRecomputeEmptyLog(t *testing.T) {
	store := &fakeStore{}

	report, err := newTestEngine(&fakeSource{}, store, &fakeDirectory{}).Recompute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.UsersUpdated)
	require.Len(t, store.upserted, 1)
	assert.Empty(t, store.upserted[0])
}
