package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gacha_roller/internal/model"
)

// fakeEventRepo Запоминает последний вставленный ивент
type fakeEventRepo struct {
	created   *model.ActiveEvent
	lastLimit uint64
}

func (f *fakeEventRepo) Create(ctx context.Context, ev model.ActiveEvent) (*model.ActiveEvent, error) {
	ev.ID = 1
	f.created = &ev
	return &ev, nil
}

func (f *fakeEventRepo) ListActive(ctx context.Context, limit uint64) ([]model.ActiveEvent, error) {
	f.lastLimit = limit
	return nil, nil
}

func (f *fakeEventRepo) Get(ctx context.Context, id int64) (*model.ActiveEvent, error) {
	return nil, model.ErrEventNotFound
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func TestPublishFillsDefaults(t *testing.T) {
	repo := &fakeEventRepo{}
	s := NewEventService(repo)

	created, err := s.Publish(context.Background(), model.ActiveEvent{
		Name:   "boost",
		EndsAt: time.Now().UTC().Add(time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, model.UnknownSuffix, created.SuffixName)
	assert.Equal(t, model.DefaultSuffixBoost, created.SuffixBoost)
	assert.Equal(t, 1.0, created.LuckMult)
	assert.Equal(t, 1.0, created.MoneyMult)
	assert.Equal(t, 1.0, created.RollTime)
	assert.False(t, created.StartsAt.IsZero(), "empty start must default to now")
}

func TestPublishRejectsBadWindows(t *testing.T) {
	s := NewEventService(&fakeEventRepo{})
	now := time.Now().UTC()

	_, err := s.Publish(context.Background(), model.ActiveEvent{
		StartsAt: now,
		EndsAt:   now,
	})
	assert.Error(t, err, "empty window")

	_, err = s.Publish(context.Background(), model.ActiveEvent{
		StartsAt: now.Add(-2 * time.Hour),
		EndsAt:   now.Add(-time.Hour),
	})
	assert.Error(t, err, "window in the past")
}

func TestPublishCapsDuration(t *testing.T) {
	repo := &fakeEventRepo{}
	s := NewEventService(repo)
	now := time.Now().UTC()

	created, err := s.Publish(context.Background(), model.ActiveEvent{
		SuffixName: "of Greed",
		StartsAt:   now,
		EndsAt:     now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, now.Add(maxEventDuration), created.EndsAt)
}

func TestListActiveCapsLimit(t *testing.T) {
	repo := &fakeEventRepo{}
	s := NewEventService(repo)

	_, err := s.ListActive(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(listLimitCap), repo.lastLimit)

	_, err = s.ListActive(context.Background(), 100500)
	require.NoError(t, err)
	assert.Equal(t, uint64(listLimitCap), repo.lastLimit)

	_, err = s.ListActive(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), repo.lastLimit)
}
