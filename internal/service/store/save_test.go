package store

import (
	"context"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gacha_roller/internal/model"
)

// passthroughTxManager Прозрачный менеджер транзакций для тестов
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func (m *passthroughTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeSaveRepo struct {
	banned, kicked bool
	upserted       *model.SaveRecord
}

func (f *fakeSaveRepo) Get(ctx context.Context, player string) (*model.SaveRecord, error) {
	return nil, model.ErrSaveNotFound
}

func (f *fakeSaveRepo) Upsert(ctx context.Context, rec *model.SaveRecord) error {
	f.upserted = rec
	return nil
}

func (f *fakeSaveRepo) Moderation(ctx context.Context, player string) (bool, bool, error) {
	return f.banned, f.kicked, nil
}

func (f *fakeSaveRepo) Delete(ctx context.Context, player string) error {
	return nil
}

func TestPutUpsertsInsideTransaction(t *testing.T) {
	repo := &fakeSaveRepo{}
	tx := &passthroughTxManager{}
	s := NewSaveService(repo, tx)

	rec := &model.SaveRecord{Player: "alice", Version: model.SaveFormatVersion, State: []byte(`{}`)}
	banned, kicked, err := s.Put(context.Background(), rec)
	require.NoError(t, err)

	assert.False(t, banned)
	assert.False(t, kicked)
	assert.Equal(t, 1, tx.calls, "moderation check and upsert share one transaction")
	require.NotNil(t, repo.upserted)
	assert.Equal(t, "alice", repo.upserted.Player)
}

func TestPutReportsModerationFlags(t *testing.T) {
	repo := &fakeSaveRepo{banned: true}
	s := NewSaveService(repo, &passthroughTxManager{})

	rec := &model.SaveRecord{Player: "alice", Version: model.SaveFormatVersion, State: []byte(`{}`)}
	banned, _, err := s.Put(context.Background(), rec)
	require.NoError(t, err)

	assert.True(t, banned)
	assert.NotNil(t, repo.upserted, "state is still stored, the client decides what to do with the flag")
}

func TestPutValidation(t *testing.T) {
	s := NewSaveService(&fakeSaveRepo{}, &passthroughTxManager{})

	_, _, err := s.Put(context.Background(), &model.SaveRecord{State: []byte(`{}`)})
	assert.Error(t, err, "empty player")

	_, _, err = s.Put(context.Background(), &model.SaveRecord{Player: "alice"})
	assert.Error(t, err, "empty state")

	_, err = s.Get(context.Background(), "")
	assert.Error(t, err)

	assert.Error(t, s.Delete(context.Background(), ""))
}
