package save

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "gacha_roller/internal/api/dto/save"
	"gacha_roller/internal/model"
)

// fakeServ Хранилище сохранений в памяти
type fakeServ struct {
	recs   map[string]*model.SaveRecord
	banned map[string]bool
}

func newFakeServ() *fakeServ {
	return &fakeServ{recs: make(map[string]*model.SaveRecord), banned: make(map[string]bool)}
}

func (f *fakeServ) Get(ctx context.Context, player string) (*model.SaveRecord, error) {
	rec, ok := f.recs[player]
	if !ok {
		return nil, model.ErrSaveNotFound
	}
	return rec, nil
}

func (f *fakeServ) Put(ctx context.Context, rec *model.SaveRecord) (bool, bool, error) {
	rec.Banned = f.banned[rec.Player]
	f.recs[rec.Player] = rec
	return rec.Banned, false, nil
}

func (f *fakeServ) Delete(ctx context.Context, player string) error {
	delete(f.recs, player)
	return nil
}

func newRouter(serv *fakeServ) chi.Router {
	h := NewHandler(HandlerDeps{Serv: serv})

	r := chi.NewRouter()
	r.Get("/saves/{player}", h.Get)
	r.Put("/saves/{player}", h.Put)
	r.Delete("/saves/{player}", h.Delete)
	return r
}

func putBody(t *testing.T) string {
	t.Helper()
	body, err := json.Marshal(dto.Envelope{
		Version: model.SaveFormatVersion,
		State:   dto.State{Name: "alice", Balance: "500"},
	})
	require.NoError(t, err)
	return string(body)
}

func TestPutThenGetRoundTrip(t *testing.T) {
	r := newRouter(newFakeServ())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/saves/alice", strings.NewReader(putBody(t))))
	require.Equal(t, http.StatusOK, w.Code)

	var put dto.PutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &put))
	assert.False(t, put.Banned)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/saves/alice", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var env dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, model.SaveFormatVersion, env.Version)
	assert.Equal(t, "500", env.State.Balance)
}

func TestGetMissingSaveIs404(t *testing.T) {
	r := newRouter(newFakeServ())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/saves/alice", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutReportsModerationFlag(t *testing.T) {
	serv := newFakeServ()
	serv.banned["alice"] = true
	r := newRouter(serv)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/saves/alice", strings.NewReader(putBody(t))))
	require.Equal(t, http.StatusOK, w.Code)

	var put dto.PutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &put))
	assert.True(t, put.Banned)
}

func TestPutRejectsBadJSON(t *testing.T) {
	r := newRouter(newFakeServ())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/saves/alice", strings.NewReader("{broken")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteIsIdempotent(t *testing.T) {
	r := newRouter(newFakeServ())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/saves/alice", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
