package event

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "gacha_roller/internal/api/dto/event"
	"gacha_roller/internal/model"
)

// fakeServ Хранилище ивентов в памяти
type fakeServ struct {
	nextID int64
	events map[int64]model.ActiveEvent
}

func newFakeServ() *fakeServ {
	return &fakeServ{nextID: 1, events: make(map[int64]model.ActiveEvent)}
}

func (f *fakeServ) Publish(ctx context.Context, ev model.ActiveEvent) (*model.ActiveEvent, error) {
	ev.ID = f.nextID
	f.nextID++
	f.events[ev.ID] = ev
	return &ev, nil
}

func (f *fakeServ) ListActive(ctx context.Context, limit uint64) ([]model.ActiveEvent, error) {
	var out []model.ActiveEvent
	for _, ev := range f.events {
		out = append(out, ev)
	}
	return out, nil
}

func (f *fakeServ) Get(ctx context.Context, id int64) (*model.ActiveEvent, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, model.ErrEventNotFound
	}
	return &ev, nil
}

func (f *fakeServ) Delete(ctx context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return model.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func newRouter(serv *fakeServ) chi.Router {
	h := NewHandler(HandlerDeps{Serv: serv})

	r := chi.NewRouter()
	r.Post("/events", h.Create)
	r.Get("/events/active", h.ListActive)
	r.Get("/events/{id}", h.Get)
	r.Delete("/events/{id}", h.Delete)
	return r
}

func TestCreateReturnsRecordWithID(t *testing.T) {
	r := newRouter(newFakeServ())

	now := time.Now().UTC()
	body, _ := json.Marshal(dto.Record{
		EventName:   "of Greed boost",
		SuffixName:  "of Greed",
		CreatedFrom: "alice",
		StartsAt:    now,
		EndsAt:      now.Add(time.Minute),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(string(body))))

	require.Equal(t, http.StatusCreated, w.Code)
	var rec dto.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "of Greed", rec.SuffixName)
}

func TestCreateRejectsBadJSON(t *testing.T) {
	r := newRouter(newFakeServ())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("{broken")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownEventIs404(t *testing.T) {
	r := newRouter(newFakeServ())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteEvent(t *testing.T) {
	serv := newFakeServ()
	now := time.Now().UTC()
	serv.Publish(context.Background(), model.ActiveEvent{Name: "boost", StartsAt: now, EndsAt: now.Add(time.Minute)})

	r := newRouter(serv)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/events/1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/events/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListActiveRejectsBadLimit(t *testing.T) {
	r := newRouter(newFakeServ())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/active?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/active", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
