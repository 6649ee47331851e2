package remote_event_repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"gacha_roller/internal/api/dto/event"
	"gacha_roller/internal/converter"
	"gacha_roller/internal/model"
	"gacha_roller/internal/repository"
)

const requestTimeout = 10 * time.Second

type repo struct {
	baseURL string
	client  *http.Client
}

// NewEventStoreRepository HTTP-клиент общего хранилища ивентов
func NewEventStoreRepository(baseURL string) repository.EventStoreRepository {
	return &repo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Create Публикует ивент и возвращает созданную запись с серверным ID
func (r *repo) Create(ctx context.Context, ev model.ActiveEvent) (*model.ActiveEvent, error) {
	body, err := json.Marshal(converter.ToEventRecord(ev))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var rec event.Record
	if err := r.do(req, http.StatusCreated, &rec); err != nil {
		return nil, err
	}

	created := converter.ToActiveEvent(rec)
	return &created, nil
}

// ListActive Записи, чьё окно содержит текущий момент, по возрастанию starts_at
func (r *repo) ListActive(ctx context.Context, limit uint64) ([]model.ActiveEvent, error) {
	url := fmt.Sprintf("%s/events/active?limit=%d", r.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}

	var recs []event.Record
	if err := r.do(req, http.StatusOK, &recs); err != nil {
		return nil, err
	}

	events := make([]model.ActiveEvent, 0, len(recs))
	for _, rec := range recs {
		events = append(events, converter.ToActiveEvent(rec))
	}
	return events, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.ActiveEvent, error) {
	url := r.baseURL + "/events/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}

	var rec event.Record
	if err := r.do(req, http.StatusOK, &rec); err != nil {
		return nil, err
	}

	ev := converter.ToActiveEvent(rec)
	return &ev, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	url := r.baseURL + "/events/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	return r.do(req, http.StatusNoContent, nil)
}

// do Выполняет запрос и разбирает тело. 404 маппится на ErrEventNotFound,
// остальные неуспехи — на ErrRemoteUnavailable
func (r *repo) do(req *http.Request, wantStatus int, out any) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.ErrEventNotFound
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%w: unexpected status %d", model.ErrRemoteUnavailable, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	return nil
}
