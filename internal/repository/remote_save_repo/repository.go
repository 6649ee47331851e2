package remote_save_repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gacha_roller/internal/api/dto/save"
	"gacha_roller/internal/converter"
	"gacha_roller/internal/model"
	"gacha_roller/internal/repository"
)

const requestTimeout = 10 * time.Second

type repo struct {
	baseURL string
	client  *http.Client
}

// NewSaveStoreRepository HTTP-клиент удалённых сохранений
func NewSaveStoreRepository(baseURL string) repository.SaveStoreRepository {
	return &repo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Load Читает удалённое сохранение. Флаги модерации и несовместимая версия
// превращаются в ошибки до того, как состояние попадёт к вызывающему
func (r *repo) Load(ctx context.Context, player string) (*model.PlayerState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.saveURL(player), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, model.ErrSaveNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", model.ErrRemoteUnavailable, resp.StatusCode)
	}

	var env save.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}

	if err := moderationError(env.Banned, env.Kicked); err != nil {
		return nil, err
	}
	if env.Version != model.SaveFormatVersion {
		return nil, model.ErrVersionIncompatible
	}

	st, err := converter.ToPlayerState(env.State)
	if err != nil {
		// Битые данные приравниваются к недоступному хранилищу
		return nil, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	return st, nil
}

func (r *repo) Save(ctx context.Context, player string, st *model.PlayerState) error {
	env := save.Envelope{
		Version: model.SaveFormatVersion,
		State:   converter.ToSaveState(st),
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.saveURL(player), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", model.ErrRemoteUnavailable, resp.StatusCode)
	}

	var put save.PutResponse
	if err := json.NewDecoder(resp.Body).Decode(&put); err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}

	return moderationError(put.Banned, put.Kicked)
}

func (r *repo) Delete(ctx context.Context, player string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.saveURL(player), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: unexpected status %d", model.ErrRemoteUnavailable, resp.StatusCode)
	}
	return nil
}

func (r *repo) saveURL(player string) string {
	return r.baseURL + "/saves/" + url.PathEscape(player)
}

func moderationError(banned, kicked bool) error {
	if banned {
		return model.ErrBanned
	}
	if kicked {
		return model.ErrKicked
	}
	return nil
}
