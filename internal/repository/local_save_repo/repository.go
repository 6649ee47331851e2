package local_save_repo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gacha_roller/internal/api/dto/save"
	"gacha_roller/internal/converter"
	"gacha_roller/internal/model"
	"gacha_roller/internal/repository"
)

type repo struct {
	path string
}

// NewSnapshotRepository Локальный снапшот в JSON-файле. Используется как
// аварийный фолбэк, когда удалённое хранилище недоступно или не настроено
func NewSnapshotRepository(path string) repository.LocalSnapshotRepository {
	return &repo{path: path}
}

func (r *repo) Load() (*model.PlayerState, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrSaveNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var env save.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if env.Version != model.SaveFormatVersion {
		return nil, model.ErrVersionIncompatible
	}

	return converter.ToPlayerState(env.State)
}

// Save Пишет снапшот через временный файл и rename, чтобы не оставить
// полузаписанный файл при падении посреди записи
func (r *repo) Save(st *model.PlayerState) error {
	env := save.Envelope{
		Version: model.SaveFormatVersion,
		State:   converter.ToSaveState(st),
	}

	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := r.path + ".tmp"
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
