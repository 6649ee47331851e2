package repository

import (
	"context"

	"gacha_roller/internal/model"
)

// EventStoreRepository Доступ к общему хранилищу ивентов. Две реализации:
// HTTP-клиент на стороне игры и Postgres на стороне сервера хранилища
type EventStoreRepository interface {
	Create(ctx context.Context, ev model.ActiveEvent) (*model.ActiveEvent, error)
	ListActive(ctx context.Context, limit uint64) ([]model.ActiveEvent, error)
	Get(ctx context.Context, id int64) (*model.ActiveEvent, error)
	Delete(ctx context.Context, id int64) error
}

// SaveStoreRepository Клиентский доступ к удалённым сохранениям.
// Несовместимая версия и флаги модерации возвращаются как ошибки
// из model (ErrVersionIncompatible, ErrBanned, ErrKicked)
type SaveStoreRepository interface {
	Load(ctx context.Context, player string) (*model.PlayerState, error)
	Save(ctx context.Context, player string, st *model.PlayerState) error
	Delete(ctx context.Context, player string) error
}

// LocalSnapshotRepository Локальный аварийный снапшот состояния
type LocalSnapshotRepository interface {
	Load() (*model.PlayerState, error)
	Save(st *model.PlayerState) error
}

// StoreSaveRepository Серверная сторона хранилища сохранений
type StoreSaveRepository interface {
	Get(ctx context.Context, player string) (*model.SaveRecord, error)
	Upsert(ctx context.Context, rec *model.SaveRecord) error
	Moderation(ctx context.Context, player string) (banned, kicked bool, err error)
	Delete(ctx context.Context, player string) error
}
