package store

import (
	"gacha_roller/internal/repository"
	"gacha_roller/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type eventServ struct {
	repo repository.EventStoreRepository
}

// NewEventService Серверный сервис хранилища ивентов
func NewEventService(repo repository.EventStoreRepository) service.StoreEventService {
	return &eventServ{
		repo: repo,
	}
}

type saveServ struct {
	repo      repository.StoreSaveRepository
	txManager trm.Manager
}

// NewSaveService Серверный сервис хранилища сохранений
func NewSaveService(repo repository.StoreSaveRepository, txManager trm.Manager) service.StoreSaveService {
	return &saveServ{
		repo:      repo,
		txManager: txManager,
	}
}
