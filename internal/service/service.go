package service

import (
	"context"
	"math/big"
	"time"

	"gacha_roller/internal/model"
)

// RollService Чистый роллер наград: фактор удачи и активные ивенты на входе,
// предмет на выходе. Состояния нет
type RollService interface {
	Roll(luckFactor float64, activeEvents []model.ActiveEvent) model.RewardItem
}

// EconomyService Начисление пассивного дохода за тик
type EconomyService interface {
	Tick(elapsedSeconds int64, equipped []model.RewardItem, rebirthMult float64, activeEvents []model.ActiveEvent) *big.Int
}

// EventService Владелец набора активных ивентов
type EventService interface {
	Active(now time.Time) []model.ActiveEvent
	// MaybeScheduleLocal Планирует случайный локальный ивент, если с
	// последнего планирования прошёл настроенный интервал
	MaybeScheduleLocal(now time.Time) *model.ActiveEvent
	ForceLocal(suffixName string, now time.Time) model.ActiveEvent
	// Ingest Идемпотентное добавление. false — ивент уже отслеживается
	Ingest(ev model.ActiveEvent) bool
	Seen(id int64) bool
	// Prune Удаляет истёкшие ивенты, true если что-то удалено
	Prune(now time.Time) bool
	Terminate(id int64) bool
	RemoteIDs() []int64
}

// SyncService Фоновая синхронизация с общим хранилищем ивентов
type SyncService interface {
	// Publish Публикует черновик. Ошибка уходит в Notifier, не наружу
	Publish(ctx context.Context, draft model.EventDraft)
	// Cycle Один цикл опроса: подхват новых ивентов и проверка досрочного
	// завершения уже известных
	Cycle(ctx context.Context)
}

// PersistService Координатор сохранений: удалённое хранилище как основное,
// локальный снапшот как аварийный фолбэк
type PersistService interface {
	Load(ctx context.Context) (*model.PlayerState, error)
	SaveAsync(st *model.PlayerState)
	SaveBlocking(st *model.PlayerState, deadline time.Duration) error
}

// GameService Оркестратор. Все действия сериализуются через внутреннюю
// очередь команд, состояние игрока мутирует только игровой цикл
type GameService interface {
	Run(ctx context.Context) error
	// Dispatch Передаёт замыкание на исполнение игровому циклу
	Dispatch(fn func())

	Roll(ctx context.Context) (*model.RewardItem, error)
	Rebirth(ctx context.Context) error
	ToggleAutoRoll(ctx context.Context) (bool, error)
	ForceLocalEvent(ctx context.Context, suffixName string) error
	Save(ctx context.Context) error

	Merge(ctx context.Context, req model.MergeItems) (*model.RewardItem, error)
	Equip(ctx context.Context, invIndex int) error
	Unequip(ctx context.Context, slot int) error
	SelectDice(ctx context.Context, diceIndex int) error
	BuyLuckUpgrade(ctx context.Context) error
	BuyCooldownUpgrade(ctx context.Context) error

	Stats(ctx context.Context) (*model.Stats, error)
	ActiveEvents(ctx context.Context) ([]model.ActiveEvent, error)
}

// Notifier Уведомления для внешнего слоя представления. Вызовы не должны
// блокировать игровой цикл
type Notifier interface {
	StatsChanged()
	ItemRolled(item model.RewardItem)
	ActiveEventsChanged(events []model.ActiveEvent)
	// PublishFailed Единственная жёсткая ошибка, которую ядро показывает
	// пользователю: неудачная публикация ивента
	PublishFailed(err error)
}

// QuestJournal Внешний учёт квестов. Движок передаёт ему тики и кладёт
// снимки прогресса в сохранение, сама логика квестов живёт снаружи
type QuestJournal interface {
	OnTick(elapsedSeconds int64)
	Snapshots() []model.QuestSnapshot
}

// StoreEventService Серверная сторона: хранилище ивентов
type StoreEventService interface {
	Publish(ctx context.Context, ev model.ActiveEvent) (*model.ActiveEvent, error)
	ListActive(ctx context.Context, limit uint64) ([]model.ActiveEvent, error)
	Get(ctx context.Context, id int64) (*model.ActiveEvent, error)
	Delete(ctx context.Context, id int64) error
}

// StoreSaveService Серверная сторона: хранилище сохранений
type StoreSaveService interface {
	Get(ctx context.Context, player string) (*model.SaveRecord, error)
	Put(ctx context.Context, rec *model.SaveRecord) (banned, kicked bool, err error)
	Delete(ctx context.Context, player string) error
}
