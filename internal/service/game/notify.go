package game

import (
	"sync"

	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
)

type NotificationKind int

const (
	NoteStatsChanged NotificationKind = iota
	NoteItemRolled
	NoteActiveEventsChanged
	NotePublishFailed
)

// Notification Одно уведомление слою представления
type Notification struct {
	Kind   NotificationKind
	Item   *model.RewardItem   // NoteItemRolled
	Events []model.ActiveEvent // NoteActiveEventsChanged
	Err    error               // NotePublishFailed
}

// Hub Рассылка уведомлений по ограниченным каналам. Отправка неблокирующая:
// отставший подписчик теряет уведомления, но не тормозит игровой цикл
type Hub struct {
	mtx  sync.RWMutex
	subs []chan Notification
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe Новый канал подписки с заданным буфером
func (h *Hub) Subscribe(buffer int) <-chan Notification {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Notification, buffer)

	h.mtx.Lock()
	h.subs = append(h.subs, ch)
	h.mtx.Unlock()

	return ch
}

func (h *Hub) broadcast(n Notification) {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
			// Переполненный подписчик пропускает уведомление
		}
	}
}

func (h *Hub) StatsChanged() {
	h.broadcast(Notification{Kind: NoteStatsChanged})
}

func (h *Hub) ItemRolled(item model.RewardItem) {
	h.broadcast(Notification{Kind: NoteItemRolled, Item: &item})
}

func (h *Hub) ActiveEventsChanged(events []model.ActiveEvent) {
	h.broadcast(Notification{Kind: NoteActiveEventsChanged, Events: events})
}

func (h *Hub) PublishFailed(err error) {
	h.broadcast(Notification{Kind: NotePublishFailed, Err: err})
}

var _ service.Notifier = (*Hub)(nil)
