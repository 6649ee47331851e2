package sync

import (
	"context"
	"errors"
	"log"
	"time"

	"gacha_roller/internal/converter"
	"gacha_roller/internal/model"
	"gacha_roller/internal/repository"
	"gacha_roller/internal/service"
)

// PollLimit Максимум строк за один опрос общего хранилища
const PollLimit = 50

// Dispatcher Маршалинг замыканий в игровой цикл. Все мутации набора
// ивентов из фоновых горутин обязаны проходить через него
type Dispatcher interface {
	Dispatch(fn func())
}

type serv struct {
	repo     repository.EventStoreRepository
	director service.EventService
	disp     Dispatcher
	notifier service.Notifier
	origin   string
}

func NewSyncService(
	repo repository.EventStoreRepository,
	director service.EventService,
	disp Dispatcher,
	notifier service.Notifier,
	origin string,
) service.SyncService {
	return &serv{
		repo:     repo,
		director: director,
		disp:     disp,
		notifier: notifier,
		origin:   origin,
	}
}

// Publish Публикация черновика. Успех применяется локально сразу, не
// дожидаясь следующего опроса. Провал — единственная ошибка ядра, которая
// показывается пользователю; автоповтора нет
func (s *serv) Publish(ctx context.Context, draft model.EventDraft) {
	ev := converter.DraftToEvent(draft, s.origin, time.Now().UTC())

	created, err := s.repo.Create(ctx, ev)
	if err != nil {
		log.Printf("failed to publish event: %v", err)
		s.notifier.PublishFailed(err)
		return
	}

	s.disp.Dispatch(func() {
		if s.director.Ingest(*created) {
			s.notifier.ActiveEventsChanged(s.director.Active(time.Now()))
		}
	})
}

// Cycle Один цикл синхронизации: подхватить незнакомые активные записи и
// проверить досрочное завершение уже известных. Сетевые ошибки логируются
// и глотаются, следующий цикл повторит
func (s *serv) Cycle(ctx context.Context) {
	s.poll(ctx)
	s.detectEarlyTermination(ctx)
}

func (s *serv) poll(ctx context.Context) {
	events, err := s.repo.ListActive(ctx, PollLimit)
	if err != nil {
		log.Printf("event poll failed: %v", err)
		return
	}

	for _, ev := range events {
		if s.director.Seen(ev.ID) {
			continue
		}
		ev := ev
		s.disp.Dispatch(func() {
			if s.director.Ingest(ev) {
				s.notifier.ActiveEventsChanged(s.director.Active(time.Now()))
			}
		})
	}
}

// detectEarlyTermination Хранилище — единственный источник правды о времени
// жизни ивента: клиент не имеет права продолжать применять буст после того,
// как запись отозвана или завершена выше
func (s *serv) detectEarlyTermination(ctx context.Context) {
	for _, id := range s.director.RemoteIDs() {
		rec, err := s.repo.Get(ctx, id)

		ended := false
		switch {
		case errors.Is(err, model.ErrEventNotFound):
			ended = true
		case err != nil:
			log.Printf("event %d recheck failed: %v", id, err)
			continue
		default:
			ended = !rec.EndsAt.After(time.Now())
		}

		if !ended {
			continue
		}

		id := id
		s.disp.Dispatch(func() {
			if s.director.Terminate(id) {
				s.notifier.ActiveEventsChanged(s.director.Active(time.Now()))
			}
		})
	}
}
