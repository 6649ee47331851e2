package events

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
)

const (
	// scheduleInterval Сколько должно пройти с последнего решения о
	// планировании, прежде чем появится новый локальный ивент
	scheduleInterval = 5 * time.Minute
)

// serv Владеет набором активных ивентов. Мьютекс нужен, потому что
// Seen/RemoteIDs читаются из фоновых горутин синхронизации; мутации же
// всегда приходят из игрового цикла
type serv struct {
	mtx sync.RWMutex

	events []model.ActiveEvent // В порядке добавления
	byID   map[int64]struct{}

	suffixNames  []string
	origin       string
	lastSchedule time.Time
	nextLocalID  int64
}

// NewEventService suffixNames — имена суффиксов из таблицы контента, из них
// выбирается цель случайного локального ивента
func NewEventService(suffixNames []string, origin string) service.EventService {
	return &serv{
		byID:        make(map[int64]struct{}),
		suffixNames: append([]string(nil), suffixNames...),
		origin:      origin,
		nextLocalID: -1,
	}
}

func (s *serv) Active(now time.Time) []model.ActiveEvent {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var active []model.ActiveEvent
	for _, ev := range s.events {
		if ev.IsActive(now) {
			active = append(active, ev)
		}
	}
	return active
}

// MaybeScheduleLocal Первый вызов только взводит таймер: ивент не должен
// выстреливать сразу на старте
func (s *serv) MaybeScheduleLocal(now time.Time) *model.ActiveEvent {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.lastSchedule.IsZero() {
		s.lastSchedule = now
		return nil
	}
	if now.Sub(s.lastSchedule) < scheduleInterval || len(s.suffixNames) == 0 {
		return nil
	}

	suffix := s.suffixNames[rand.IntN(len(s.suffixNames))]
	ev := s.addLocked(s.buildLocal(suffix, now), now)
	return &ev
}

func (s *serv) ForceLocal(suffixName string, now time.Time) model.ActiveEvent {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.addLocked(s.buildLocal(suffixName, now), now)
}

// Ingest Идемпотентно: уже отслеживаемая identity — no-op. Любое добавление
// сбрасывает таймер локального планирования, чтобы мультиплеерные ивенты
// тоже подавляли локальный спам
func (s *serv) Ingest(ev model.ActiveEvent) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.byID[ev.ID]; ok {
		return false
	}
	s.addLocked(ev, time.Now())
	return true
}

func (s *serv) Seen(id int64) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.byID[id]
	return ok
}

func (s *serv) Prune(now time.Time) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	kept := s.events[:0]
	removed := false
	for _, ev := range s.events {
		if ev.EndsAt.After(now) {
			kept = append(kept, ev)
		} else {
			delete(s.byID, ev.ID)
			removed = true
		}
	}
	s.events = kept
	return removed
}

// Terminate Досрочное завершение по сигналу внешнего авторитета: запись
// убирается сразу, не дожидаясь Prune
func (s *serv) Terminate(id int64) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}

	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	s.events = kept
	delete(s.byID, id)
	return true
}

func (s *serv) RemoteIDs() []int64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var ids []int64
	for _, ev := range s.events {
		if ev.Remote() {
			ids = append(ids, ev.ID)
		}
	}
	return ids
}

func (s *serv) buildLocal(suffixName string, now time.Time) model.ActiveEvent {
	if suffixName == "" {
		suffixName = model.UnknownSuffix
	}

	ev := model.ActiveEvent{
		ID:          s.nextLocalID,
		Name:        fmt.Sprintf("%s boost", suffixName),
		SuffixName:  suffixName,
		SuffixBoost: model.DefaultSuffixBoost,
		LuckMult:    1.0,
		MoneyMult:   1.0,
		RollTime:    1.0,
		StartsAt:    now,
		EndsAt:      now.Add(model.DefaultEventDuration),
		CreatedFrom: s.origin,
	}
	s.nextLocalID--
	return ev
}

// addLocked Добавление под мьютексом плюс сброс таймера планирования
func (s *serv) addLocked(ev model.ActiveEvent, now time.Time) model.ActiveEvent {
	s.events = append(s.events, ev)
	s.byID[ev.ID] = struct{}{}
	s.lastSchedule = now
	return ev
}
