package game

import (
	"context"
	"errors"
	"log"
	"time"

	"gacha_roller/internal/config"
	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
)

const (
	// tickInterval Кадровая частота экономики: один логический тик в секунду
	tickInterval = time.Second
	// pollInterval Частота опроса общего хранилища ивентов
	pollInterval = 10 * time.Second
	// autosaveInterval Частота фонового автосейва
	autosaveInterval = 20 * time.Second
	// shutdownDeadline Жёсткий дедлайн завершающего сохранения
	shutdownDeadline = 5 * time.Second

	// cmdQueueSize Буфер очереди команд игрового цикла
	cmdQueueSize = 64
)

// Serv Оркестратор. Единственный владелец PlayerState: все мутации проходят
// через игровой цикл Run, внешние вызовы сериализуются очередью команд.
// Блокировок нет, потому что мутация никогда не конкурирует сама с собой
type Serv struct {
	cfg      config.BalanceConfig
	roller   service.RollService
	econ     service.EconomyService
	director service.EventService
	persist  service.PersistService
	notifier service.Notifier
	quests   service.QuestJournal // Опционально
	sync     service.SyncService  // nil в оффлайн-режиме

	st       *model.PlayerState
	lastRoll time.Time
	cmds     chan func()
}

func NewGameService(
	cfg config.BalanceConfig,
	roller service.RollService,
	econ service.EconomyService,
	director service.EventService,
	persist service.PersistService,
	notifier service.Notifier,
) *Serv {
	return &Serv{
		cfg:      cfg,
		roller:   roller,
		econ:     econ,
		director: director,
		persist:  persist,
		notifier: notifier,
		cmds:     make(chan func(), cmdQueueSize),
	}
}

// AttachSync Подключение гейтвея синхронизации. Отдельным сеттером, потому
// что гейтвею в свою очередь нужен Dispatch оркестратора
func (s *Serv) AttachSync(sync service.SyncService) {
	s.sync = sync
}

// AttachQuestJournal Внешний учёт квестов
func (s *Serv) AttachQuestJournal(j service.QuestJournal) {
	s.quests = j
}

// Dispatch Маршалинг замыкания в игровой цикл. Единственный легальный путь
// для фоновых горутин к состоянию игрока и набору ивентов
func (s *Serv) Dispatch(fn func()) {
	s.cmds <- fn
}

// Run Игровой цикл. Загружает состояние, крутит три независимых тикера и
// очередь команд до отмены контекста, после чего останавливает тикеры и
// делает завершающее сохранение с дедлайном
func (s *Serv) Run(ctx context.Context) error {
	st, err := s.persist.Load(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrVersionIncompatible) {
			return err
		}
		// Несовместимая версия уже удалена из хранилища; играем дальше
		// на восстановленном или свежем состоянии
		log.Printf("save version was incompatible, progress reset")
	}
	s.st = st
	s.notifier.StatsChanged()

	tick := time.NewTicker(tickInterval)
	poll := time.NewTicker(pollInterval)
	autosave := time.NewTicker(autosaveInterval)

	for {
		select {
		case <-ctx.Done():
			// Тикеры останавливаются до финального снапшота: после него
			// мутаций быть не должно
			tick.Stop()
			poll.Stop()
			autosave.Stop()
			return s.persist.SaveBlocking(s.st.Clone(), shutdownDeadline)

		case now := <-tick.C:
			s.onTick(now)

		case <-poll.C:
			if s.sync != nil {
				go s.sync.Cycle(context.Background())
			}

		case <-autosave.C:
			s.persist.SaveAsync(s.st.Clone())

		case cmd := <-s.cmds:
			cmd()
		}
	}
}

// onTick Один логический тик: чистка и планирование ивентов, начисление
// дохода, счётчики времени, авторолл
func (s *Serv) onTick(now time.Time) {
	if s.director.Prune(now) {
		s.notifier.ActiveEventsChanged(s.director.Active(now))
	}
	if ev := s.director.MaybeScheduleLocal(now); ev != nil {
		log.Printf("local event scheduled: %s", ev.Name)
		s.notifier.ActiveEventsChanged(s.director.Active(now))
	}

	active := s.director.Active(now)

	delta := s.econ.Tick(1, s.st.EquippedItems(), s.rebirthMoneyMult(), active)
	if delta.Sign() > 0 {
		s.st.Balance.Add(s.st.Balance, delta)
		s.st.LifetimeEarned.Add(s.st.LifetimeEarned, delta)
	}

	s.st.SessionPlaytime++
	s.st.LifetimePlaytime++
	if s.quests != nil {
		s.quests.OnTick(1)
		s.st.Quests = s.quests.Snapshots()
	}

	if s.st.AutoRoll && now.Sub(s.lastRoll) >= s.cooldown(active) {
		if _, err := s.doRoll(now); err != nil {
			log.Printf("auto roll skipped: %v", err)
		}
	}

	s.notifier.StatsChanged()
}

// rebirthMoneyMult Постоянный множитель дохода от ребёрсов
func (s *Serv) rebirthMoneyMult() float64 {
	return 1.0 + s.cfg.RebirthMoneyBonus()*float64(s.st.Rebirths)
}

// cooldown Текущий кулдаун ролла с учётом уровня прокачки и roll_time
// активных ивентов
func (s *Serv) cooldown(active []model.ActiveEvent) time.Duration {
	scale := 1.0
	for i := 0; i < s.st.CooldownLevel; i++ {
		scale *= s.cfg.CooldownFactor()
	}
	for _, ev := range active {
		if ev.RollTime > 0 {
			scale *= ev.RollTime
		}
	}
	return time.Duration(float64(s.cfg.BaseCooldown()) * scale)
}
