package quests

import (
	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
)

// quest Сессионный квест на время игры, прогресс в секундах
type quest struct {
	name   string
	target int64
}

// serv Журнал сессионных квестов. Вызывается только из игрового цикла,
// блокировки не нужны
type serv struct {
	quests  []quest
	elapsed int64
}

// NewQuestJournal Журнал с базовым набором квестов на наигранное время
func NewQuestJournal() service.QuestJournal {
	return &serv{
		quests: []quest{
			{name: "Warm up: play for 5 minutes", target: 5 * 60},
			{name: "Settle in: play for 30 minutes", target: 30 * 60},
			{name: "Marathon: play for 2 hours", target: 2 * 60 * 60},
		},
	}
}

func (s *serv) OnTick(elapsedSeconds int64) {
	if elapsedSeconds > 0 {
		s.elapsed += elapsedSeconds
	}
}

// Snapshots Снимки прогресса для записи в сохранение
func (s *serv) Snapshots() []model.QuestSnapshot {
	out := make([]model.QuestSnapshot, 0, len(s.quests))
	for _, q := range s.quests {
		progress := s.elapsed
		if progress > q.target {
			progress = q.target
		}
		out = append(out, model.QuestSnapshot{
			Name:     q.name,
			Progress: int(progress),
			Target:   int(q.target),
		})
	}
	return out
}
