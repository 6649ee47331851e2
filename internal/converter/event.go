package converter

import (
	"time"

	"gacha_roller/internal/api/dto/event"
	"gacha_roller/internal/model"
)

// ToActiveEvent Конвертация записи хранилища в доменный ивент.
// Отсутствующие поля заменяются значениями по умолчанию, запись без имени
// суффикса не роняет обработку, а получает заглушку
func ToActiveEvent(rec event.Record) model.ActiveEvent {
	ev := model.ActiveEvent{
		ID:          rec.ID,
		Name:        rec.EventName,
		SuffixName:  rec.SuffixName,
		SuffixBoost: rec.SuffixMultiplier,
		LuckMult:    rec.LuckMultiplier,
		MoneyMult:   rec.MoneyMultiplier,
		RollTime:    rec.RollTime,
		StartsAt:    rec.StartsAt,
		EndsAt:      rec.EndsAt,
		CreatedFrom: rec.CreatedFrom,
	}

	if ev.SuffixName == "" {
		ev.SuffixName = model.UnknownSuffix
	}
	if ev.SuffixBoost <= 0 {
		ev.SuffixBoost = model.DefaultSuffixBoost
	}
	if ev.LuckMult <= 0 {
		ev.LuckMult = 1.0
	}
	if ev.MoneyMult <= 0 {
		ev.MoneyMult = 1.0
	}
	if ev.RollTime <= 0 {
		ev.RollTime = 1.0
	}

	return ev
}

func ToEventRecord(ev model.ActiveEvent) event.Record {
	return event.Record{
		ID:               ev.ID,
		EventName:        ev.Name,
		SuffixName:       ev.SuffixName,
		SuffixMultiplier: ev.SuffixBoost,
		CreatedFrom:      ev.CreatedFrom,
		StartsAt:         ev.StartsAt,
		EndsAt:           ev.EndsAt,
		LuckMultiplier:   ev.LuckMult,
		MoneyMultiplier:  ev.MoneyMult,
		RollTime:         ev.RollTime,
	}
}

// DraftToEvent Разворачивает черновик в ивент с окном [now, now+Duration)
func DraftToEvent(draft model.EventDraft, from string, now time.Time) model.ActiveEvent {
	ev := model.ActiveEvent{
		Name:        draft.Name,
		SuffixName:  draft.SuffixName,
		SuffixBoost: draft.SuffixBoost,
		LuckMult:    draft.LuckMult,
		MoneyMult:   draft.MoneyMult,
		RollTime:    draft.RollTime,
		StartsAt:    now,
		EndsAt:      now.Add(draft.Duration),
		CreatedFrom: from,
	}

	if ev.SuffixBoost <= 0 {
		ev.SuffixBoost = model.DefaultSuffixBoost
	}
	if ev.LuckMult <= 0 {
		ev.LuckMult = 1.0
	}
	if ev.MoneyMult <= 0 {
		ev.MoneyMult = 1.0
	}
	if ev.RollTime <= 0 {
		ev.RollTime = 1.0
	}

	return ev
}
