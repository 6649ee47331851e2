package store

import (
	"context"
	"errors"
	"time"

	"gacha_roller/internal/model"
)

const (
	// maxEventDuration Потолок длительности, защищает от вечных бустов
	maxEventDuration = time.Hour
	// listLimitCap Потолок лимита строк в выдаче активных ивентов
	listLimitCap = 100
)

// Publish Валидация и вставка ивента. Окно нормализуется: пустое начало —
// сейчас, слишком длинное окно обрезается
func (s *eventServ) Publish(ctx context.Context, ev model.ActiveEvent) (*model.ActiveEvent, error) {
	now := time.Now().UTC()

	if ev.StartsAt.IsZero() {
		ev.StartsAt = now
	}
	if !ev.EndsAt.After(ev.StartsAt) {
		return nil, errors.New("event window is empty")
	}
	if ev.EndsAt.Sub(ev.StartsAt) > maxEventDuration {
		ev.EndsAt = ev.StartsAt.Add(maxEventDuration)
	}
	if !ev.EndsAt.After(now) {
		return nil, errors.New("event is already over")
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

	return s.repo.Create(ctx, ev)
}

func (s *eventServ) ListActive(ctx context.Context, limit uint64) ([]model.ActiveEvent, error) {
	if limit == 0 || limit > listLimitCap {
		limit = listLimitCap
	}
	return s.repo.ListActive(ctx, limit)
}

func (s *eventServ) Get(ctx context.Context, id int64) (*model.ActiveEvent, error) {
	return s.repo.Get(ctx, id)
}

func (s *eventServ) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
