package persist

import (
	"context"
	"errors"
	"log"
	"math/big"
	"time"

	"gacha_roller/internal/model"
	"gacha_roller/internal/repository"
	"gacha_roller/internal/service"
)

type serv struct {
	remote repository.SaveStoreRepository // nil — оффлайн-режим
	local  repository.LocalSnapshotRepository
	player string
	dice   []model.DiceItem // Стартовые кубики для свежего профиля
}

// NewPersistService Координатор сохранений. Удалённое хранилище — основное,
// локальный снапшот — аварийный фолбэк и оффлайн-режим
func NewPersistService(
	remote repository.SaveStoreRepository,
	local repository.LocalSnapshotRepository,
	player string,
	startingDice []model.DiceItem,
) service.PersistService {
	return &serv{
		remote: remote,
		local:  local,
		player: player,
		dice:   startingDice,
	}
}

// Load Сначала удалённое хранилище, при любом сбое — локальный снапшот,
// дальше свежий профиль. Несовместимая версия удаляет удалённую запись и
// возвращается вызывающему вместе с состоянием (нужно подтверждение
// пользователя). Модерация фатальна
func (s *serv) Load(ctx context.Context) (*model.PlayerState, error) {
	var versionErr error

	if s.remote != nil {
		st, err := s.remote.Load(ctx, s.player)
		switch {
		case err == nil:
			s.normalize(st)
			return st, nil
		case errors.Is(err, model.ErrBanned) || errors.Is(err, model.ErrKicked):
			return nil, err
		case errors.Is(err, model.ErrVersionIncompatible):
			// Несовместимую запись удаляем, восстановлению она не подлежит
			log.Printf("remote save is incompatible, deleting it")
			if derr := s.remote.Delete(ctx, s.player); derr != nil {
				log.Printf("failed to delete incompatible save: %v", derr)
			}
			versionErr = err
		default:
			log.Printf("remote load failed, falling back to snapshot: %v", err)
		}
	}

	st, err := s.local.Load()
	if err != nil {
		if !errors.Is(err, model.ErrSaveNotFound) {
			log.Printf("snapshot load failed, starting fresh: %v", err)
		}
		st = model.NewPlayerState(s.player, s.dice)
	}

	s.normalize(st)
	return st, versionErr
}

// SaveAsync Запись только в удалённое хранилище. При сбое полагаемся на
// следующий автосейв; локально НЕ пишем — иначе при следующей загрузке
// воскреснет устаревшее состояние и данные разъедутся
func (s *serv) SaveAsync(st *model.PlayerState) {
	if s.remote == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.remote.Save(ctx, s.player, st); err != nil {
			if errors.Is(err, model.ErrBanned) || errors.Is(err, model.ErrKicked) {
				log.Fatalf("moderation flag on save: %v", err)
			}
			log.Printf("async save failed, next autosave will retry: %v", err)
		}
	}()
}

// SaveBlocking Завершающее сохранение с жёстким дедлайном. Если удалённая
// запись не успела или хранилище не настроено — локальный аварийный снапшот
func (s *serv) SaveBlocking(st *model.PlayerState, deadline time.Duration) error {
	if s.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), deadline)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- s.remote.Save(ctx, s.player, st)
		}()

		select {
		case err := <-done:
			if err == nil {
				return nil
			}
			if errors.Is(err, model.ErrBanned) || errors.Is(err, model.ErrKicked) {
				return err
			}
			log.Printf("final remote save failed: %v", err)
		case <-ctx.Done():
			log.Printf("final remote save timed out")
		}
	}

	return s.local.Save(st)
}

// normalize Приведение загруженного состояния к инвариантам. Нарушения
// исправляются молча, без ошибок
func (s *serv) normalize(st *model.PlayerState) {
	if st.Balance == nil || st.Balance.Sign() < 0 {
		st.Balance = big.NewInt(0)
	}
	if st.LifetimeEarned == nil || st.LifetimeEarned.Sign() < 0 {
		st.LifetimeEarned = big.NewInt(0)
	}
	if st.Gems < 0 {
		st.Gems = 0
	}

	if st.PlotSlots < 1 {
		st.PlotSlots = 1
	}
	if st.PlotSlots > model.MaxPlotSlots {
		st.PlotSlots = model.MaxPlotSlots
	}

	for i := range st.Inventory {
		if st.Inventory[i].BaseValue == nil {
			st.Inventory[i].BaseValue = big.NewInt(0)
		}
		if st.Inventory[i].Multiplier <= 0 {
			st.Inventory[i].Multiplier = 1.0
		}
	}

	// Ровно один бесконечный кубик, всегда на нулевой позиции. Дубликаты
	// и исчерпанные конечные кубики выбрасываются
	dice := []model.DiceItem{model.InfiniteDice()}
	for _, d := range st.Dice {
		if d.Infinite {
			continue
		}
		if d.Quantity == nil || d.Quantity.Sign() <= 0 {
			continue
		}
		if d.LuckMult < 1.0 {
			d.LuckMult = 1.0
		}
		dice = append(dice, d)
	}
	st.Dice = dice
	if st.SelectedDice < 0 || st.SelectedDice >= len(st.Dice) {
		st.SelectedDice = 0
	}

	// Экипировка: только живые индексы, без дубликатов, не больше ёмкости
	seen := make(map[int]struct{}, len(st.Equipped))
	equipped := st.Equipped[:0]
	for _, idx := range st.Equipped {
		if idx < 0 || idx >= len(st.Inventory) {
			continue
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		equipped = append(equipped, idx)
		if len(equipped) >= st.PlotSlots {
			break
		}
	}
	st.Equipped = equipped
}
