package store

import (
	"context"
	"errors"

	"gacha_roller/internal/model"
)

func (s *saveServ) Get(ctx context.Context, player string) (*model.SaveRecord, error) {
	if player == "" {
		return nil, errors.New("player name is empty")
	}
	return s.repo.Get(ctx, player)
}

// Put Запись сохранения и чтение флагов модерации одной транзакцией:
// клиент должен узнать о бане на том же запросе, которым принёс состояние
func (s *saveServ) Put(ctx context.Context, rec *model.SaveRecord) (bool, bool, error) {
	if rec.Player == "" {
		return false, false, errors.New("player name is empty")
	}
	if len(rec.State) == 0 {
		return false, false, errors.New("state payload is empty")
	}

	var banned, kicked bool
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		banned, kicked, err = s.repo.Moderation(txCtx, rec.Player)
		if err != nil {
			return err
		}
		return s.repo.Upsert(txCtx, rec)
	})
	if err != nil {
		return false, false, err
	}

	return banned, kicked, nil
}

func (s *saveServ) Delete(ctx context.Context, player string) error {
	if player == "" {
		return errors.New("player name is empty")
	}
	return s.repo.Delete(ctx, player)
}
