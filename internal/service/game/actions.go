package game

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
)

var _ service.GameService = (*Serv)(nil)

// call Синхронное действие: замыкание исполняется игровым циклом, вызов
// ждёт результат или отмену контекста
func call[T any](ctx context.Context, s *Serv, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)

	s.Dispatch(func() {
		v, err := fn()
		ch <- result{v: v, err: err}
	})

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (s *Serv) Roll(ctx context.Context) (*model.RewardItem, error) {
	return call(ctx, s, func() (*model.RewardItem, error) {
		return s.doRoll(time.Now())
	})
}

func (s *Serv) Rebirth(ctx context.Context) error {
	_, err := call(ctx, s, func() (struct{}, error) {
		return struct{}{}, s.doRebirth()
	})
	return err
}

func (s *Serv) ToggleAutoRoll(ctx context.Context) (bool, error) {
	return call(ctx, s, func() (bool, error) {
		s.st.AutoRoll = !s.st.AutoRoll
		s.notifier.StatsChanged()
		return s.st.AutoRoll, nil
	})
}

func (s *Serv) ForceLocalEvent(ctx context.Context, suffixName string) error {
	_, err := call(ctx, s, func() (struct{}, error) {
		return struct{}{}, s.doForceEvent(suffixName)
	})
	return err
}

func (s *Serv) Save(ctx context.Context) error {
	_, err := call(ctx, s, func() (struct{}, error) {
		s.persist.SaveAsync(s.st.Clone())
		return struct{}{}, nil
	})
	return err
}

func (s *Serv) Merge(ctx context.Context, req model.MergeItems) (*model.RewardItem, error) {
	return call(ctx, s, func() (*model.RewardItem, error) {
		return s.doMerge(req)
	})
}

func (s *Serv) Equip(ctx context.Context, invIndex int) error {
	_, err := call(ctx, s, func() (struct{}, error) {
		return struct{}{}, s.doEquip(invIndex)
	})
	return err
}

func (s *Serv) Unequip(ctx context.Context, slot int) error {
	_, err := call(ctx, s, func() (struct{}, error) {
		return struct{}{}, s.doUnequip(slot)
	})
	return err
}

func (s *Serv) SelectDice(ctx context.Context, diceIndex int) error {
	_, err := call(ctx, s, func() (struct{}, error) {
		return struct{}{}, s.doSelectDice(diceIndex)
	})
	return err
}

func (s *Serv) BuyLuckUpgrade(ctx context.Context) error {
	_, err := call(ctx, s, func() (struct{}, error) {
		cost := scaledCost(s.cfg.LuckUpgradeBaseCost(), s.cfg.LuckUpgradeGrowth(), s.st.LuckLevel)
		if err := s.pay(cost); err != nil {
			return struct{}{}, err
		}
		s.st.LuckLevel++
		s.notifier.StatsChanged()
		return struct{}{}, nil
	})
	return err
}

func (s *Serv) BuyCooldownUpgrade(ctx context.Context) error {
	_, err := call(ctx, s, func() (struct{}, error) {
		cost := scaledCost(s.cfg.CooldownUpgradeBaseCost(), s.cfg.CooldownUpgradeGrowth(), s.st.CooldownLevel)
		if err := s.pay(cost); err != nil {
			return struct{}{}, err
		}
		s.st.CooldownLevel++
		s.notifier.StatsChanged()
		return struct{}{}, nil
	})
	return err
}

func (s *Serv) Stats(ctx context.Context) (*model.Stats, error) {
	return call(ctx, s, func() (*model.Stats, error) {
		return s.snapshotStats(time.Now()), nil
	})
}

func (s *Serv) ActiveEvents(ctx context.Context) ([]model.ActiveEvent, error) {
	return call(ctx, s, func() ([]model.ActiveEvent, error) {
		return s.director.Active(time.Now()), nil
	})
}

// doRoll Один ролл: проверка кулдауна, расчёт фактора удачи, розыгрыш,
// списание кубика и учёт награды. Атомарно с точки зрения вызывающего
func (s *Serv) doRoll(now time.Time) (*model.RewardItem, error) {
	active := s.director.Active(now)

	if !s.lastRoll.IsZero() && now.Sub(s.lastRoll) < s.cooldown(active) {
		return nil, errors.New("roll is on cooldown")
	}

	luck := s.luckFactor(active)
	item := s.roller.Roll(luck, active)

	s.consumeSelectedDice()

	s.st.Inventory = append(s.st.Inventory, item)
	if len(s.st.Equipped) < s.st.PlotSlots {
		s.st.Equipped = append(s.st.Equipped, len(s.st.Inventory)-1)
	}

	// Особо редкий дроп приносит премиум-валюту, счётчик ограничен сверху
	if item.Rarity >= s.cfg.GemRarityThreshold() && s.st.Gems < s.cfg.GemCap() {
		s.st.Gems++
	}

	s.lastRoll = now
	s.notifier.ItemRolled(item)
	s.notifier.StatsChanged()

	return &item, nil
}

// luckFactor Кубик × прокачка удачи × luck-множители активных ивентов
func (s *Serv) luckFactor(active []model.ActiveEvent) float64 {
	luck := s.st.Dice[s.st.SelectedDice].LuckMult
	luck *= 1.0 + s.cfg.LuckPerLevel()*float64(s.st.LuckLevel)
	for _, ev := range active {
		if ev.LuckMult > 0 {
			luck *= ev.LuckMult
		}
	}
	return luck
}

// consumeSelectedDice Списывает заряд выбранного кубика. Исчерпанный
// конечный кубик удаляется, выбор переключается на бесконечный фолбэк —
// всё в рамках того же ролла
func (s *Serv) consumeSelectedDice() {
	d := &s.st.Dice[s.st.SelectedDice]
	if d.Infinite {
		return
	}

	d.Quantity.Sub(d.Quantity, big.NewInt(1))
	if d.Quantity.Sign() > 0 {
		return
	}

	removed := s.st.SelectedDice
	s.st.Dice = append(s.st.Dice[:removed], s.st.Dice[removed+1:]...)

	// Бесконечный кубик гарантированно существует, ищем его заново,
	// потому что индексы сдвинулись
	s.st.SelectedDice = 0
	for i, dd := range s.st.Dice {
		if dd.Infinite {
			s.st.SelectedDice = i
			break
		}
	}
}

func (s *Serv) doRebirth() error {
	cost := scaledCost(s.cfg.RebirthBaseCost(), s.cfg.RebirthCostGrowth(), s.st.Rebirths)
	if s.st.Balance.Cmp(cost) < 0 {
		return errors.New("not enough balance for rebirth")
	}

	s.st.Balance.SetInt64(0)
	s.st.Rebirths++
	if s.st.PlotSlots < model.MaxPlotSlots {
		s.st.PlotSlots++
	}
	s.st.Inventory = nil
	s.st.Equipped = nil

	s.notifier.StatsChanged()
	return nil
}

// doForceEvent Пользовательский ивент. При настроенном хранилище
// публикуется на всех, иначе остаётся локальным
func (s *Serv) doForceEvent(suffixName string) error {
	if !s.knownSuffix(suffixName) {
		return fmt.Errorf("unknown suffix %q", suffixName)
	}

	if s.sync != nil {
		draft := model.EventDraft{
			Name:       fmt.Sprintf("%s boost", suffixName),
			SuffixName: suffixName,
			Duration:   model.DefaultEventDuration,
		}
		// Публикация уходит в фон; провал придёт через PublishFailed
		go s.sync.Publish(context.Background(), draft)
		return nil
	}

	s.director.ForceLocal(suffixName, time.Now())
	s.notifier.ActiveEventsChanged(s.director.Active(time.Now()))
	return nil
}

func (s *Serv) knownSuffix(name string) bool {
	for _, sf := range s.cfg.Suffixes() {
		if sf.Name == name {
			return true
		}
	}
	return false
}

// doMerge Слияние: уничтожает исходные предметы, создаёт один с усреднённым
// и усиленным множителем. Индексы экипировки переотображаются
func (s *Serv) doMerge(req model.MergeItems) (*model.RewardItem, error) {
	if len(req.Indices) < 2 {
		return nil, errors.New("merge needs at least two items")
	}

	seen := make(map[int]struct{}, len(req.Indices))
	for _, idx := range req.Indices {
		if idx < 0 || idx >= len(s.st.Inventory) {
			return nil, fmt.Errorf("invalid inventory index %d", idx)
		}
		if _, ok := seen[idx]; ok {
			return nil, fmt.Errorf("duplicate inventory index %d", idx)
		}
		seen[idx] = struct{}{}
	}

	prefix := s.st.Inventory[req.Indices[0]].Prefix
	best := s.st.Inventory[req.Indices[0]]
	multSum := 0.0
	for _, idx := range req.Indices {
		it := s.st.Inventory[idx]
		if it.Prefix != prefix {
			return nil, errors.New("merge requires items of the same prefix")
		}
		multSum += it.Multiplier
		if it.TotalValue().Cmp(best.TotalValue()) > 0 {
			best = it
		}
	}

	amplify := 1.0 + 0.1*float64(len(req.Indices)-1)
	merged := model.RewardItem{
		Prefix:     best.Prefix,
		Suffix:     best.Suffix,
		Rarity:     best.Rarity,
		BaseValue:  new(big.Int).Set(best.BaseValue),
		Multiplier: multSum / float64(len(req.Indices)) * amplify,
	}

	// Пересборка инвентаря без уничтоженных и карта старый->новый индекс
	remap := make(map[int]int, len(s.st.Inventory))
	kept := make([]model.RewardItem, 0, len(s.st.Inventory)-len(req.Indices)+1)
	for i, it := range s.st.Inventory {
		if _, destroyed := seen[i]; destroyed {
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, it)
	}

	var equipped []int
	for _, idx := range s.st.Equipped {
		if newIdx, ok := remap[idx]; ok {
			equipped = append(equipped, newIdx)
		}
	}

	kept = append(kept, merged)
	if len(equipped) < s.st.PlotSlots {
		equipped = append(equipped, len(kept)-1)
	}

	s.st.Inventory = kept
	s.st.Equipped = equipped

	s.notifier.StatsChanged()
	return &merged, nil
}

func (s *Serv) doEquip(invIndex int) error {
	if invIndex < 0 || invIndex >= len(s.st.Inventory) {
		return fmt.Errorf("invalid inventory index %d", invIndex)
	}
	if len(s.st.Equipped) >= s.st.PlotSlots {
		return errors.New("no free plot slots")
	}
	for _, idx := range s.st.Equipped {
		if idx == invIndex {
			return errors.New("item already equipped")
		}
	}

	s.st.Equipped = append(s.st.Equipped, invIndex)
	s.notifier.StatsChanged()
	return nil
}

func (s *Serv) doUnequip(slot int) error {
	if slot < 0 || slot >= len(s.st.Equipped) {
		return fmt.Errorf("invalid equip slot %d", slot)
	}

	s.st.Equipped = append(s.st.Equipped[:slot], s.st.Equipped[slot+1:]...)
	s.notifier.StatsChanged()
	return nil
}

func (s *Serv) doSelectDice(diceIndex int) error {
	if diceIndex < 0 || diceIndex >= len(s.st.Dice) {
		return fmt.Errorf("invalid dice index %d", diceIndex)
	}

	s.st.SelectedDice = diceIndex
	s.notifier.StatsChanged()
	return nil
}

// pay Списание стоимости с баланса
func (s *Serv) pay(cost *big.Int) error {
	if s.st.Balance.Cmp(cost) < 0 {
		return errors.New("not enough balance")
	}
	s.st.Balance.Sub(s.st.Balance, cost)
	return nil
}

// scaledCost Геометрическая кривая стоимости: base × growth^level
func scaledCost(base *big.Int, growth float64, level int) *big.Int {
	f := new(big.Float).SetInt(base)
	g := big.NewFloat(growth)
	for i := 0; i < level; i++ {
		f.Mul(f, g)
	}
	cost, _ := f.Int(nil)
	return cost
}

func (s *Serv) snapshotStats(now time.Time) *model.Stats {
	active := s.director.Active(now)
	income := s.econ.Tick(1, s.st.EquippedItems(), s.rebirthMoneyMult(), active)

	return &model.Stats{
		Player:           s.st.Name,
		Balance:          s.st.Balance.String(),
		Gems:             s.st.Gems,
		LifetimeEarned:   s.st.LifetimeEarned.String(),
		IncomePerSecond:  income.String(),
		Rebirths:         s.st.Rebirths,
		PlotSlots:        s.st.PlotSlots,
		LuckLevel:        s.st.LuckLevel,
		CooldownLevel:    s.st.CooldownLevel,
		InventorySize:    len(s.st.Inventory),
		EquippedCount:    len(s.st.Equipped),
		SelectedDice:     s.st.Dice[s.st.SelectedDice].Name,
		SessionPlaytime:  s.st.SessionPlaytime,
		LifetimePlaytime: s.st.LifetimePlaytime,
		AutoRoll:         s.st.AutoRoll,
	}
}
