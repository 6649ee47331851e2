package converter

import (
	"fmt"
	"math/big"

	"gacha_roller/internal/api/dto/save"
	"gacha_roller/internal/model"
)

// ToSaveState Сериализуемое представление состояния игрока
func ToSaveState(st *model.PlayerState) save.State {
	out := save.State{
		Name:             st.Name,
		Balance:          st.Balance.String(),
		Gems:             st.Gems,
		LifetimeEarned:   st.LifetimeEarned.String(),
		Rebirths:         st.Rebirths,
		PlotSlots:        st.PlotSlots,
		LuckLevel:        st.LuckLevel,
		CooldownLevel:    st.CooldownLevel,
		Equipped:         append([]int(nil), st.Equipped...),
		SelectedDice:     st.SelectedDice,
		LifetimePlaytime: st.LifetimePlaytime,
		AutoRoll:         st.AutoRoll,
	}

	for _, it := range st.Inventory {
		out.Inventory = append(out.Inventory, save.Item{
			Prefix:     it.Prefix,
			Suffix:     it.Suffix,
			Rarity:     it.Rarity,
			BaseValue:  it.BaseValue.String(),
			Multiplier: it.Multiplier,
		})
	}

	for _, d := range st.Dice {
		sd := save.Dice{
			Name:     d.Name,
			Luck:     d.LuckMult,
			Infinite: d.Infinite,
		}
		if d.Quantity != nil {
			sd.Quantity = d.Quantity.String()
		}
		out.Dice = append(out.Dice, sd)
	}

	for _, q := range st.Quests {
		out.Quests = append(out.Quests, save.Quest{
			Name:     q.Name,
			Progress: q.Progress,
			Target:   q.Target,
		})
	}

	return out
}

// ToPlayerState Обратная конвертация. Битые числовые строки — ошибка
// сериализации, её классифицирует вызывающая сторона
func ToPlayerState(in save.State) (*model.PlayerState, error) {
	balance, err := parseAmount(in.Balance)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	lifetime, err := parseAmount(in.LifetimeEarned)
	if err != nil {
		return nil, fmt.Errorf("lifetime earned: %w", err)
	}

	st := &model.PlayerState{
		Name:             in.Name,
		Balance:          balance,
		Gems:             in.Gems,
		LifetimeEarned:   lifetime,
		Rebirths:         in.Rebirths,
		PlotSlots:        in.PlotSlots,
		LuckLevel:        in.LuckLevel,
		CooldownLevel:    in.CooldownLevel,
		Equipped:         append([]int(nil), in.Equipped...),
		SelectedDice:     in.SelectedDice,
		LifetimePlaytime: in.LifetimePlaytime,
		AutoRoll:         in.AutoRoll,
	}

	for i, it := range in.Inventory {
		value, err := parseAmount(it.BaseValue)
		if err != nil {
			return nil, fmt.Errorf("inventory[%d]: %w", i, err)
		}
		mult := it.Multiplier
		if mult <= 0 {
			mult = 1.0
		}
		st.Inventory = append(st.Inventory, model.RewardItem{
			Prefix:     it.Prefix,
			Suffix:     it.Suffix,
			Rarity:     it.Rarity,
			BaseValue:  value,
			Multiplier: mult,
		})
	}

	for i, d := range in.Dice {
		md := model.DiceItem{
			Name:     d.Name,
			LuckMult: d.Luck,
			Infinite: d.Infinite,
		}
		if !d.Infinite {
			qty, err := parseAmount(d.Quantity)
			if err != nil {
				return nil, fmt.Errorf("dice[%d]: %w", i, err)
			}
			md.Quantity = qty
		}
		st.Dice = append(st.Dice, md)
	}

	for _, q := range in.Quests {
		st.Quests = append(st.Quests, model.QuestSnapshot{
			Name:     q.Name,
			Progress: q.Progress,
			Target:   q.Target,
		})
	}

	return st, nil
}

func parseAmount(s string) (*big.Int, error) {
	if len(s) == 0 {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal string %q", s)
	}
	if v.Sign() < 0 {
		v.SetInt64(0)
	}
	return v, nil
}
