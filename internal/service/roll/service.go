package roll

import (
	"math/big"
	"sort"

	"gacha_roller/internal/model"
	"gacha_roller/internal/service"
)

type serv struct {
	// Таблицы отсортированы один раз при создании: префиксы по убыванию
	// редкости, суффиксы по убыванию шанса. После этого только чтение,
	// безопасно делить между горутинами
	prefixes []model.PrefixEntry
	suffixes []model.SuffixEntry
	rng      RandomSource
}

// NewRollService Создать роллер над таблицами контента. rng == nil — боевой
// криптоисточник
func NewRollService(prefixes []model.PrefixEntry, suffixes []model.SuffixEntry, rng RandomSource) service.RollService {
	if rng == nil {
		rng = DefaultRNG()
	}

	ps := make([]model.PrefixEntry, len(prefixes))
	copy(ps, prefixes)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Rarity > ps[j].Rarity })

	ss := make([]model.SuffixEntry, len(suffixes))
	copy(ss, suffixes)
	sort.SliceStable(ss, func(i, j int) bool { return ss[i].Chance > ss[j].Chance })

	return &serv{
		prefixes: ps,
		suffixes: ss,
		rng:      rng,
	}
}

// Roll Последовательные независимые испытания Бернулли по убыванию редкости.
// Схема намеренно не заменена на кумулятивное распределение: более редкие
// записи проверяются первыми и имеют право первого отказа, смена модели
// изменила бы фактические шансы дропа
func (s *serv) Roll(luckFactor float64, activeEvents []model.ActiveEvent) model.RewardItem {
	prefix := s.rollPrefix(luckFactor)
	suffix, mult := s.rollSuffix(activeEvents)

	return model.RewardItem{
		Prefix:     prefix.Name,
		Suffix:     suffix,
		Rarity:     prefix.Rarity,
		BaseValue:  new(big.Int).Set(prefix.BaseValue),
		Multiplier: mult,
	}
}

// rollPrefix Порог принятия = luckFactor / rarity. Первое принятие
// выигрывает, без принятия берётся последняя (самая частая) запись
func (s *serv) rollPrefix(luckFactor float64) model.PrefixEntry {
	for _, entry := range s.prefixes {
		if s.rng.Float64() < luckFactor/entry.Rarity {
			return entry
		}
	}
	return s.prefixes[len(s.prefixes)-1]
}

// rollSuffix Шанс суффикса не зависит от удачи, только от бустов активных
// ивентов. Бусты нескольких ивентов на один суффикс перемножаются
func (s *serv) rollSuffix(activeEvents []model.ActiveEvent) (string, float64) {
	for _, entry := range s.suffixes {
		chance := entry.Chance
		for _, ev := range activeEvents {
			if ev.SuffixName == entry.Name && ev.SuffixBoost > 0 {
				chance /= ev.SuffixBoost
			}
		}
		if chance < 1 {
			chance = 1
		}
		if s.rng.Float64() < 1/chance {
			return entry.Name, entry.Multiplier
		}
	}
	return "", 1.0
}
