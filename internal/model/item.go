package model

import (
	"math"
	"math/big"
)

type RewardItem struct {
	Prefix     string
	Suffix     string  // Пустая строка — без суффикса
	Rarity     float64 // Знаменатель "1 из N"
	BaseValue  *big.Int
	Multiplier float64 // 1.0 без суффикса
}

// TotalValue Итоговая ценность предмета: базовая ценность на множитель
// суффикса. Не хранится, считается на месте
func (it RewardItem) TotalValue() *big.Int {
	cents := big.NewInt(int64(math.Round(it.Multiplier * 100)))
	v := new(big.Int).Mul(it.BaseValue, cents)
	return v.Quo(v, big.NewInt(100))
}

func (it RewardItem) Clone() RewardItem {
	cp := it
	if it.BaseValue != nil {
		cp.BaseValue = new(big.Int).Set(it.BaseValue)
	}
	return cp
}

// MergeItems Запрос на слияние предметов: индексы инвентаря, которые
// уничтожаются в обмен на один предмет с усиленным множителем
type MergeItems struct {
	Indices []int
}

// PrefixEntry Строка таблицы префиксов (классов редкости)
type PrefixEntry struct {
	Name      string
	Rarity    float64 // "1 из N", чем больше, тем реже
	BaseValue *big.Int
}

// SuffixEntry Строка таблицы суффиксов. Шанс не зависит от удачи,
// только от активных ивентов
type SuffixEntry struct {
	Name       string
	Chance     float64 // "1 из N"
	Multiplier float64
}
