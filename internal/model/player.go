package model

import "math/big"

// MaxPlotSlots Максимальное количество ячеек под экипировку
const MaxPlotSlots = 10

// SaveFormatVersion Версия формата сохранения. При несовпадении с удалённой
// записью запись считается несовместимой и удаляется
const SaveFormatVersion = 3

type PlayerState struct {
	Name string

	// Балансы
	Balance        *big.Int // Основная валюта (неотрицательная)
	Gems           int      // Премиум-валюта (ограничена сверху)
	LifetimeEarned *big.Int // Заработано за всё время (не убывает)

	// Прогрессия
	Rebirths      int
	PlotSlots     int // 1..MaxPlotSlots, растёт только через ребёрс
	LuckLevel     int
	CooldownLevel int

	// Коллекции
	Inventory    []RewardItem
	Equipped     []int // Индексы в Inventory, len <= PlotSlots
	Dice         []DiceItem
	SelectedDice int // Индекс в Dice, всегда валиден после нормализации
	Quests       []QuestSnapshot

	// Счётчики времени игры, секунды
	SessionPlaytime  int64
	LifetimePlaytime int64

	AutoRoll bool
}

type DiceItem struct {
	Name     string
	LuckMult float64  // >= 1.0
	Quantity *big.Int // nil у бесконечного кубика
	Infinite bool
}

// QuestSnapshot Снимок прогресса квеста. Сама логика квестов внешняя,
// движок только хранит снимки в сохранении
type QuestSnapshot struct {
	Name     string
	Progress int
	Target   int
}

// InfiniteDice Канонический бесконечный кубик-заглушка. Всегда присутствует
// в инвентаре ровно один раз и не может быть исчерпан
func InfiniteDice() DiceItem {
	return DiceItem{
		Name:     "Standard Dice",
		LuckMult: 1.0,
		Infinite: true,
	}
}

// NewPlayerState Создание нового профиля с начальным состоянием
func NewPlayerState(name string, startingDice []DiceItem) *PlayerState {
	dice := []DiceItem{InfiniteDice()}
	for _, d := range startingDice {
		if d.Infinite {
			continue
		}
		dice = append(dice, d.Clone())
	}

	return &PlayerState{
		Name:           name,
		Balance:        big.NewInt(0),
		LifetimeEarned: big.NewInt(0),
		PlotSlots:      1,
		Dice:           dice,
		SelectedDice:   0,
	}
}

// Clone Глубокая копия состояния. Используется для снапшотов, которые
// пишутся в хранилище вне игрового цикла
func (p *PlayerState) Clone() *PlayerState {
	cp := *p

	cp.Balance = new(big.Int).Set(p.Balance)
	cp.LifetimeEarned = new(big.Int).Set(p.LifetimeEarned)

	cp.Inventory = make([]RewardItem, len(p.Inventory))
	for i, it := range p.Inventory {
		cp.Inventory[i] = it.Clone()
	}

	cp.Equipped = append([]int(nil), p.Equipped...)

	cp.Dice = make([]DiceItem, len(p.Dice))
	for i, d := range p.Dice {
		cp.Dice[i] = d.Clone()
	}

	cp.Quests = append([]QuestSnapshot(nil), p.Quests...)

	return &cp
}

func (d DiceItem) Clone() DiceItem {
	cp := d
	if d.Quantity != nil {
		cp.Quantity = new(big.Int).Set(d.Quantity)
	}
	return cp
}

// EquippedItems Снимок экипированных предметов по индексам
func (p *PlayerState) EquippedItems() []RewardItem {
	items := make([]RewardItem, 0, len(p.Equipped))
	for _, idx := range p.Equipped {
		if idx >= 0 && idx < len(p.Inventory) {
			items = append(items, p.Inventory[idx])
		}
	}
	return items
}
