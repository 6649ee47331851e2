package save

// Envelope Ответ хранилища на чтение сохранения. Флаги модерации
// проверяются клиентом при каждом успешном чтении и записи
type Envelope struct {
	Version int   `json:"version"`
	Banned  bool  `json:"banned,omitempty"`
	Kicked  bool  `json:"kicked,omitempty"`
	State   State `json:"state"`
}

// PutResponse Ответ на запись сохранения
type PutResponse struct {
	Banned bool `json:"banned"`
	Kicked bool `json:"kicked"`
}

// State Сериализованное состояние игрока. Денежные поля — десятичные
// строки, чтобы не терять произвольную точность
type State struct {
	Name             string  `json:"name"`
	Balance          string  `json:"balance"`
	Gems             int     `json:"gems"`
	LifetimeEarned   string  `json:"lifetime_earned"`
	Rebirths         int     `json:"rebirths"`
	PlotSlots        int     `json:"plot_slots"`
	LuckLevel        int     `json:"luck_level"`
	CooldownLevel    int     `json:"cooldown_level"`
	Inventory        []Item  `json:"inventory"`
	Equipped         []int   `json:"equipped"`
	Dice             []Dice  `json:"dice"`
	SelectedDice     int     `json:"selected_dice"`
	Quests           []Quest `json:"quests,omitempty"`
	LifetimePlaytime int64   `json:"lifetime_playtime"`
	AutoRoll         bool    `json:"auto_roll,omitempty"`
}

type Item struct {
	Prefix     string  `json:"prefix"`
	Suffix     string  `json:"suffix,omitempty"`
	Rarity     float64 `json:"rarity"`
	BaseValue  string  `json:"base_value"`
	Multiplier float64 `json:"multiplier"`
}

type Dice struct {
	Name     string  `json:"name"`
	Luck     float64 `json:"luck"`
	Quantity string  `json:"quantity,omitempty"`
	Infinite bool    `json:"infinite,omitempty"`
}

type Quest struct {
	Name     string `json:"name"`
	Progress int    `json:"progress"`
	Target   int    `json:"target"`
}
