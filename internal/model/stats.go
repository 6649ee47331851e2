package model

// Stats Снимок состояния для слоя представления. Снимается внутри
// игрового цикла, наружу уходит копия
type Stats struct {
	Player           string
	Balance          string
	Gems             int
	LifetimeEarned   string
	IncomePerSecond  string
	Rebirths         int
	PlotSlots        int
	LuckLevel        int
	CooldownLevel    int
	InventorySize    int
	EquippedCount    int
	SelectedDice     string
	SessionPlaytime  int64
	LifetimePlaytime int64
	AutoRoll         bool
}
