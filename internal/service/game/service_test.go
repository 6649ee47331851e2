package game

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gacha_roller/internal/model"
	"gacha_roller/internal/repository/local_save_repo"
	"gacha_roller/internal/service/economy"
	"gacha_roller/internal/service/events"
	"gacha_roller/internal/service/persist"
	"gacha_roller/internal/service/roll"
)

// testCfg Фиксированный баланс для тестов
type testCfg struct{}

func (testCfg) Prefixes() []model.PrefixEntry {
	return []model.PrefixEntry{
		{Name: "Common", Rarity: 1, BaseValue: big.NewInt(1)},
		{Name: "Mythic", Rarity: 10000, BaseValue: big.NewInt(120000)},
	}
}

func (testCfg) Suffixes() []model.SuffixEntry {
	return []model.SuffixEntry{{Name: "of Greed", Chance: 10, Multiplier: 1.5}}
}

func (testCfg) StartingDice() []model.DiceItem {
	return []model.DiceItem{{Name: "Lucky Dice", LuckMult: 2.0, Quantity: big.NewInt(5)}}
}

func (testCfg) RebirthBaseCost() *big.Int { return big.NewInt(1000) }
func (testCfg) RebirthCostGrowth() float64 { return 2.0 }
func (testCfg) RebirthMoneyBonus() float64 { return 0.5 }
func (testCfg) LuckPerLevel() float64 { return 0.25 }
func (testCfg) LuckUpgradeBaseCost() *big.Int { return big.NewInt(100) }
func (testCfg) LuckUpgradeGrowth() float64 { return 3.0 }
func (testCfg) BaseCooldown() time.Duration { return 3 * time.Second }
func (testCfg) CooldownFactor() float64 { return 0.5 }
func (testCfg) CooldownUpgradeBaseCost() *big.Int { return big.NewInt(50) }
func (testCfg) CooldownUpgradeGrowth() float64 { return 2.0 }
func (testCfg) GemRarityThreshold() float64 { return 10000 }
func (testCfg) GemCap() int { return 2 }

// alwaysRarest Принуждает роллер к самому редкому префиксу
type alwaysRarest struct{}

func (alwaysRarest) Float64() float64 { return 0.0 }

// alwaysCommon Проваливает все испытания
type alwaysCommon struct{}

func (alwaysCommon) Float64() float64 { return 0.999 }

func newTestServ(t *testing.T, rng roll.RandomSource) *Serv {
	t.Helper()
	cfg := testCfg{}

	local := local_save_repo.NewSnapshotRepository(filepath.Join(t.TempDir(), "save.json"))
	s := NewGameService(
		cfg,
		roll.NewRollService(cfg.Prefixes(), cfg.Suffixes(), rng),
		economy.NewEconomyService(),
		events.NewEventService([]string{"of Greed"}, "tester"),
		persist.NewPersistService(nil, local, "tester", cfg.StartingDice()),
		NewHub(),
	)
	s.st = model.NewPlayerState("tester", cfg.StartingDice())
	return s
}

func TestDoRollAddsAndAutoEquips(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})
	now := time.Now()

	item, err := s.doRoll(now)
	require.NoError(t, err)
	assert.Equal(t, "Common", item.Prefix)
	assert.Len(t, s.st.Inventory, 1)
	assert.Equal(t, []int{0}, s.st.Equipped, "free slot must be auto-equipped")

	// Кулдаун: немедленный повтор отклоняется
	_, err = s.doRoll(now.Add(time.Second))
	assert.Error(t, err)

	// После кулдауна ролл проходит, но слотов больше нет
	_, err = s.doRoll(now.Add(4 * time.Second))
	require.NoError(t, err)
	assert.Len(t, s.st.Inventory, 2)
	assert.Equal(t, []int{0}, s.st.Equipped)
}

func TestDoRollGrantsGemsUpToCap(t *testing.T) {
	s := newTestServ(t, alwaysRarest{})

	for i := 0; i < 4; i++ {
		_, err := s.doRoll(time.Now().Add(time.Duration(i) * 5 * time.Second))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, s.st.Gems, "premium currency is capped")
}

func TestDoRollConsumesFiniteDice(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})
	s.st.Dice = []model.DiceItem{
		model.InfiniteDice(),
		{Name: "Lucky Dice", LuckMult: 2.0, Quantity: big.NewInt(1)},
	}
	s.st.SelectedDice = 1

	_, err := s.doRoll(time.Now())
	require.NoError(t, err)

	// Последний заряд потрачен: кубик исчез, выбор вернулся к бесконечному
	require.Len(t, s.st.Dice, 1)
	assert.True(t, s.st.Dice[0].Infinite)
	assert.Equal(t, 0, s.st.SelectedDice)
}

func TestLuckFactor(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})
	s.st.Dice = []model.DiceItem{{Name: "Lucky Dice", LuckMult: 2.0, Quantity: big.NewInt(5)}}
	s.st.SelectedDice = 0
	s.st.LuckLevel = 2

	now := time.Now()
	ev := model.ActiveEvent{ID: 1, LuckMult: 3.0, StartsAt: now, EndsAt: now.Add(time.Minute)}

	// 2.0 × (1 + 0.25×2) × 3.0 = 9.0
	assert.InDelta(t, 9.0, s.luckFactor([]model.ActiveEvent{ev}), 1e-9)
}

func TestCooldownScaling(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})
	s.st.CooldownLevel = 2

	now := time.Now()
	ev := model.ActiveEvent{ID: 1, RollTime: 0.5, StartsAt: now, EndsAt: now.Add(time.Minute)}

	// 3s × 0.5² × 0.5 = 375ms
	assert.Equal(t, 375*time.Millisecond, s.cooldown([]model.ActiveEvent{ev}))
}

func TestDoRebirth(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})

	err := s.doRebirth()
	assert.Error(t, err, "rebirth must be gated by balance")

	s.st.Balance = big.NewInt(1500)
	s.st.Inventory = []model.RewardItem{{Prefix: "Common", Rarity: 1, BaseValue: big.NewInt(1), Multiplier: 1.0}}
	s.st.Equipped = []int{0}

	require.NoError(t, s.doRebirth())
	assert.Equal(t, "0", s.st.Balance.String())
	assert.Equal(t, 1, s.st.Rebirths)
	assert.Equal(t, 2, s.st.PlotSlots)
	assert.Empty(t, s.st.Inventory)
	assert.Empty(t, s.st.Equipped)

	// Второй ребёрс стоит base × growth = 2000
	s.st.Balance = big.NewInt(1999)
	assert.Error(t, s.doRebirth())
	s.st.Balance = big.NewInt(2000)
	assert.NoError(t, s.doRebirth())
}

func TestRebirthSlotsCapped(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})
	s.st.PlotSlots = model.MaxPlotSlots
	s.st.Rebirths = 20
	s.st.Balance, _ = new(big.Int).SetString("99999999999999999999999999", 10)

	require.NoError(t, s.doRebirth())
	assert.Equal(t, model.MaxPlotSlots, s.st.PlotSlots)
}

func TestDoMerge(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})
	s.st.PlotSlots = 3
	s.st.Inventory = []model.RewardItem{
		{Prefix: "Rare", Suffix: "", Rarity: 100, BaseValue: big.NewInt(250), Multiplier: 1.0},
		{Prefix: "Common", Rarity: 1, BaseValue: big.NewInt(1), Multiplier: 1.0},
		{Prefix: "Rare", Suffix: "of Greed", Rarity: 100, BaseValue: big.NewInt(250), Multiplier: 2.0},
	}
	s.st.Equipped = []int{0, 1, 2}

	merged, err := s.doMerge(model.MergeItems{Indices: []int{0, 2}})
	require.NoError(t, err)

	// Лучший исходник (множитель 2.0) задаёт базу, средний множитель
	// (1.0+2.0)/2 усиливается на 10% за один дополнительный предмет
	assert.Equal(t, "Rare", merged.Prefix)
	assert.Equal(t, "of Greed", merged.Suffix)
	assert.InDelta(t, 1.65, merged.Multiplier, 1e-9)

	require.Len(t, s.st.Inventory, 2)
	assert.Equal(t, "Common", s.st.Inventory[0].Prefix)
	assert.Equal(t, "Rare", s.st.Inventory[1].Prefix)
	// Уцелевший Common переотображён с индекса 1 на 0, слитый предмет доставлен в свободный слот
	assert.Equal(t, []int{0, 1}, s.st.Equipped)
}

func TestDoMergeValidation(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})
	s.st.Inventory = []model.RewardItem{
		{Prefix: "Rare", Rarity: 100, BaseValue: big.NewInt(250), Multiplier: 1.0},
		{Prefix: "Common", Rarity: 1, BaseValue: big.NewInt(1), Multiplier: 1.0},
	}

	_, err := s.doMerge(model.MergeItems{Indices: []int{0}})
	assert.Error(t, err, "single item cannot merge")

	_, err = s.doMerge(model.MergeItems{Indices: []int{0, 0}})
	assert.Error(t, err, "duplicate indices")

	_, err = s.doMerge(model.MergeItems{Indices: []int{0, 5}})
	assert.Error(t, err, "out of range")

	_, err = s.doMerge(model.MergeItems{Indices: []int{0, 1}})
	assert.Error(t, err, "mixed prefixes")
}

func TestEquipUnequip(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})
	s.st.PlotSlots = 1
	s.st.Inventory = []model.RewardItem{
		{Prefix: "Common", Rarity: 1, BaseValue: big.NewInt(1), Multiplier: 1.0},
		{Prefix: "Common", Rarity: 1, BaseValue: big.NewInt(1), Multiplier: 1.0},
	}

	require.NoError(t, s.doEquip(0))
	assert.Error(t, s.doEquip(0), "already equipped")
	assert.Error(t, s.doEquip(1), "no free slots")
	assert.Error(t, s.doEquip(9), "dead index")

	require.NoError(t, s.doUnequip(0))
	assert.Empty(t, s.st.Equipped)
	assert.Error(t, s.doUnequip(0), "slot is empty now")
}

func TestScaledCost(t *testing.T) {
	assert.Equal(t, "100", scaledCost(big.NewInt(100), 3.0, 0).String())
	assert.Equal(t, "300", scaledCost(big.NewInt(100), 3.0, 1).String())
	assert.Equal(t, "2700", scaledCost(big.NewInt(100), 3.0, 3).String())
}

func TestDoForceEventLocal(t *testing.T) {
	s := newTestServ(t, alwaysCommon{})

	assert.Error(t, s.doForceEvent("of Nothing"), "unknown suffix is rejected")

	require.NoError(t, s.doForceEvent("of Greed"))
	active := s.director.Active(time.Now())
	require.Len(t, active, 1)
	assert.Equal(t, "of Greed", active[0].SuffixName)
	assert.False(t, active[0].Remote())
}

func TestRunLifecycle(t *testing.T) {
	cfg := testCfg{}
	path := filepath.Join(t.TempDir(), "save.json")
	local := local_save_repo.NewSnapshotRepository(path)

	s := NewGameService(
		cfg,
		roll.NewRollService(cfg.Prefixes(), cfg.Suffixes(), alwaysCommon{}),
		economy.NewEconomyService(),
		events.NewEventService([]string{"of Greed"}, "tester"),
		persist.NewPersistService(nil, local, "tester", cfg.StartingDice()),
		NewHub(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Действия через публичный интерфейс сериализуются циклом
	item, err := s.Roll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Common", item.Prefix)

	on, err := s.ToggleAutoRoll(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tester", stats.Player)
	assert.Equal(t, 1, stats.InventorySize)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("game loop did not stop")
	}

	_, err = os.Stat(path)
	assert.NoError(t, err, "final snapshot must be written on shutdown")
}
