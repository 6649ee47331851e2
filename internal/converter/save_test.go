package converter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gacha_roller/internal/api/dto/save"
	"gacha_roller/internal/model"
)

func TestSaveStateRoundTrip(t *testing.T) {
	st := model.NewPlayerState("alice", []model.DiceItem{
		{Name: "Lucky Dice", LuckMult: 2.0, Quantity: big.NewInt(5)},
	})
	st.Balance, _ = new(big.Int).SetString("123456789012345678901234567890", 10)
	st.LifetimeEarned = new(big.Int).Set(st.Balance)
	st.Gems = 7
	st.Rebirths = 2
	st.PlotSlots = 3
	st.Inventory = []model.RewardItem{
		{Prefix: "Rare", Suffix: "of Greed", Rarity: 100, BaseValue: big.NewInt(250), Multiplier: 1.5},
	}
	st.Equipped = []int{0}
	st.Quests = []model.QuestSnapshot{{Name: "roll ten times", Progress: 4, Target: 10}}
	st.AutoRoll = true

	got, err := ToPlayerState(ToSaveState(st))
	require.NoError(t, err)

	assert.Equal(t, st.Balance.String(), got.Balance.String())
	assert.Equal(t, 7, got.Gems)
	assert.Equal(t, 2, got.Rebirths)
	require.Len(t, got.Inventory, 1)
	assert.Equal(t, "of Greed", got.Inventory[0].Suffix)
	require.Len(t, got.Dice, 2)
	assert.True(t, got.Dice[0].Infinite)
	assert.Nil(t, got.Dice[0].Quantity, "infinite dice carries no quantity")
	assert.Equal(t, "5", got.Dice[1].Quantity.String())
	require.Len(t, got.Quests, 1)
	assert.Equal(t, 4, got.Quests[0].Progress)
	assert.True(t, got.AutoRoll)
}

func TestToPlayerStateAmounts(t *testing.T) {
	// Пустая строка — ноль
	st, err := ToPlayerState(save.State{Name: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "0", st.Balance.String())

	// Отрицательное значение прижимается к нулю
	st, err = ToPlayerState(save.State{Name: "alice", Balance: "-100"})
	require.NoError(t, err)
	assert.Equal(t, "0", st.Balance.String())

	// Мусор — ошибка сериализации
	_, err = ToPlayerState(save.State{Name: "alice", Balance: "1e9"})
	assert.Error(t, err)
}
