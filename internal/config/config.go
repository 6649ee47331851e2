package config

import (
	"math/big"
	"time"

	"gacha_roller/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// BalanceConfig Игровой баланс: таблицы контента и кривые стоимости.
// Загружается из config.yaml
type BalanceConfig interface {
	Prefixes() []model.PrefixEntry
	Suffixes() []model.SuffixEntry
	StartingDice() []model.DiceItem

	RebirthBaseCost() *big.Int
	RebirthCostGrowth() float64
	RebirthMoneyBonus() float64 // Прибавка к множителю дохода за один ребёрс

	LuckPerLevel() float64
	LuckUpgradeBaseCost() *big.Int
	LuckUpgradeGrowth() float64

	BaseCooldown() time.Duration
	CooldownFactor() float64 // Масштаб кулдауна за уровень, < 1.0
	CooldownUpgradeBaseCost() *big.Int
	CooldownUpgradeGrowth() float64

	GemRarityThreshold() float64 // Редкость префикса, с которой падает премиум-валюта
	GemCap() int
}

// RemoteConfig Подключение к общему хранилищу. BaseURL может быть пустым —
// тогда клиент работает полностью оффлайн на локальных снапшотах
type RemoteConfig interface {
	BaseURL() string
	PlayerName() string
	SnapshotPath() string
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}
