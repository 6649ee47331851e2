package env

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"gacha_roller/internal/config"
	"gacha_roller/internal/model"

	"gopkg.in/yaml.v3"
)

// Структуры для разбора config.yaml
type balanceYAML struct {
	Balance struct {
		Prefixes []struct {
			Name      string  `yaml:"name"`
			Rarity    float64 `yaml:"rarity"`
			BaseValue string  `yaml:"base_value"`
		} `yaml:"prefixes"`
		Suffixes []struct {
			Name       string  `yaml:"name"`
			Chance     float64 `yaml:"chance"`
			Multiplier float64 `yaml:"multiplier"`
		} `yaml:"suffixes"`
		Dice []struct {
			Name     string  `yaml:"name"`
			Luck     float64 `yaml:"luck"`
			Quantity string  `yaml:"quantity"`
		} `yaml:"dice"`
		Rebirth struct {
			BaseCost   string  `yaml:"base_cost"`
			CostGrowth float64 `yaml:"cost_growth"`
			MoneyBonus float64 `yaml:"money_bonus"`
		} `yaml:"rebirth"`
		Upgrades struct {
			LuckPerLevel       float64 `yaml:"luck_per_level"`
			LuckBaseCost       string  `yaml:"luck_base_cost"`
			LuckCostGrowth     float64 `yaml:"luck_cost_growth"`
			BaseCooldownMs     int     `yaml:"base_cooldown_ms"`
			CooldownFactor     float64 `yaml:"cooldown_factor"`
			CooldownBaseCost   string  `yaml:"cooldown_base_cost"`
			CooldownCostGrowth float64 `yaml:"cooldown_cost_growth"`
		} `yaml:"upgrades"`
		Gems struct {
			RarityThreshold float64 `yaml:"rarity_threshold"`
			Cap             int     `yaml:"cap"`
		} `yaml:"gems"`
	} `yaml:"balance"`
}

type balanceConfig struct {
	prefixes []model.PrefixEntry
	suffixes []model.SuffixEntry
	dice     []model.DiceItem

	rebirthBaseCost   *big.Int
	rebirthCostGrowth float64
	rebirthMoneyBonus float64

	luckPerLevel      float64
	luckUpgradeBase   *big.Int
	luckUpgradeGrowth float64

	baseCooldown          time.Duration
	cooldownFactor        float64
	cooldownUpgradeBase   *big.Int
	cooldownUpgradeGrowth float64

	gemRarityThreshold float64
	gemCap             int
}

// NewBalanceConfigFromYAML Загрузка таблиц баланса из yaml-файла
func NewBalanceConfigFromYAML(path string) (config.BalanceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance config: %w", err)
	}

	var parsed balanceYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse balance config: %w", err)
	}

	b := parsed.Balance
	if len(b.Prefixes) == 0 {
		return nil, fmt.Errorf("balance config has no prefixes")
	}

	cfg := &balanceConfig{
		rebirthCostGrowth:     b.Rebirth.CostGrowth,
		rebirthMoneyBonus:     b.Rebirth.MoneyBonus,
		luckPerLevel:          b.Upgrades.LuckPerLevel,
		luckUpgradeGrowth:     b.Upgrades.LuckCostGrowth,
		baseCooldown:          time.Duration(b.Upgrades.BaseCooldownMs) * time.Millisecond,
		cooldownFactor:        b.Upgrades.CooldownFactor,
		cooldownUpgradeGrowth: b.Upgrades.CooldownCostGrowth,
		gemRarityThreshold:    b.Gems.RarityThreshold,
		gemCap:                b.Gems.Cap,
	}

	for _, p := range b.Prefixes {
		value, err := parseBigInt(p.BaseValue)
		if err != nil {
			return nil, fmt.Errorf("prefix %q: %w", p.Name, err)
		}
		if p.Rarity <= 0 {
			return nil, fmt.Errorf("prefix %q: rarity must be positive", p.Name)
		}
		cfg.prefixes = append(cfg.prefixes, model.PrefixEntry{
			Name:      p.Name,
			Rarity:    p.Rarity,
			BaseValue: value,
		})
	}

	for _, s := range b.Suffixes {
		if s.Chance <= 0 {
			return nil, fmt.Errorf("suffix %q: chance must be positive", s.Name)
		}
		cfg.suffixes = append(cfg.suffixes, model.SuffixEntry{
			Name:       s.Name,
			Chance:     s.Chance,
			Multiplier: s.Multiplier,
		})
	}

	for _, d := range b.Dice {
		qty, err := parseBigInt(d.Quantity)
		if err != nil {
			return nil, fmt.Errorf("dice %q: %w", d.Name, err)
		}
		cfg.dice = append(cfg.dice, model.DiceItem{
			Name:     d.Name,
			LuckMult: d.Luck,
			Quantity: qty,
		})
	}

	if cfg.rebirthBaseCost, err = parseBigInt(b.Rebirth.BaseCost); err != nil {
		return nil, fmt.Errorf("rebirth base cost: %w", err)
	}
	if cfg.luckUpgradeBase, err = parseBigInt(b.Upgrades.LuckBaseCost); err != nil {
		return nil, fmt.Errorf("luck upgrade cost: %w", err)
	}
	if cfg.cooldownUpgradeBase, err = parseBigInt(b.Upgrades.CooldownBaseCost); err != nil {
		return nil, fmt.Errorf("cooldown upgrade cost: %w", err)
	}

	return cfg, nil
}

func parseBigInt(s string) (*big.Int, error) {
	if len(s) == 0 {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

func (cfg *balanceConfig) Prefixes() []model.PrefixEntry  { return cfg.prefixes }
func (cfg *balanceConfig) Suffixes() []model.SuffixEntry  { return cfg.suffixes }
func (cfg *balanceConfig) StartingDice() []model.DiceItem { return cfg.dice }

func (cfg *balanceConfig) RebirthBaseCost() *big.Int   { return cfg.rebirthBaseCost }
func (cfg *balanceConfig) RebirthCostGrowth() float64  { return cfg.rebirthCostGrowth }
func (cfg *balanceConfig) RebirthMoneyBonus() float64  { return cfg.rebirthMoneyBonus }

func (cfg *balanceConfig) LuckPerLevel() float64          { return cfg.luckPerLevel }
func (cfg *balanceConfig) LuckUpgradeBaseCost() *big.Int  { return cfg.luckUpgradeBase }
func (cfg *balanceConfig) LuckUpgradeGrowth() float64     { return cfg.luckUpgradeGrowth }

func (cfg *balanceConfig) BaseCooldown() time.Duration        { return cfg.baseCooldown }
func (cfg *balanceConfig) CooldownFactor() float64            { return cfg.cooldownFactor }
func (cfg *balanceConfig) CooldownUpgradeBaseCost() *big.Int  { return cfg.cooldownUpgradeBase }
func (cfg *balanceConfig) CooldownUpgradeGrowth() float64     { return cfg.cooldownUpgradeGrowth }

func (cfg *balanceConfig) GemRarityThreshold() float64 { return cfg.gemRarityThreshold }
func (cfg *balanceConfig) GemCap() int                 { return cfg.gemCap }
