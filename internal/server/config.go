package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	. "DeepInvaders/internal/game"
)

type simConfig struct {
	TickHz           *float64 `json:"tickHz"`
	PlayerSpeed      *float64 `json:"playerSpeed"`
	BulletSpeed      *float64 `json:"bulletSpeed"`
	EnemySpeed       *float64 `json:"enemySpeed"`
	EnemyBulletSpeed *float64 `json:"enemyBulletSpeed"`
	FireCooldownMs   *int64   `json:"fireCooldownMs"`
	EnemyFireGapMs   *int64   `json:"enemyFireGapMs"`
	EnemyFireChance  *float64 `json:"enemyFireChance"`
	InvincibleMs     *int64   `json:"invincibleMs"`
	WaveDelayMs      *int64   `json:"waveDelayMs"`
	RoundOverGraceMs *int64   `json:"roundOverGraceMs"`
}

type gameConfig struct {
	Sim *simConfig `json:"sim"`
}

// ParamOverrides represents optional command-line overrides for the
// simulation tunables.
type ParamOverrides struct {
	TickHz           *float64
	PlayerSpeed      *float64
	BulletSpeed      *float64
	EnemySpeed       *float64
	EnemyBulletSpeed *float64
	FireCooldownMs   *int64
	EnemyFireGapMs   *int64
	EnemyFireChance  *float64
	InvincibleMs     *int64
	WaveDelayMs      *int64
	RoundOverGraceMs *int64
}

func (o ParamOverrides) apply(base Params) Params {
	if o.TickHz != nil {
		base.TickHz = *o.TickHz
	}
	if o.PlayerSpeed != nil {
		base.PlayerSpeed = *o.PlayerSpeed
	}
	if o.BulletSpeed != nil {
		base.BulletSpeed = *o.BulletSpeed
	}
	if o.EnemySpeed != nil {
		base.EnemySpeed = *o.EnemySpeed
	}
	if o.EnemyBulletSpeed != nil {
		base.EnemyBulletSpeed = *o.EnemyBulletSpeed
	}
	if o.FireCooldownMs != nil {
		base.FireCooldownMs = *o.FireCooldownMs
	}
	if o.EnemyFireGapMs != nil {
		base.EnemyFireGapMs = *o.EnemyFireGapMs
	}
	if o.EnemyFireChance != nil {
		base.EnemyFireChance = *o.EnemyFireChance
	}
	if o.InvincibleMs != nil {
		base.InvincibleMs = *o.InvincibleMs
	}
	if o.WaveDelayMs != nil {
		base.WaveDelayMs = *o.WaveDelayMs
	}
	if o.RoundOverGraceMs != nil {
		base.RoundOverGraceMs = *o.RoundOverGraceMs
	}
	return SanitizeParams(base)
}

func mergeSimConfig(base Params, cfg *simConfig) Params {
	if cfg == nil {
		return base
	}
	if cfg.TickHz != nil {
		base.TickHz = *cfg.TickHz
	}
	if cfg.PlayerSpeed != nil {
		base.PlayerSpeed = *cfg.PlayerSpeed
	}
	if cfg.BulletSpeed != nil {
		base.BulletSpeed = *cfg.BulletSpeed
	}
	if cfg.EnemySpeed != nil {
		base.EnemySpeed = *cfg.EnemySpeed
	}
	if cfg.EnemyBulletSpeed != nil {
		base.EnemyBulletSpeed = *cfg.EnemyBulletSpeed
	}
	if cfg.FireCooldownMs != nil {
		base.FireCooldownMs = *cfg.FireCooldownMs
	}
	if cfg.EnemyFireGapMs != nil {
		base.EnemyFireGapMs = *cfg.EnemyFireGapMs
	}
	if cfg.EnemyFireChance != nil {
		base.EnemyFireChance = *cfg.EnemyFireChance
	}
	if cfg.InvincibleMs != nil {
		base.InvincibleMs = *cfg.InvincibleMs
	}
	if cfg.WaveDelayMs != nil {
		base.WaveDelayMs = *cfg.WaveDelayMs
	}
	if cfg.RoundOverGraceMs != nil {
		base.RoundOverGraceMs = *cfg.RoundOverGraceMs
	}
	return SanitizeParams(base)
}

func loadParamsFromFile(path string, base Params) (Params, error) {
	if path == "" {
		return SanitizeParams(base), nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return SanitizeParams(base), nil
		}
		return SanitizeParams(base), fmt.Errorf("read game config %q: %w", cleanPath, err)
	}
	var cfg gameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return SanitizeParams(base), fmt.Errorf("parse game config %q: %w", cleanPath, err)
	}
	return mergeSimConfig(base, cfg.Sim), nil
}

func applyOverrides(base Params, overrides ParamOverrides) Params {
	return overrides.apply(base)
}
