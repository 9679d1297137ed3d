// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// DodgeConfig contains all configuration for the dodge game.
type DodgeConfig struct {
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Bouncer  EnemyConfig    `yaml:"bouncer"`
	Seeker   EnemyConfig    `yaml:"seeker"`
	Coin     CoinConfig     `yaml:"coin"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Input    InputConfig    `yaml:"input"`
}

// WorldConfig defines the logical play field in pixels.
type WorldConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	HUDHeight int `yaml:"hud_height"` // Strip reserved at the top for lives and score
}

// PlayerConfig defines the player square.
type PlayerConfig struct {
	Size  int     `yaml:"size"`
	Speed float64 `yaml:"speed"`
}

// EnemyConfig defines one enemy variant.
type EnemyConfig struct {
	Size  int     `yaml:"size"`
	Speed float64 `yaml:"speed"` // Per-axis speed at spawn
}

// CoinConfig defines the collectible.
type CoinConfig struct {
	Size int `yaml:"size"`
}

// SpawnConfig defines where things may appear.
type SpawnConfig struct {
	EnemyMargin int `yaml:"enemy_margin"` // Horizontal and bottom margin for enemies
	EnemyMinY   int `yaml:"enemy_min_y"`
	CoinMargin  int `yaml:"coin_margin"` // Horizontal and bottom margin for coins
	CoinMinY    int `yaml:"coin_min_y"`
}

// GameplayConfig defines run rules.
type GameplayConfig struct {
	Lives           int `yaml:"lives"`
	InitialBouncers int `yaml:"initial_bouncers"`
	SeekerEvery     int `yaml:"seeker_every"`  // Spawn a seeker each time score hits a multiple
	BouncerEvery    int `yaml:"bouncer_every"` // Otherwise spawn a bouncer on this multiple
}

// InputConfig defines platform timing.
type InputConfig struct {
	HoldWindow float64 `yaml:"hold_window"` // Seconds a movement key stays held after a press
	MaxDelta   float64 `yaml:"max_delta"`   // Upper bound for a frame's delta time
}

// ErrInvalidConfig is wrapped by all validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable field.
func (c DodgeConfig) Validate() error {
	w, h := c.World.Width, c.World.Height

	switch {
	case w <= 0 || h <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalidConfig, w, h)
	case c.World.HUDHeight < 0 || c.World.HUDHeight >= h:
		return fmt.Errorf("%w: hud_height %d outside [0, %d)", ErrInvalidConfig, c.World.HUDHeight, h)
	case c.Player.Size <= 0 || c.Bouncer.Size <= 0 || c.Seeker.Size <= 0 || c.Coin.Size <= 0:
		return fmt.Errorf("%w: sizes must be positive", ErrInvalidConfig)
	case c.Player.Speed < 0 || c.Bouncer.Speed < 0 || c.Seeker.Speed < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidConfig)
	case c.Gameplay.Lives <= 0:
		return fmt.Errorf("%w: lives must be positive", ErrInvalidConfig)
	case c.Gameplay.InitialBouncers < 0:
		return fmt.Errorf("%w: initial_bouncers must not be negative", ErrInvalidConfig)
	case c.Gameplay.SeekerEvery <= 0 || c.Gameplay.BouncerEvery <= 0:
		return fmt.Errorf("%w: spawn cadence must be positive", ErrInvalidConfig)
	case c.Input.HoldWindow < 0 || c.Input.MaxDelta < 0:
		return fmt.Errorf("%w: input timings must not be negative", ErrInvalidConfig)
	}

	if 2*c.Spawn.EnemyMargin >= w || c.Spawn.EnemyMinY >= h-c.Spawn.EnemyMargin {
		return fmt.Errorf("%w: enemy spawn area is empty", ErrInvalidConfig)
	}
	if 2*c.Spawn.CoinMargin >= w || c.Spawn.CoinMinY >= h-c.Spawn.CoinMargin {
		return fmt.Errorf("%w: coin spawn area is empty", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset.
// The empty string selects DifficultyNormal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}
