package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

// DefaultDodgeConfig returns the default dodge game configuration.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		World: WorldConfig{
			Width:     960,
			Height:    540,
			HUDHeight: 60,
		},
		Player: PlayerConfig{
			Size:  32,
			Speed: 360,
		},
		Bouncer: EnemyConfig{
			Size:  48,
			Speed: 225,
		},
		Seeker: EnemyConfig{
			Size:  32,
			Speed: 360,
		},
		Coin: CoinConfig{
			Size: 18,
		},
		Spawn: SpawnConfig{
			EnemyMargin: 40,
			EnemyMinY:   80,
			CoinMargin:  20,
			CoinMinY:    90,
		},
		Gameplay: GameplayConfig{
			Lives:           3,
			InitialBouncers: 3,
			SeekerEvery:     10,
			BouncerEvery:    5,
		},
		Input: InputConfig{
			HoldWindow: 0.2,
			MaxDelta:   0.25,
		},
	}
}
