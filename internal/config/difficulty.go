package config

// enemySpeedScale is the multiplier applied to enemy spawn speeds per preset.
var enemySpeedScale = map[DifficultyPreset]float64{
	DifficultyEasy:   0.8,
	DifficultyNormal: 1.0,
	DifficultyHard:   1.25,
}

// ApplyDodgePreset modifies the config based on a difficulty preset.
// DifficultyNormal leaves the config untouched.
func ApplyDodgePreset(cfg *DodgeConfig, preset DifficultyPreset) {
	scale, ok := enemySpeedScale[preset]
	if !ok || preset == DifficultyNormal {
		return
	}

	cfg.Bouncer.Speed *= scale
	cfg.Seeker.Speed *= scale

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
	}
}
