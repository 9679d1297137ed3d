package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// dodgeFile is the config file name looked up in the search directories.
const dodgeFile = "dodge.yaml"

// LoadDodge loads the dodge game configuration.
// Search order: customPath -> ~/.arcade/configs/dodge.yaml -> ./configs/dodge.yaml -> embedded default
//
// Files are layered over the defaults, so a file only needs the keys it changes.
// A broken custom file is an error; broken files found by searching are skipped.
func LoadDodge(customPath string) (DodgeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseDodge(data)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(dodgeFile), filepath.Join("configs", dodgeFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseDodge(data); err == nil {
			return cfg, nil
		}
	}

	return embeddedDodge(), nil
}

// parseDodge decodes YAML on top of the embedded defaults and validates the result.
func parseDodge(data []byte) (DodgeConfig, error) {
	cfg := embeddedDodge()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DodgeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return DodgeConfig{}, err
	}
	return cfg, nil
}

// embeddedDodge returns the embedded default YAML, or the hard-coded defaults
// if the embedded copy cannot be decoded.
func embeddedDodge() DodgeConfig {
	var cfg DodgeConfig
	if err := yaml.Unmarshal(defaultDodgeYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultDodgeConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
