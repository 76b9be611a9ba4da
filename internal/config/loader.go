package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPath returns the default config file path.
func ConfigPath() string {
	return filepath.Join(homeDir(), ".nudged", "config.json")
}

// DataDir returns the nudged data directory, creating it if needed.
func DataDir() string {
	dir := filepath.Join(homeDir(), ".nudged")
	os.MkdirAll(dir, 0o755)
	return dir
}

// StatePath returns the scheduler snapshot path.
func StatePath() string {
	return filepath.Join(DataDir(), "scheduler.json")
}

// Load reads configuration from disk, falling back to defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from a specific path. A missing file is
// not an error; the defaults apply.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes configuration to disk.
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo writes configuration to a specific path.
func SaveTo(cfg *Config, path string) error {
	os.MkdirAll(filepath.Dir(path), 0o755)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()

	if cfg.Scheduler.QuietHours.Start == "" {
		cfg.Scheduler.QuietHours.Start = def.Scheduler.QuietHours.Start
	}
	if cfg.Scheduler.QuietHours.End == "" {
		cfg.Scheduler.QuietHours.End = def.Scheduler.QuietHours.End
	}
	if cfg.Scheduler.DailyCap == 0 {
		cfg.Scheduler.DailyCap = def.Scheduler.DailyCap
	}
	if cfg.Scheduler.CooldownMinutes == 0 {
		cfg.Scheduler.CooldownMinutes = def.Scheduler.CooldownMinutes
	}
	if cfg.Generator.Provider == "" {
		cfg.Generator.Provider = def.Generator.Provider
	}
	if cfg.Generator.TimeoutSeconds == 0 {
		cfg.Generator.TimeoutSeconds = def.Generator.TimeoutSeconds
	}
	if cfg.Generator.MaxChars == 0 {
		cfg.Generator.MaxChars = def.Generator.MaxChars
	}
	if cfg.Data.PortfolioPath == "" {
		cfg.Data.PortfolioPath = def.Data.PortfolioPath
	}
	if cfg.Data.GoalsPath == "" {
		cfg.Data.GoalsPath = def.Data.GoalsPath
	}
	if cfg.Data.ProjectsDir == "" {
		cfg.Data.ProjectsDir = def.Data.ProjectsDir
	}
	if cfg.Data.MoveThresholdPct == 0 {
		cfg.Data.MoveThresholdPct = def.Data.MoveThresholdPct
	}
	if cfg.Data.GoalStaleDays == 0 {
		cfg.Data.GoalStaleDays = def.Data.GoalStaleDays
	}
	if cfg.Data.GoalNearComplete == 0 {
		cfg.Data.GoalNearComplete = def.Data.GoalNearComplete
	}
	if cfg.Data.ProjectIdleDays == 0 {
		cfg.Data.ProjectIdleDays = def.Data.ProjectIdleDays
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp"
	}
	return home
}
