package config

import "path/filepath"

// Config is the root configuration for nudged.
type Config struct {
	Scheduler SchedulerConfig `json:"scheduler"`
	Channels  ChannelsConfig  `json:"channels"`
	Generator GeneratorConfig `json:"generator"`
	Data      DataConfig      `json:"data"`
}

// SchedulerConfig holds the tick loop's global knobs.
type SchedulerConfig struct {
	QuietHours      QuietHoursConfig `json:"quietHours"`
	DailyCap        int              `json:"dailyCap"`
	CooldownMinutes int              `json:"cooldownMinutes"`
}

// QuietHoursConfig is the daily band during which no job executes.
// The band may wrap midnight (start 22:00, end 07:00).
type QuietHoursConfig struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ChannelsConfig holds delivery channel configurations.
type ChannelsConfig struct {
	Discord DiscordConfig `json:"discord"`
}

// DiscordConfig holds Discord delivery settings.
type DiscordConfig struct {
	Enabled   bool   `json:"enabled"`
	Token     string `json:"token"`
	ChannelID string `json:"channelId"`
}

// GeneratorConfig selects and configures the content generator.
// Provider is "subprocess" (an external CLI, prompt on stdin) or
// "openai" (an OpenAI-compatible HTTP API).
type GeneratorConfig struct {
	Provider       string   `json:"provider"`
	Command        string   `json:"command,omitempty"`
	Args           []string `json:"args,omitempty"`
	Model          string   `json:"model,omitempty"`
	APIKey         string   `json:"apiKey,omitempty"`
	APIBase        string   `json:"apiBase,omitempty"`
	TimeoutSeconds int      `json:"timeoutSeconds"`
	MaxChars       int      `json:"maxChars"`
}

// DataConfig points at the read-only data sources and holds the
// per-category relevance thresholds.
type DataConfig struct {
	PortfolioPath    string  `json:"portfolioPath"`
	GoalsPath        string  `json:"goalsPath"`
	ProjectsDir      string  `json:"projectsDir"`
	MoveThresholdPct float64 `json:"moveThresholdPct"`
	GoalStaleDays    int     `json:"goalStaleDays"`
	GoalNearComplete float64 `json:"goalNearComplete"`
	ProjectIdleDays  int     `json:"projectIdleDays"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			QuietHours:      QuietHoursConfig{Start: "22:00", End: "07:00"},
			DailyCap:        8,
			CooldownMinutes: 10,
		},
		Generator: GeneratorConfig{
			Provider:       "subprocess",
			TimeoutSeconds: 90,
			MaxChars:       1200,
		},
		Data: DataConfig{
			PortfolioPath:    "~/.nudged/portfolio.json",
			GoalsPath:        "~/.nudged/goals.json",
			ProjectsDir:      "~/projects",
			MoveThresholdPct: 2.0,
			GoalStaleDays:    7,
			GoalNearComplete: 0.8,
			ProjectIdleDays:  14,
		},
	}
}

// PortfolioPath returns the expanded portfolio snapshot path.
func (c *Config) PortfolioPath() string { return expandHome(c.Data.PortfolioPath) }

// GoalsPath returns the expanded goals store path.
func (c *Config) GoalsPath() string { return expandHome(c.Data.GoalsPath) }

// ProjectsDir returns the expanded projects directory.
func (c *Config) ProjectsDir() string { return expandHome(c.Data.ProjectsDir) }

func expandHome(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
