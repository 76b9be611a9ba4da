package config

import (
	"fmt"
	"strings"

	"github.com/joebot/nudged/internal/schedule"
)

// Validate checks the configuration for invalid or missing values.
func (c *Config) Validate() error {
	if errs := c.validate(); len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *Config) validate() []string {
	var errs []string

	// scheduler
	s := c.Scheduler
	if s.DailyCap < 1 {
		errs = append(errs, "scheduler.dailyCap must be at least 1")
	}
	if s.CooldownMinutes < 1 {
		errs = append(errs, "scheduler.cooldownMinutes must be at least 1")
	}
	if _, err := schedule.ParseClock(s.QuietHours.Start); err != nil {
		errs = append(errs, "scheduler.quietHours.start must be HH:MM")
	}
	if _, err := schedule.ParseClock(s.QuietHours.End); err != nil {
		errs = append(errs, "scheduler.quietHours.end must be HH:MM")
	}

	// channels.discord
	d := c.Channels.Discord
	if d.Enabled && d.Token == "" {
		errs = append(errs, "channels.discord.token is required when discord is enabled")
	}
	if d.Enabled && d.ChannelID == "" {
		errs = append(errs, "channels.discord.channelId is required when discord is enabled")
	}

	// generator (credentials are checked at startup, not here, so the
	// status command still works on a half-filled config)
	g := c.Generator
	if g.Provider != "subprocess" && g.Provider != "openai" {
		errs = append(errs, fmt.Sprintf("generator.provider %q is not one of: subprocess, openai", g.Provider))
	}
	if g.TimeoutSeconds < 0 {
		errs = append(errs, "generator.timeoutSeconds must be non-negative")
	}
	if g.MaxChars < 0 {
		errs = append(errs, "generator.maxChars must be non-negative")
	}

	// data thresholds
	dt := c.Data
	if dt.MoveThresholdPct < 0 {
		errs = append(errs, "data.moveThresholdPct must be non-negative")
	}
	if dt.GoalStaleDays < 0 {
		errs = append(errs, "data.goalStaleDays must be non-negative")
	}
	if dt.GoalNearComplete < 0 || dt.GoalNearComplete > 1 {
		errs = append(errs, "data.goalNearComplete must be between 0 and 1")
	}
	if dt.ProjectIdleDays < 0 {
		errs = append(errs, "data.projectIdleDays must be non-negative")
	}

	return errs
}
