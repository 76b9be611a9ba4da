// Package insight holds the per-category handlers that decide whether
// a job has anything worth saying and compose the generation prompt
// from the same items. One handler per category, resolved into a
// table at startup.
package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/joebot/nudged/internal/schedule"
	"github.com/joebot/nudged/internal/source"
)

// Thresholds are the data-dependent cutoffs shared by each handler's
// precondition and its prompt. A single constant per concern keeps the
// veto and the composed text in agreement.
type Thresholds struct {
	MoveThresholdPct float64 // market: min abs % move to report
	GoalStaleDays    int     // goals: days without update
	GoalNearComplete float64 // goals: progress considered nearly done
	ProjectIdleDays  int     // projects: days untouched
}

// DefaultThresholds returns the built-in cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MoveThresholdPct: 2.0,
		GoalStaleDays:    7,
		GoalNearComplete: 0.8,
		ProjectIdleDays:  14,
	}
}

const promptStyle = `Write a short, friendly push notification for a personal dashboard.
One or two sentences, no greeting, no sign-off, plain text.`

// composePrompt builds the bounded prompt sent to the generator.
func composePrompt(instruction string, items []string) string {
	var sb strings.Builder
	sb.WriteString(promptStyle)
	sb.WriteString("\n\n")
	sb.WriteString(instruction)
	if len(items) > 0 {
		sb.WriteString("\n\n")
		for _, item := range items {
			sb.WriteString("- ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Table builds the category handler table from the configured sources.
func Table(portfolio *source.Portfolio, goals *source.Goals, projects *source.Projects, th Thresholds) map[schedule.Category]schedule.Evaluator {
	return map[schedule.Category]schedule.Evaluator{
		schedule.CategoryBrief:    &Brief{Portfolio: portfolio, Goals: goals},
		schedule.CategoryMarket:   &Market{Portfolio: portfolio, MoveThresholdPct: th.MoveThresholdPct},
		schedule.CategoryGoals:    &GoalCheck{Goals: goals, StaleDays: th.GoalStaleDays, NearComplete: th.GoalNearComplete},
		schedule.CategoryProjects: &ProjectCheck{Projects: projects, IdleDays: th.ProjectIdleDays},
		schedule.CategoryAdhoc:    &Adhoc{Portfolio: portfolio, Goals: goals, Projects: projects},
	}
}

func pctString(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

func daysAgo(d time.Duration) int {
	return int(d.Hours() / 24)
}
