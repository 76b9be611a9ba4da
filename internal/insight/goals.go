package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/joebot/nudged/internal/schedule"
	"github.com/joebot/nudged/internal/source"
)

// GoalCheck fires only when some goal is stalled or nearly complete.
type GoalCheck struct {
	Goals        *source.Goals
	StaleDays    int
	NearComplete float64
}

func (g *GoalCheck) Evaluate(ctx context.Context, now time.Time) (*schedule.Evaluation, error) {
	goals, err := g.Goals.List()
	if err != nil {
		return nil, err
	}

	var items []string
	for _, goal := range goals {
		if goal.Progress >= 1 {
			continue
		}
		stalled := daysAgo(goal.StalledFor(now))
		switch {
		case goal.Progress >= g.NearComplete:
			items = append(items, fmt.Sprintf("%q is %d%% done — almost there", goal.Title, int(goal.Progress*100)))
		case stalled >= g.StaleDays:
			items = append(items, fmt.Sprintf("%q has had no progress for %d days (%d%% done)", goal.Title, stalled, int(goal.Progress*100)))
		}
	}

	if len(items) == 0 {
		return &schedule.Evaluation{Reason: "no goals need attention"}, nil
	}

	instruction := "Nudge the user about these goals. Be encouraging, not naggy:"
	return &schedule.Evaluation{
		Items:  items,
		Prompt: composePrompt(instruction, items),
	}, nil
}
