package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/joebot/nudged/internal/generate"
	"github.com/joebot/nudged/internal/schedule"
	"github.com/joebot/nudged/internal/source"
)

// Adhoc gathers a broad snapshot and lets the generator itself decide
// whether anything is worth sharing. The decline path is the
// generator's NothingToShare sentinel, not a precondition here.
type Adhoc struct {
	Portfolio *source.Portfolio
	Goals     *source.Goals
	Projects  *source.Projects
}

func (a *Adhoc) Evaluate(ctx context.Context, now time.Time) (*schedule.Evaluation, error) {
	var items []string

	if positions, err := a.Portfolio.Positions(); err == nil {
		for _, pos := range positions {
			items = append(items, fmt.Sprintf("position %s %s", pos.Symbol, pctString(pos.ChangePct())))
		}
	}
	if goals, err := a.Goals.List(); err == nil {
		for _, goal := range goals {
			items = append(items, fmt.Sprintf("goal %q at %d%%, last touched %d days ago",
				goal.Title, int(goal.Progress*100), daysAgo(goal.StalledFor(now))))
		}
	}
	if infos, err := a.Projects.Scan(); err == nil {
		for _, info := range infos {
			items = append(items, fmt.Sprintf("project %s idle %d days", info.Name, info.IdleDays(now)))
		}
	}

	instruction := fmt.Sprintf(
		"Look at this snapshot and share one genuinely interesting observation, if there is one. "+
			"If nothing is actually worth the user's attention, reply with exactly %s.",
		generate.NothingToShareToken)

	return &schedule.Evaluation{
		Items:  items,
		Prompt: composePrompt(instruction, items),
	}, nil
}
