package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/joebot/nudged/internal/schedule"
	"github.com/joebot/nudged/internal/source"
)

// Brief composes the unconditional morning/evening brief. Data source
// reads are best-effort: a missing portfolio or goals file just leaves
// that section out of the prompt.
type Brief struct {
	Portfolio *source.Portfolio
	Goals     *source.Goals
}

func (b *Brief) Evaluate(ctx context.Context, now time.Time) (*schedule.Evaluation, error) {
	items := []string{now.Format("Monday, January 2")}

	if positions, err := b.Portfolio.Positions(); err == nil {
		for _, pos := range positions {
			items = append(items, fmt.Sprintf("position %s at %.2f (%s today)", pos.Symbol, pos.Last, pctString(pos.ChangePct())))
		}
	}
	if goals, err := b.Goals.List(); err == nil {
		for _, goal := range goals {
			if goal.Progress < 1 {
				items = append(items, fmt.Sprintf("goal %q at %d%%", goal.Title, int(goal.Progress*100)))
			}
		}
	}

	timeOfDay := "morning"
	if now.Hour() >= 12 {
		timeOfDay = "evening"
	}
	instruction := fmt.Sprintf("Compose a brief %s check-in from this snapshot:", timeOfDay)

	return &schedule.Evaluation{
		Items:  items,
		Prompt: composePrompt(instruction, items),
	}, nil
}
