package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/joebot/nudged/internal/schedule"
	"github.com/joebot/nudged/internal/source"
)

// Market fires only when a tracked position has moved more than the
// threshold since the previous close.
type Market struct {
	Portfolio        *source.Portfolio
	MoveThresholdPct float64
}

func (m *Market) Evaluate(ctx context.Context, _ time.Time) (*schedule.Evaluation, error) {
	positions, err := m.Portfolio.Positions()
	if err != nil {
		return nil, err
	}

	var items []string
	for _, pos := range positions {
		pct := pos.ChangePct()
		if pct >= m.MoveThresholdPct || pct <= -m.MoveThresholdPct {
			items = append(items, fmt.Sprintf("%s %s (%.2f)", pos.Symbol, pctString(pct), pos.Last))
		}
	}

	if len(items) == 0 {
		return &schedule.Evaluation{Reason: "no notable market moves"}, nil
	}

	instruction := fmt.Sprintf(
		"These tracked positions moved more than %.1f%% since the previous close. Summarize what stands out:",
		m.MoveThresholdPct)
	return &schedule.Evaluation{
		Items:  items,
		Prompt: composePrompt(instruction, items),
	}, nil
}
