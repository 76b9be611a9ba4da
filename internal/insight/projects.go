package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/joebot/nudged/internal/schedule"
	"github.com/joebot/nudged/internal/source"
)

// ProjectCheck fires only when a project directory has sat untouched
// longer than the idle threshold. The same threshold feeds the prompt,
// so the reminder always talks about the projects that tripped it.
type ProjectCheck struct {
	Projects *source.Projects
	IdleDays int
}

func (p *ProjectCheck) Evaluate(ctx context.Context, now time.Time) (*schedule.Evaluation, error) {
	infos, err := p.Projects.Scan()
	if err != nil {
		return nil, err
	}

	var items []string
	for _, info := range infos {
		if idle := info.IdleDays(now); idle >= p.IdleDays {
			items = append(items, fmt.Sprintf("%s — untouched for %d days", info.Name, idle))
		}
	}

	if len(items) == 0 {
		return &schedule.Evaluation{Reason: "no idle projects"}, nil
	}

	instruction := fmt.Sprintf(
		"These projects have been untouched for more than %d days. Gently remind the user, and suggest picking one:",
		p.IdleDays)
	return &schedule.Evaluation{
		Items:  items,
		Prompt: composePrompt(instruction, items),
	}, nil
}
