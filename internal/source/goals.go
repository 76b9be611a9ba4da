package source

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Goal is one entry in the goals store.
type Goal struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Progress  float64   `json:"progress"` // 0..1
	UpdatedAt time.Time `json:"updatedAt"`
}

// StalledFor returns how long the goal has gone without an update.
func (g Goal) StalledFor(now time.Time) time.Duration {
	return now.Sub(g.UpdatedAt)
}

// Goals reads the goals store file.
type Goals struct {
	path string
}

// NewGoals creates a goals source backed by a JSON file.
func NewGoals(path string) *Goals {
	return &Goals{path: path}
}

// List returns all tracked goals. A missing file means no goals are
// tracked, which is not an error.
func (g *Goals) List() ([]Goal, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read goals: %w", err)
	}
	var goals []Goal
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("parse goals: %w", err)
	}
	return goals, nil
}
