package source

import (
	"encoding/json"
	"fmt"
	"os"
)

// Position is one tracked holding in the portfolio snapshot.
type Position struct {
	Symbol    string  `json:"symbol"`
	Last      float64 `json:"last"`
	PrevClose float64 `json:"prevClose"`
}

// ChangePct is the percent move since the previous close.
func (p Position) ChangePct() float64 {
	if p.PrevClose == 0 {
		return 0
	}
	return (p.Last - p.PrevClose) / p.PrevClose * 100
}

// Portfolio reads the portfolio cache maintained by an external
// process. The scheduler only ever reads it.
type Portfolio struct {
	path string
}

// NewPortfolio creates a portfolio source backed by a JSON snapshot file.
func NewPortfolio(path string) *Portfolio {
	return &Portfolio{path: path}
}

// Positions returns the current snapshot. The file is re-read on every
// call so each job attempt sees fresh data.
func (p *Portfolio) Positions() ([]Position, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	var snapshot struct {
		Positions []Position `json:"positions"`
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse portfolio: %w", err)
	}
	return snapshot.Positions, nil
}
