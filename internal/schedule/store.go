package schedule

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// LastResult is the persisted form of a job's most recent outcome.
type LastResult struct {
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JobState is the per-job slice of the daily snapshot.
type JobState struct {
	TargetMinute int         `json:"targetMinute"`
	FiredToday   bool        `json:"firedToday"`
	LastResult   *LastResult `json:"lastResult,omitempty"`
}

// State is the whole-process snapshot. It is rewritten in full after
// every execution attempt and on every rollover; there is no append
// log. CooldownUntil and LastSaved are diagnostic extras.
type State struct {
	Date              string               `json:"date"`
	DailyMessageCount int                  `json:"dailyMessageCount"`
	Jobs              map[string]*JobState `json:"jobs"`
	CooldownUntil     time.Time            `json:"cooldownUntil,omitzero"`
	LastSaved         time.Time            `json:"lastSaved,omitzero"`
}

// dayKey is the calendar-day format used for State.Date.
const dayKey = "2006-01-02"

// loadState reads the snapshot from disk. A missing or unparseable
// file yields an empty state, which the next rollover check fills in.
func loadState(path string) *State {
	empty := &State{Jobs: make(map[string]*JobState)}

	data, err := os.ReadFile(path)
	if err != nil {
		return empty
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("Failed to parse scheduler state, starting fresh", "path", path, "err", err)
		return empty
	}
	if st.Jobs == nil {
		st.Jobs = make(map[string]*JobState)
	}
	return &st
}

// saveState overwrites the snapshot on disk.
func saveState(path string, st *State) {
	st.LastSaved = time.Now()

	dir := filepath.Dir(path)
	os.MkdirAll(dir, 0o755)

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal scheduler state", "err", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("Failed to save scheduler state", "err", err)
	}
}
