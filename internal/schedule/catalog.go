package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Category identifies the kind of notification a job produces.
type Category string

const (
	CategoryBrief    Category = "brief"
	CategoryMarket   Category = "market"
	CategoryGoals    Category = "goals"
	CategoryProjects Category = "projects"
	CategoryAdhoc    Category = "adhoc"
)

// Window is the span of wall-clock minutes within which a job's single
// daily trigger time is chosen. Start is inclusive, End exclusive.
type Window struct {
	Start int
	End   int
}

// Contains reports whether minute falls inside the window.
func (w Window) Contains(minute int) bool {
	return minute >= w.Start && minute < w.End
}

func (w Window) String() string {
	return fmt.Sprintf("%s–%s", ClockString(w.Start), ClockString(w.End))
}

// JobDefinition describes one recurring job. Definitions are static:
// the catalog is loaded once at startup and never mutated.
type JobDefinition struct {
	ID           string
	Category     Category
	Window       Window
	WeekdaysOnly bool
	Conditional  bool
}

// Catalog returns the built-in job list, in delivery-priority order.
func Catalog() []JobDefinition {
	return []JobDefinition{
		{ID: "morning-brief", Category: CategoryBrief, Window: window("7:45", "8:45")},
		{ID: "market-open", Category: CategoryMarket, Window: window("9:15", "9:45"), WeekdaysOnly: true, Conditional: true},
		{ID: "project-reminder", Category: CategoryProjects, Window: window("10:00", "18:00"), Conditional: true},
		{ID: "adhoc-insight", Category: CategoryAdhoc, Window: window("11:00", "16:00")},
		{ID: "market-midday", Category: CategoryMarket, Window: window("12:30", "13:30"), WeekdaysOnly: true, Conditional: true},
		{ID: "goal-nudge", Category: CategoryGoals, Window: window("17:00", "19:00"), Conditional: true},
		{ID: "evening-brief", Category: CategoryBrief, Window: window("20:30", "21:30")},
	}
}

// ParseClock converts "H:MM" or "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return h*60 + m, nil
}

// ClockString formats minutes since midnight as "HH:MM".
func ClockString(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// window builds a Window from two clock strings. The catalog is static
// data, so a malformed entry is a programming error.
func window(start, end string) Window {
	s, err := ParseClock(start)
	if err != nil {
		panic(err)
	}
	e, err := ParseClock(end)
	if err != nil {
		panic(err)
	}
	if s >= e {
		panic(fmt.Sprintf("window start %s not before end %s", start, end))
	}
	return Window{Start: s, End: e}
}
