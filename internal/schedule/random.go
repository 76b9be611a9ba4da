package schedule

import "math/rand/v2"

// pickMinute draws a uniformly distributed trigger minute from the
// window [Start, End). Each job gets exactly one draw per calendar
// day; a minute carried over from the state file is reused, never
// re-rolled.
func pickMinute(w Window) int {
	return w.Start + rand.IntN(w.End-w.Start)
}
