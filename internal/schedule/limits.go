package schedule

import (
	"sync"
	"time"
)

// Skip reasons produced by the quota and cooldown gates.
const (
	reasonCapReached     = "daily cap reached"
	reasonCooldownActive = "cooldown active"
)

// limiter owns the two global delivery brakes: the daily message cap
// and the shared failure cooldown. All job executions funnel through
// it, so a single unhealthy dependency pauses the whole scheduler
// instead of letting failing jobs retry in a tight loop.
//
// The cap uses reservation semantics: acquire claims a slot before
// any external call, release returns it when the attempt ends in a
// skip or failure, and commit consumes it on a successful send. Two
// jobs completing concurrently can therefore never push the number of
// sends past the cap.
type limiter struct {
	mu            sync.Mutex
	cap           int
	cooldown      time.Duration
	reserved      int
	sent          int
	cooldownUntil time.Time
}

func newLimiter(cap int, cooldown time.Duration) *limiter {
	return &limiter{cap: cap, cooldown: cooldown}
}

// acquire reserves a delivery slot. When a gate blocks the attempt it
// returns false with the skip reason; the cap gate is checked before
// the cooldown gate.
func (l *limiter) acquire(now time.Time) (ok bool, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.reserved >= l.cap {
		return false, reasonCapReached
	}
	if now.Before(l.cooldownUntil) {
		return false, reasonCooldownActive
	}
	l.reserved++
	return true, ""
}

// release returns a reserved slot after a skip or failure.
func (l *limiter) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reserved--
}

// commit consumes the reserved slot for a successful send.
func (l *limiter) commit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent++
}

// trip starts (or extends) the shared cooldown.
func (l *limiter) trip(now time.Time) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cooldownUntil = now.Add(l.cooldown)
	return l.cooldownUntil
}

// cooldownUntilSnapshot returns the current cooldown expiry.
func (l *limiter) cooldownUntilSnapshot() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cooldownUntil
}

// coolingDown reports whether the cooldown is active at now.
func (l *limiter) coolingDown(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return now.Before(l.cooldownUntil)
}

// sentCount returns the number of successful sends today.
func (l *limiter) sentCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sent
}

// resetDay clears the counters on day rollover. The cooldown is left
// alone: a failure just before midnight should still pause the first
// jobs of the new day.
func (l *limiter) resetDay() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reserved = 0
	l.sent = 0
}

// restore seeds the counters from a resumed snapshot.
func (l *limiter) restore(sent int, cooldownUntil time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = sent
	l.reserved = sent
	l.cooldownUntil = cooldownUntil
}
