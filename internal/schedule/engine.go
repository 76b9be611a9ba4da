package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joebot/nudged/internal/generate"
	"github.com/joebot/nudged/internal/notify"
)

// Evaluation is what a category handler reports for one attempt: the
// items worth mentioning, the prompt composed from those same items,
// and a skip reason for when nothing qualifies. Keeping the veto and
// the prompt in one result means the two can never disagree about
// what counts as relevant.
type Evaluation struct {
	Items  []string
	Prompt string
	Reason string
}

// Evaluator checks a category's precondition against current data and
// composes the generation prompt from the surviving items.
type Evaluator interface {
	Evaluate(ctx context.Context, now time.Time) (*Evaluation, error)
}

// Generator produces notification text from a prompt.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (*generate.Result, error)
}

// Notifier delivers a finished notification.
type Notifier interface {
	Name() string
	Send(ctx context.Context, msg *notify.Message) error
}

// Config wires an Engine.
type Config struct {
	Jobs       []JobDefinition
	Evaluators map[Category]Evaluator
	Generator  Generator
	Notifier   Notifier

	StorePath  string
	QuietStart int // minute of day, band may wrap midnight
	QuietEnd   int
	DailyCap   int
	Cooldown   time.Duration
	MaxChars   int
}

// Engine is the tick loop that drives every job through its daily
// Pending → Fired transition. The tick is the only writer of the
// persisted state; job executions run concurrently but report back
// through a single mutex-guarded completion path.
type Engine struct {
	cfg    Config
	limits *limiter
	now    func() time.Time

	mu    sync.Mutex
	state *State
	wg    sync.WaitGroup
}

// NewEngine creates an engine. Run (or TriggerNow) loads state lazily.
func NewEngine(cfg Config) *Engine {
	if cfg.DailyCap <= 0 {
		cfg.DailyCap = 8
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 10 * time.Minute
	}
	return &Engine{
		cfg:    cfg,
		limits: newLimiter(cfg.DailyCap, cfg.Cooldown),
		now:    time.Now,
	}
}

// Run starts the scheduling loop. It blocks until ctx is cancelled;
// in-flight executions are left to finish on their own timeouts.
func (e *Engine) Run(ctx context.Context) {
	e.mu.Lock()
	e.ensureLoaded()
	e.rolloverLocked(e.now())
	jobCount := len(e.cfg.Jobs)
	e.mu.Unlock()

	slog.Info("Scheduler started", "jobs", jobCount, "cap", e.cfg.DailyCap,
		"quiet", ClockString(e.cfg.QuietStart)+"–"+ClockString(e.cfg.QuietEnd))

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopped")
			return
		case <-ticker.C:
			e.tick(ctx, e.now())
		}
	}
}

// tick is one pass of the state machine: rollover, quiet-hours gate,
// then dispatch of every Pending job whose target minute has passed.
// Dispatched jobs run asynchronously so a slow generation call never
// stalls the loop's cadence.
func (e *Engine) tick(ctx context.Context, now time.Time) {
	e.mu.Lock()
	e.ensureLoaded()
	e.rolloverLocked(now)

	if inQuietBand(minuteOfDay(now), e.cfg.QuietStart, e.cfg.QuietEnd) {
		e.mu.Unlock()
		return
	}

	weekend := isWeekend(now)
	minute := minuteOfDay(now)

	var due []JobDefinition
	for _, job := range e.cfg.Jobs {
		js := e.state.Jobs[job.ID]
		if js == nil || js.FiredToday {
			continue
		}
		if job.WeekdaysOnly && weekend {
			continue
		}
		if minute < js.TargetMinute {
			continue
		}
		// At-most-once: the flag flips the instant the attempt is
		// dispatched, whatever the eventual outcome.
		js.FiredToday = true
		due = append(due, job)
	}
	if len(due) > 0 {
		e.saveLocked()
	}
	e.mu.Unlock()

	for _, job := range due {
		slog.Info("Job due", "id", job.ID, "category", job.Category)
		e.wg.Add(1)
		go func(job JobDefinition) {
			defer e.wg.Done()
			out := e.execute(ctx, job, now)
			e.complete(job.ID, out)
		}(job)
	}
}

// rolloverLocked resets per-day state when the stored day differs from
// now's calendar day, and assigns target minutes to any job that lacks
// one for today. Running it twice on the same day is a no-op the
// second time. Target minutes carried over in a same-day snapshot are
// reused, so a restart never shifts a job's trigger time.
func (e *Engine) rolloverLocked(now time.Time) {
	today := now.Format(dayKey)
	changed := false

	if e.state.Date != today {
		slog.Info("Day rollover", "from", e.state.Date, "to", today)
		e.state.Date = today
		e.state.DailyMessageCount = 0
		e.state.Jobs = make(map[string]*JobState)
		e.limits.resetDay()
		changed = true
	}

	for _, job := range e.cfg.Jobs {
		if e.state.Jobs[job.ID] != nil {
			continue
		}
		minute := pickMinute(job.Window)
		e.state.Jobs[job.ID] = &JobState{TargetMinute: minute}
		slog.Debug("Job scheduled", "id", job.ID, "target", ClockString(minute))
		changed = true
	}

	if changed {
		e.saveLocked()
	}
}

// execute runs the pipeline for one job. Every failure is contained
// here: a panic in a handler or adapter is recorded as Failed and
// never reaches the tick loop.
func (e *Engine) execute(ctx context.Context, job JobDefinition, now time.Time) (out Outcome) {
	committed := false

	ok, reason := e.limits.acquire(now)
	if !ok {
		return Skipped(reason)
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Job panicked", "id", job.ID, "panic", r)
			out = Failed(fmt.Errorf("panic: %v", r))
		}
		if !committed {
			e.limits.release()
		}
	}()

	ev := e.cfg.Evaluators[job.Category]
	if ev == nil {
		return Failed(fmt.Errorf("no evaluator for category %q", job.Category))
	}
	eval, err := ev.Evaluate(ctx, now)
	if err != nil {
		return Failed(fmt.Errorf("evaluate %s: %w", job.ID, err))
	}
	if job.Conditional && len(eval.Items) == 0 {
		return Skipped(eval.Reason)
	}

	res, err := e.cfg.Generator.Generate(ctx, generate.Request{
		Prompt:   eval.Prompt,
		MaxChars: e.cfg.MaxChars,
	})
	if err != nil {
		until := e.limits.trip(e.now())
		slog.Warn("Generation failed, cooling down", "id", job.ID, "until", until.Format("15:04"), "err", err)
		return Failed(fmt.Errorf("generate: %w", err))
	}
	if res.NothingToShare {
		return Skipped("nothing to share")
	}

	msg := &notify.Message{
		Body:           res.Text,
		Category:       string(job.Category),
		IdempotencyKey: now.Format("20060102") + ":" + job.ID,
	}
	if err := e.cfg.Notifier.Send(ctx, msg); err != nil {
		until := e.limits.trip(e.now())
		slog.Warn("Delivery failed, cooling down", "id", job.ID, "until", until.Format("15:04"), "err", err)
		return Failed(fmt.Errorf("deliver via %s: %w", e.cfg.Notifier.Name(), err))
	}

	e.limits.commit()
	committed = true
	return Sent()
}

// complete records an attempt's outcome. All shared-state updates from
// concurrently finishing jobs are serialized here.
func (e *Engine) complete(jobID string, out Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if js := e.state.Jobs[jobID]; js != nil {
		js.LastResult = out.record()
	}
	e.state.DailyMessageCount = e.limits.sentCount()
	e.saveLocked()

	switch out.Status {
	case StatusSent:
		slog.Info("Job sent", "id", jobID, "count", e.state.DailyMessageCount)
	case StatusSkipped:
		slog.Info("Job skipped", "id", jobID, "reason", out.Reason)
	case StatusFailed:
		slog.Error("Job failed", "id", jobID, "err", out.Err)
	}
}

// TriggerNow forces one job's execution pipeline outside its window,
// for diagnostics. The job's target minute and fired flag for the day
// are left untouched; quota and cooldown gates still apply.
func (e *Engine) TriggerNow(ctx context.Context, jobID string) (Outcome, error) {
	now := e.now()

	e.mu.Lock()
	e.ensureLoaded()
	e.rolloverLocked(now)
	e.mu.Unlock()

	for _, job := range e.cfg.Jobs {
		if job.ID != jobID {
			continue
		}
		slog.Info("Manual trigger", "id", job.ID)
		out := e.execute(ctx, job, now)
		e.complete(job.ID, out)
		return out, nil
	}
	return Outcome{}, fmt.Errorf("unknown job %q", jobID)
}

func (e *Engine) ensureLoaded() {
	if e.state != nil {
		return
	}
	e.state = loadState(e.cfg.StorePath)
	if e.state.Date == e.now().Format(dayKey) {
		e.limits.restore(e.state.DailyMessageCount, e.state.CooldownUntil)
		slog.Info("Resumed scheduler state", "date", e.state.Date, "count", e.state.DailyMessageCount)
	}
}

func (e *Engine) saveLocked() {
	e.state.CooldownUntil = e.limits.cooldownUntilSnapshot()
	saveState(e.cfg.StorePath, e.state)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// inQuietBand reports whether minute falls inside the quiet-hours
// band. A band with start == end is disabled; start > end wraps past
// midnight (22:00–07:00).
func inQuietBand(minute, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return minute >= start && minute < end
	}
	return minute >= start || minute < end
}
