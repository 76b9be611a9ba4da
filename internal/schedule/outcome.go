package schedule

// Status is the terminal state of one execution attempt.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the tagged result of running a job's execution pipeline.
// Exactly one of Reason (for skips) or Err (for failures) is set.
type Outcome struct {
	Status Status
	Reason string
	Err    error
}

// Sent reports a successful delivery.
func Sent() Outcome {
	return Outcome{Status: StatusSent}
}

// Skipped reports an expected non-delivery: precondition not met, cap
// reached, cooldown active, or the generator declining.
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

// Failed reports a generation or delivery error.
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// record converts the outcome to its persisted form.
func (o Outcome) record() *LastResult {
	r := &LastResult{Status: o.Status}
	switch o.Status {
	case StatusSkipped:
		r.Detail = o.Reason
	case StatusFailed:
		if o.Err != nil {
			r.Detail = o.Err.Error()
		}
	}
	return r
}
