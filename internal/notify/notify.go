package notify

import "context"

// Message is one finished notification ready for delivery. The
// idempotency key is derived from (date, job id) so a channel that
// retries internally cannot duplicate a send.
type Message struct {
	Body           string
	Category       string
	IdempotencyKey string
}

// Notifier is the interface for delivery channels.
type Notifier interface {
	Name() string
	Send(ctx context.Context, msg *Message) error
}
