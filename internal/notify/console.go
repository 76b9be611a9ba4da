package notify

import (
	"context"
	"fmt"
	"io"
)

// Console writes notifications to a local writer. Used by the manual
// trigger command when no real channel is enabled, so the pipeline can
// be exercised end to end without a bot token.
type Console struct {
	w io.Writer
}

// NewConsole creates a console notifier.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Send(_ context.Context, msg *Message) error {
	_, err := fmt.Fprintf(c.w, "[%s] %s\n%s\n", msg.Category, msg.IdempotencyKey, msg.Body)
	return err
}
