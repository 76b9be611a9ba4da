package generate

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Subprocess invokes an external command-line generation service. The
// prompt goes to stdin, the generated text comes back on stdout. The
// per-call timeout here is the scheduler's only timeout mechanism; a
// timed-out call is a failure like any other.
type Subprocess struct {
	command string
	args    []string
	timeout time.Duration
}

// NewSubprocess creates a subprocess-backed generator.
func NewSubprocess(command string, args []string, timeout time.Duration) *Subprocess {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Subprocess{command: command, args: args, timeout: timeout}
}

func (g *Subprocess) Generate(ctx context.Context, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, g.command, g.args...)
	cmd.Stdin = strings.NewReader(req.Prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("generator timed out after %s", g.timeout)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			detail = cutAtRune(detail, 200)
			return nil, fmt.Errorf("generator %s: %w: %s", g.command, err, detail)
		}
		return nil, fmt.Errorf("generator %s: %w", g.command, err)
	}

	return finishResult(stdout.String(), req.MaxChars), nil
}
