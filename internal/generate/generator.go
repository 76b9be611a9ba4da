package generate

import (
	"context"
	"strings"
	"unicode/utf8"
)

// NothingToShareToken is the literal a generator replies with when it
// decides the prompt does not warrant a notification. The scheduler
// treats it as a skip, not a failure.
const NothingToShareToken = "NOTHING_TO_SHARE"

// Request holds the parameters for one generation call.
type Request struct {
	Prompt   string
	MaxChars int
}

// Result is the generation outcome: either text to deliver, or an
// explicit decline. The decline is part of the output contract rather
// than a magic string callers grep for.
type Result struct {
	Text           string
	NothingToShare bool
}

// Generator is the interface for content generation backends.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// finishResult normalizes raw generator output: trims whitespace,
// detects the decline token, and enforces the length bound.
func finishResult(raw string, maxChars int) *Result {
	text := strings.TrimSpace(raw)

	normalized := strings.ToUpper(strings.ReplaceAll(text, "_", ""))
	token := strings.ReplaceAll(NothingToShareToken, "_", "")
	if text == "" || strings.Contains(normalized, token) {
		return &Result{NothingToShare: true}
	}

	if maxChars > 0 && len(text) > maxChars {
		text = strings.TrimSpace(cutAtRune(text, maxChars)) + "…"
	}
	return &Result{Text: text}
}

// cutAtRune shortens s to at most n bytes, backing up to a rune
// boundary so a multi-byte character is never split.
func cutAtRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
