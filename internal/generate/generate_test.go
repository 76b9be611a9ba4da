package generate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFinishResult(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		maxChars int
		wantText string
		decline  bool
	}{
		{"plain text", "Your brief is ready.", 200, "Your brief is ready.", false},
		{"trims whitespace", "  hello \n", 200, "hello", false},
		{"empty output declines", "   \n ", 200, "", true},
		{"exact token", "NOTHING_TO_SHARE", 200, "", true},
		{"token without underscores", "nothing to share today: NOTHINGTOSHARE", 200, "", true},
		{"lowercase token", "nothing_to_share", 200, "", true},
		{"token inside a sentence", "I looked and NOTHING_TO_SHARE.", 200, "", true},
		{"no bound when zero", strings.Repeat("a", 500), 0, strings.Repeat("a", 500), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := finishResult(tt.raw, tt.maxChars)
			if res.NothingToShare != tt.decline {
				t.Fatalf("decline: got %v", res.NothingToShare)
			}
			if res.Text != tt.wantText {
				t.Fatalf("text: got %q, want %q", res.Text, tt.wantText)
			}
		})
	}
}

func TestFinishResultTruncates(t *testing.T) {
	res := finishResult(strings.Repeat("x", 300), 100)
	if res.NothingToShare {
		t.Fatal("long text is not a decline")
	}
	if !strings.HasSuffix(res.Text, "…") {
		t.Fatalf("truncated text should end with an ellipsis: %q", res.Text)
	}
	if len(res.Text) > 100+len("…") {
		t.Fatalf("text too long after truncation: %d bytes", len(res.Text))
	}
}

func TestFinishResultTruncatesOnRuneBoundary(t *testing.T) {
	// "é" is two bytes; a 99-byte limit lands mid-rune on byte 99.
	raw := strings.Repeat("é", 80)
	res := finishResult(raw, 99)

	if !utf8.ValidString(res.Text) {
		t.Fatalf("truncation split a rune: %q", res.Text)
	}
	if !strings.HasSuffix(res.Text, "…") {
		t.Fatalf("truncated text should end with an ellipsis: %q", res.Text)
	}
	if got := strings.TrimSuffix(res.Text, "…"); got != strings.Repeat("é", 49) {
		t.Fatalf("want 49 whole runes kept, got %d bytes", len(got))
	}
}

func TestSubprocessGenerate(t *testing.T) {
	g := NewSubprocess("sh", []string{"-c", "cat"}, 10*time.Second)

	res, err := g.Generate(context.Background(), Request{Prompt: "echo this back", MaxChars: 200})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "echo this back" {
		t.Fatalf("text: got %q", res.Text)
	}
}

func TestSubprocessDecline(t *testing.T) {
	g := NewSubprocess("sh", []string{"-c", "echo NOTHING_TO_SHARE"}, 10*time.Second)

	res, err := g.Generate(context.Background(), Request{Prompt: "anything new?"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.NothingToShare {
		t.Fatal("sentinel reply should read as a decline")
	}
}

func TestSubprocessFailureCarriesStderr(t *testing.T) {
	g := NewSubprocess("sh", []string{"-c", "echo boom >&2; exit 3"}, 10*time.Second)

	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	if err == nil {
		t.Fatal("want error from failing command")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error should carry the stderr snippet: %v", err)
	}
}

func TestSubprocessTimeout(t *testing.T) {
	g := NewSubprocess("sh", []string{"-c", "sleep 5"}, 100*time.Millisecond)

	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	if err == nil {
		t.Fatal("want timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("error: %v", err)
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"choices":[{"message":{"content":"Markets are quiet today."}}]}`))
	}))
	defer srv.Close()

	g := NewOpenAI("test-key", srv.URL, "test-model", 5*time.Second)
	res, err := g.Generate(context.Background(), Request{Prompt: "market check", MaxChars: 200})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "Markets are quiet today." {
		t.Fatalf("text: got %q", res.Text)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header: got %q", gotAuth)
	}
}

func TestOpenAIStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusUnauthorized, "not authenticated"},
		{http.StatusForbidden, "not authenticated"},
		{http.StatusTooManyRequests, "not available"},
		{http.StatusServiceUnavailable, "not available"},
		{http.StatusInternalServerError, "HTTP 500"},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		g := NewOpenAI("k", srv.URL, "m", 5*time.Second)

		_, err := g.Generate(context.Background(), Request{Prompt: "p"})
		srv.Close()
		if err == nil {
			t.Errorf("HTTP %d: want error", tt.status)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("HTTP %d: error %q missing %q", tt.status, err, tt.want)
		}
	}
}

func TestOpenAIErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer srv.Close()

	g := NewOpenAI("k", srv.URL, "m", 5*time.Second)
	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("error: %v", err)
	}
}

func TestOpenAIDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"NOTHING_TO_SHARE"}}]}`))
	}))
	defer srv.Close()

	g := NewOpenAI("k", srv.URL, "m", 5*time.Second)
	res, err := g.Generate(context.Background(), Request{Prompt: "p"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.NothingToShare {
		t.Fatal("sentinel reply should read as a decline")
	}
}
