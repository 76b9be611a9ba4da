package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAI generates text through an OpenAI-compatible chat completions
// API. Works with OpenRouter, DeepSeek, vLLM, etc.
type OpenAI struct {
	apiKey  string
	apiBase string
	model   string
	client  *http.Client
}

// NewOpenAI creates an OpenAI-compatible generator.
func NewOpenAI(apiKey, apiBase, model string, timeout time.Duration) *OpenAI {
	if apiBase == "" {
		apiBase = "https://openrouter.ai/api/v1"
	}
	if model == "" {
		model = "anthropic/claude-sonnet-4-5"
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &OpenAI{
		apiKey:  apiKey,
		apiBase: apiBase,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *OpenAI) Generate(ctx context.Context, req Request) (*Result, error) {
	body := map[string]any{
		"model": g.model,
		"messages": []map[string]any{
			{"role": "user", "content": req.Prompt},
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := g.apiBase + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("generator not authenticated (HTTP %d)", resp.StatusCode)
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return nil, fmt.Errorf("generator not available (HTTP %d)", resp.StatusCode)
	default:
		return nil, fmt.Errorf("generator HTTP %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if raw.Error != nil {
		return nil, fmt.Errorf("generator error: %s", raw.Error.Message)
	}
	if len(raw.Choices) == 0 {
		return nil, fmt.Errorf("no choices in generator response")
	}

	return finishResult(raw.Choices[0].Message.Content, req.MaxChars), nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
