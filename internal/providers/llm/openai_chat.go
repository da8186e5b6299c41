package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAIChat talks to an OpenAI-compatible chat-completion endpoint.
type OpenAIChat struct {
	apiKey string
	base   string
	http   *http.Client
}

func NewOpenAIChat(apiKey, baseURL string) *OpenAIChat {
	return &OpenAIChat{
		apiKey: apiKey,
		base:   baseURL,
		http:   &http.Client{},
	}
}

func (c *OpenAIChat) Close() error { return nil }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// CompletionError is a non-2xx response from the completion endpoint.
type CompletionError struct {
	StatusCode int
	Body       string
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion provider returned %d: %s", e.StatusCode, e.Body)
}

func (e *CompletionError) UpstreamStatus() int  { return e.StatusCode }
func (e *CompletionError) UpstreamBody() string { return e.Body }

func (c *OpenAIChat) Complete(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", &CompletionError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var ch chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&ch); err != nil {
		return "", err
	}
	if len(ch.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return ch.Choices[0].Message.Content, nil
}
