package llm

import "context"

// Request is a single two-message chat completion.
type Request struct {
	System      string
	User        string
	Model       string
	Temperature float32
	MaxTokens   int
}

type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	Close() error
}
