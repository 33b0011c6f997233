package llm

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNoAPIKey is returned when no API key is configured for the provider
	ErrNoAPIKey = errors.New("llm api key not configured")
	// ErrEmptyResponse is returned when the model produced no usable text
	ErrEmptyResponse = errors.New("llm returned an empty response")
)

// Client generates text from a prompt. All providers implement it.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateWithTimeout runs a generation under DefaultTimeout unless the
// caller's context expires first.
func GenerateWithTimeout(ctx context.Context, c Client, prompt string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Generate(ctx, prompt)
}
