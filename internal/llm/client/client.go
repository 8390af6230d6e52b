package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// LLMClient defines the interface for LLM providers.
type LLMClient interface {
	Name() string
	Close() error
	// Complete sends one system/user exchange and returns the raw completion text.
	// Implementations make a single attempt; they never retry.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is one chat completion call.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

var (
	// ErrMissingCredentials is returned when a provider has no API key configured.
	ErrMissingCredentials = errors.New("llm: API key not configured")
	// ErrEmptyCompletion is returned when the provider answered without any text.
	ErrEmptyCompletion = errors.New("llm: empty completion")
)

// TransportError reports a failed exchange with the provider: connection
// problems, non-2xx responses and envelopes that are not the expected JSON.
type TransportError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: unexpected status %d %s: %s", e.Provider, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d %s", e.Provider, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }
