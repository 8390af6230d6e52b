package llmclient

import (
	"context"
	"sync"
)

// FakeClient returns scripted completions for offline runs and tests. Responses
// are served in order; once exhausted the last one repeats. With no script it
// answers with an empty JSON object.
type FakeClient struct {
	mu        sync.Mutex
	responses []string
	next      int
	err       error
	requests  []CompletionRequest
}

func NewFakeClient(responses ...string) *FakeClient {
	return &FakeClient{responses: responses}
}

// NewFailingFakeClient returns a client whose every call fails with err.
func NewFailingFakeClient(err error) *FakeClient {
	return &FakeClient{err: err}
}

func (f *FakeClient) Name() string { return "fake" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "{}", nil
	}
	out := f.responses[min(f.next, len(f.responses)-1)]
	f.next++
	return out, nil
}

// Requests returns a copy of every request received so far.
func (f *FakeClient) Requests() []CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CompletionRequest(nil), f.requests...)
}
