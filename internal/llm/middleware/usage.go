package llm

import (
	"context"
	"sync/atomic"

	llmclient "vibechart/internal/llm/client"
)

// Usage accumulates process-wide LLM call statistics.
type Usage struct {
	requests        atomic.Uint64
	errors          atomic.Uint64
	promptBytes     atomic.Uint64
	completionBytes atomic.Uint64
}

type UsageSnapshot struct {
	Requests        uint64 `json:"requests"`
	Errors          uint64 `json:"errors"`
	PromptBytes     uint64 `json:"prompt_bytes"`
	CompletionBytes uint64 `json:"completion_bytes"`
}

func (u *Usage) Snapshot() UsageSnapshot {
	if u == nil {
		return UsageSnapshot{}
	}
	return UsageSnapshot{
		Requests:        u.requests.Load(),
		Errors:          u.errors.Load(),
		PromptBytes:     u.promptBytes.Load(),
		CompletionBytes: u.completionBytes.Load(),
	}
}

// WithUsage counts every call that passes through into u.
func WithUsage(u *Usage) Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &usageClient{next: next, usage: u}
	}
}

type usageClient struct {
	next  llmclient.LLMClient
	usage *Usage
}

func (c *usageClient) Name() string { return c.next.Name() }
func (c *usageClient) Close() error { return c.next.Close() }

func (c *usageClient) Complete(ctx context.Context, req llmclient.CompletionRequest) (string, error) {
	c.usage.requests.Add(1)
	c.usage.promptBytes.Add(uint64(len(req.System) + len(req.User)))
	out, err := c.next.Complete(ctx, req)
	if err != nil {
		c.usage.errors.Add(1)
		return out, err
	}
	c.usage.completionBytes.Add(uint64(len(out)))
	return out, nil
}
