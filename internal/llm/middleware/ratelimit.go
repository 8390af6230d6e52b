package llm

import (
	"context"

	"golang.org/x/time/rate"

	llmclient "vibechart/internal/llm/client"
)

// RateLimit throttles calls to at most rps per second with the given burst.
// A non-positive rps disables it.
func RateLimit(rps float64, burst int) Middleware {
	if rps <= 0 {
		return func(next llmclient.LLMClient) llmclient.LLMClient { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &limited{next: next, limiter: limiter}
	}
}

type limited struct {
	next    llmclient.LLMClient
	limiter *rate.Limiter
}

func (l *limited) Name() string { return l.next.Name() }
func (l *limited) Close() error { return l.next.Close() }

func (l *limited) Complete(ctx context.Context, req llmclient.CompletionRequest) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.next.Complete(ctx, req)
}
