package llm

import (
	"context"

	llmclient "vibechart/internal/llm/client"
)

// PromptHook defines callbacks around LLM requests.
type PromptHook interface {
	Before(ctx context.Context, stage string, req llmclient.CompletionRequest)
	After(ctx context.Context, stage string, completion string, err error)
}

type ctxKeyHook struct{}
type ctxKeyStage struct{}

// WithStage attaches a pipeline stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, ctxKeyStage{}, stage)
}

// WithPromptHook attaches a PromptHook to the context. Middlewares that call
// HookFrom(ctx) can use this to invoke Before/After around requests.
func WithPromptHook(ctx context.Context, hook PromptHook) context.Context {
	return context.WithValue(ctx, ctxKeyHook{}, hook)
}

// HookFrom returns the hook stored in the context.
func HookFrom(ctx context.Context) PromptHook {
	if h, ok := ctx.Value(ctxKeyHook{}).(PromptHook); ok {
		return h
	}
	return nil
}

// StageFrom returns the stage name stored in the context.
func StageFrom(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeyStage{}).(string); ok {
		return s
	}
	return "unknown"
}

// WithHooks calls HookFrom(ctx).Before/After around Complete.
// If no hook is present in the context, it is a no-op.
func WithHooks() Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &hooked{next: next}
	}
}

type hooked struct{ next llmclient.LLMClient }

func (h *hooked) Name() string { return h.next.Name() }
func (h *hooked) Close() error { return h.next.Close() }

func (h *hooked) Complete(ctx context.Context, req llmclient.CompletionRequest) (string, error) {
	hook := HookFrom(ctx)
	if hook != nil {
		hook.Before(ctx, StageFrom(ctx), req)
	}
	out, err := h.next.Complete(ctx, req)
	if hook != nil {
		hook.After(ctx, StageFrom(ctx), out, err)
	}
	return out, err
}
