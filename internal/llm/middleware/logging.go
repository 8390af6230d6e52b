package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	llmclient "vibechart/internal/llm/client"
)

// WithLogging logs request size, latency and errors. A nil logger disables it.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.LLMClient
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Complete(ctx context.Context, req llmclient.CompletionRequest) (string, error) {
	start := time.Now()
	fields := []zap.Field{
		zap.String("client", l.next.Name()),
		zap.String("stage", StageFrom(ctx)),
		zap.Int("prompt_bytes", len(req.System)+len(req.User)),
	}
	l.log.Debug("llm request", fields...)
	out, err := l.next.Complete(ctx, req)
	fields = append(fields, zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		l.log.Warn("llm error", append(fields, zap.Error(err))...)
		return out, err
	}
	l.log.Debug("llm response", append(fields, zap.Int("completion_bytes", len(out)))...)
	return out, nil
}
