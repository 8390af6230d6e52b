package llmclient

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Providers understood by New.
const (
	ProviderDeepSeek = "deepseek"
	ProviderGroq     = "groq"
	ProviderGemini   = "gemini"
	ProviderFake     = "fake"
)

// Config selects and configures one provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// New builds the client for cfg.Provider. A missing API key yields
// ErrMissingCredentials so callers can report it before doing any work.
func New(ctx context.Context, cfg Config) (LLMClient, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderDeepSeek:
		return NewChatClient(ChatOptions{
			Provider: ProviderDeepSeek,
			APIKey:   cfg.APIKey,
			Model:    cfg.Model,
			BaseURL:  cfg.BaseURL,
			Timeout:  cfg.Timeout,
		})
	case ProviderGroq:
		return NewChatClient(ChatOptions{
			Provider: ProviderGroq,
			APIKey:   cfg.APIKey,
			Model:    firstNonEmpty(cfg.Model, GroqModel),
			BaseURL:  firstNonEmpty(cfg.BaseURL, GroqURL),
			Timeout:  cfg.Timeout,
		})
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case ProviderFake:
		return NewFakeClient(), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
