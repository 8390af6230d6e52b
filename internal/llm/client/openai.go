package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DeepSeekURL   = "https://api.deepseek.com/v1/chat/completions"
	DeepSeekModel = "deepseek-chat"
	GroqURL       = "https://api.groq.com/openai/v1/chat/completions"
	GroqModel     = "llama-3.3-70b-versatile"

	maxErrorBody = 2048
)

// ChatClient calls an OpenAI-compatible Chat Completions endpoint (DeepSeek,
// Groq, ...).
type ChatClient struct {
	http     *http.Client
	provider string
	apiKey   string
	model    string
	baseURL  string
}

// ChatOptions configures a ChatClient. Zero values pick the DeepSeek defaults.
type ChatOptions struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewChatClient creates an OpenAI-compatible client. An empty API key is an
// error: the endpoint would reject the request anyway.
func NewChatClient(opts ChatOptions) (*ChatClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingCredentials
	}
	if opts.Provider == "" {
		opts.Provider = "deepseek"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DeepSeekURL
	}
	if opts.Model == "" {
		opts.Model = DeepSeekModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &ChatClient{
		http:     hc,
		provider: opts.Provider,
		apiKey:   opts.APIKey,
		model:    opts.Model,
		baseURL:  opts.BaseURL,
	}, nil
}

func (c *ChatClient) Name() string { return c.provider + ":" + c.model }
func (c *ChatClient) Close() error { return nil }

type chatReq struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the system prompt and the user message as a two-message chat.
func (c *ChatClient) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	body := chatReq{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: in.System},
			{Role: "user", Content: in.User},
		},
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", c.provider, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", &TransportError{Provider: c.provider, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Provider: c.provider, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &TransportError{Provider: c.provider, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TransportError{Provider: c.provider, Err: fmt.Errorf("decode response envelope: %w", err)}
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", &TransportError{Provider: c.provider, Err: ErrEmptyCompletion}
	}
	return out.Choices[0].Message.Content, nil
}
