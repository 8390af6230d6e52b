package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vibechart/internal/chartconfig"
	llmclient "vibechart/internal/llm/client"
	llm "vibechart/internal/llm/middleware"
)

// Stage is the context stage name attached to translation calls.
const Stage = "translate"

const (
	DefaultTemperature  float32 = 0.1
	DefaultMaxTokens            = 600
	DefaultHistoryTurns         = 6
)

type Options struct {
	Temperature  float32
	MaxTokens    int
	HistoryTurns int
}

func (o Options) withDefaults() Options {
	if o.Temperature <= 0 {
		o.Temperature = DefaultTemperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.HistoryTurns < 0 {
		o.HistoryTurns = 0
	} else if o.HistoryTurns == 0 {
		o.HistoryTurns = DefaultHistoryTurns
	}
	return o
}

// Turn is one prior chat message.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Instruction is a natural-language request plus optional conversation context.
type Instruction struct {
	Text    string
	History []Turn
}

// Patch is the weakly-typed result of one translation.
type Patch struct {
	Tree     chartconfig.Tree
	Fallback bool
	Repairs  []string
	Raw      string
}

// Translator turns instructions into configuration patches with one model call.
type Translator struct {
	client llmclient.LLMClient
	logger *zap.Logger
	opts   Options
}

func New(client llmclient.LLMClient, logger *zap.Logger, opts Options) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{client: client, logger: logger, opts: opts.withDefaults()}
}

// Translate asks the model for a patch against current. Transport and
// extraction failures are returned as errors; unparseable JSON is replaced by
// the fallback configuration.
func (t *Translator) Translate(ctx context.Context, in Instruction, current chartconfig.Tree) (*Patch, error) {
	system, err := BuildSystemPrompt(current)
	if err != nil {
		return nil, err
	}
	req := llmclient.CompletionRequest{
		System:      system,
		User:        BuildUserMessage(in.Text, t.recentTurns(in.History)),
		Temperature: t.opts.Temperature,
		MaxTokens:   t.opts.MaxTokens,
	}

	completion, err := t.client.Complete(llm.WithStage(ctx, Stage), req)
	if err != nil {
		return nil, fmt.Errorf("translate: %s: %w", t.client.Name(), err)
	}

	span, err := Extract(completion)
	if err != nil {
		return nil, err
	}

	tree, repairs, err := ParseWithRepair(span)
	var perr *ParseError
	switch {
	case errors.As(err, &perr):
		t.logger.Warn("translation fell back to default configuration",
			zap.Strings("repairs", perr.Repairs),
			zap.Error(perr.Err),
			zap.String("span", truncate(span, maxEchoedResponse)))
		return &Patch{Tree: chartconfig.Fallback(), Fallback: true, Repairs: repairs, Raw: completion}, nil
	case err != nil:
		return nil, err
	}
	if len(repairs) > 0 {
		t.logger.Debug("repaired model JSON", zap.Strings("repairs", repairs))
	}
	return &Patch{Tree: tree, Repairs: repairs, Raw: completion}, nil
}

func (t *Translator) recentTurns(history []Turn) []Turn {
	kept := make([]Turn, 0, len(history))
	for _, turn := range history {
		if strings.TrimSpace(turn.Content) != "" {
			kept = append(kept, turn)
		}
	}
	if len(kept) > t.opts.HistoryTurns {
		kept = kept[len(kept)-t.opts.HistoryTurns:]
	}
	return kept
}
