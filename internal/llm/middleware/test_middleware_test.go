package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	llmclient "vibechart/internal/llm/client"
)

type recordingHook struct {
	stages      []string
	users       []string
	completions []string
	errs        []error
}

func (h *recordingHook) Before(_ context.Context, stage string, req llmclient.CompletionRequest) {
	h.stages = append(h.stages, stage)
	h.users = append(h.users, req.User)
}

func (h *recordingHook) After(_ context.Context, _ string, completion string, err error) {
	h.completions = append(h.completions, completion)
	h.errs = append(h.errs, err)
}

type tagClient struct {
	llmclient.LLMClient
	tag   string
	calls *[]string
}

func (c tagClient) Complete(ctx context.Context, req llmclient.CompletionRequest) (string, error) {
	*c.calls = append(*c.calls, c.tag)
	return c.LLMClient.Complete(ctx, req)
}

func TestWrap_LeftToRight(t *testing.T) {
	var calls []string
	tag := func(name string) Middleware {
		return func(next llmclient.LLMClient) llmclient.LLMClient {
			return tagClient{LLMClient: next, tag: name, calls: &calls}
		}
	}

	c := Wrap(llmclient.NewFakeClient("{}"), tag("A"), tag("B"))
	_, err := c.Complete(context.Background(), llmclient.CompletionRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, calls)
}

func TestWithHooks_CallsHookFromContext(t *testing.T) {
	hook := &recordingHook{}
	c := Wrap(llmclient.NewFakeClient(`{"grid":"none"}`), WithHooks())
	ctx := WithPromptHook(WithStage(context.Background(), "translate"), hook)

	out, err := c.Complete(ctx, llmclient.CompletionRequest{User: "no grid"})
	require.NoError(t, err)

	assert.Equal(t, `{"grid":"none"}`, out)
	assert.Equal(t, []string{"translate"}, hook.stages)
	assert.Equal(t, []string{"no grid"}, hook.users)
	assert.Equal(t, []string{`{"grid":"none"}`}, hook.completions)

	_, err = c.Complete(context.Background(), llmclient.CompletionRequest{})
	require.NoError(t, err)
	assert.Len(t, hook.stages, 1)
}

func TestWithUsage_CountsRequestsAndErrors(t *testing.T) {
	var usage Usage
	ok := Wrap(llmclient.NewFakeClient("abc"), WithUsage(&usage))
	bad := Wrap(llmclient.NewFailingFakeClient(errors.New("boom")), WithUsage(&usage))

	_, err := ok.Complete(context.Background(), llmclient.CompletionRequest{System: "ss", User: "u"})
	require.NoError(t, err)
	_, err = bad.Complete(context.Background(), llmclient.CompletionRequest{User: "u"})
	require.Error(t, err)

	snap := usage.Snapshot()
	assert.Equal(t, uint64(2), snap.Requests)
	assert.Equal(t, uint64(1), snap.Errors)
	assert.Equal(t, uint64(4), snap.PromptBytes)
	assert.Equal(t, uint64(3), snap.CompletionBytes)
}

func TestWithLogging_LogsErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := Wrap(llmclient.NewFailingFakeClient(errors.New("boom")), WithLogging(zap.New(core)))

	_, err := c.Complete(context.Background(), llmclient.CompletionRequest{User: "u"})
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("llm request").Len())
	errs := logs.FilterMessage("llm error").All()
	require.Len(t, errs, 1)
	assert.Equal(t, "boom", errs[0].ContextMap()["error"])
}
