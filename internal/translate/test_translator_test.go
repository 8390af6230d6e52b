package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"vibechart/internal/chartconfig"
	llmclient "vibechart/internal/llm/client"
)

func TestTranslate_RoundedBars(t *testing.T) {
	fake := llmclient.NewFakeClient(`{"barStyle": {"borderRadius": 10}}`)
	tr := New(fake, zap.NewNop(), Options{})

	patch, err := tr.Translate(context.Background(), Instruction{Text: "rounded bars"}, chartconfig.Tree{"chartType": "bar"})
	require.NoError(t, err)

	assert.False(t, patch.Fallback)
	assert.Equal(t, chartconfig.Tree{"barStyle": map[string]any{"borderRadius": 10.0}}, patch.Tree)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, DefaultTemperature, reqs[0].Temperature)
	assert.Equal(t, DefaultMaxTokens, reqs[0].MaxTokens)
	assert.Equal(t, `User request: "rounded bars"`, reqs[0].User)
	assert.Contains(t, reqs[0].System, "[CURRENT CONFIG]\n{\n  \"chartType\": \"bar\"\n}\n")
	assert.Contains(t, reqs[0].System, `- "rounded bars" → {"barStyle":{"borderRadius":10}}`)
}

func TestTranslate_RepairsJavaScriptObject(t *testing.T) {
	fake := llmclient.NewFakeClient("Here you go:\n{chartType: 'bar', yKey: \"Revenue\",}")
	tr := New(fake, nil, Options{})

	patch, err := tr.Translate(context.Background(), Instruction{Text: "bar chart of revenue"}, nil)
	require.NoError(t, err)

	assert.False(t, patch.Fallback)
	assert.Equal(t, "bar", patch.Tree["chartType"])
	assert.Equal(t, "Revenue", patch.Tree["yKey"])
	assert.Len(t, patch.Repairs, 3)
}

func TestTranslate_FallbackIsDeterministic(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tr := New(llmclient.NewFakeClient(`{"a": [1, 2}`), zap.New(core), Options{})

	first, err := tr.Translate(context.Background(), Instruction{Text: "anything"}, chartconfig.Tree{})
	require.NoError(t, err)
	second, err := tr.Translate(context.Background(), Instruction{Text: "something else"}, chartconfig.Tree{})
	require.NoError(t, err)

	assert.True(t, first.Fallback)
	assert.Equal(t, chartconfig.Fallback(), first.Tree)
	assert.Equal(t, first.Tree, second.Tree)
	assert.Equal(t, 2, logs.Len())
}

func TestTranslate_NoJSONIsFatal(t *testing.T) {
	tr := New(llmclient.NewFakeClient("Sorry, I can't do that."), nil, Options{})

	_, err := tr.Translate(context.Background(), Instruction{Text: "x"}, nil)

	var eerr *ExtractionError
	require.True(t, errors.As(err, &eerr))
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestTranslate_TransportErrorPassesThrough(t *testing.T) {
	terr := &llmclient.TransportError{Provider: "deepseek", StatusCode: 503, Err: errors.New("unavailable")}
	fake := llmclient.NewFailingFakeClient(terr)
	tr := New(fake, nil, Options{})

	_, err := tr.Translate(context.Background(), Instruction{Text: "x"}, nil)

	var got *llmclient.TransportError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 503, got.StatusCode)
	assert.Len(t, fake.Requests(), 1)
}

func TestTranslate_HistoryIsBounded(t *testing.T) {
	fake := llmclient.NewFakeClient(`{}`)
	tr := New(fake, nil, Options{HistoryTurns: 2})
	history := []Turn{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "   "},
		{Role: "user", Content: "third"},
	}

	_, err := tr.Translate(context.Background(), Instruction{Text: "fourth", History: history}, nil)
	require.NoError(t, err)

	user := fake.Requests()[0].User
	assert.NotContains(t, user, "first")
	assert.Contains(t, user, "assistant: second")
	assert.Contains(t, user, "user: third")
	assert.True(t, strings.HasSuffix(user, `User request: "fourth"`))
}

func TestBuildSystemPrompt_EmptyCurrentConfig(t *testing.T) {
	prompt, err := BuildSystemPrompt(nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "[CURRENT CONFIG]\n{}\n")
	assert.Contains(t, prompt, "[LEXICON]")
	assert.Contains(t, prompt, "- chartType (")
	assert.Contains(t, prompt, "No trailing commas")
	assert.Contains(t, prompt, "[ASSUMPTIONS]\n- Fields the request does not mention keep their current values.")
	assert.Contains(t, prompt, "[EXAMPLES]\nExample 1:\nINPUT:\n")
	assert.Contains(t, prompt, `{"grid": "none"}`)
}

func TestLexicon_Parses(t *testing.T) {
	entries, err := Lexicon()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "rounded bars", entries[0].Instruction)

	_, err = parseLexicon([]byte("- instruction: \"\"\n  patch: {}\n"))
	assert.Error(t, err)
}
