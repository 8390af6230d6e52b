package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"vibechart/internal/chartconfig"
	llmclient "vibechart/internal/llm/client"
	"vibechart/internal/translate"
)

func TestMain(m *testing.M) {
	// genai pulls in opencensus, whose stats worker starts in an init func.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func newOrchestrator(responses ...string) (*Orchestrator, *llmclient.FakeClient) {
	fake := llmclient.NewFakeClient(responses...)
	return New(translate.New(fake, zap.NewNop(), translate.Options{}), zap.NewNop()), fake
}

func TestRun_RoundedBars(t *testing.T) {
	o, _ := newOrchestrator(`{"barStyle": {"borderRadius": 10}}`)

	res, err := o.Run(context.Background(), Request{Instruction: "rounded bars", Current: chartconfig.Tree{"chartType": "bar"}})
	require.NoError(t, err)

	assert.Equal(t, chartconfig.ChartBar, res.Config.ChartType)
	require.NotNil(t, res.Config.BarStyle)
	require.NotNil(t, res.Config.BarStyle.BorderRadius)
	assert.Equal(t, 10.0, *res.Config.BarStyle.BorderRadius)
	assert.Equal(t, []string{StageTranslate, StageMerge, StageBeautify, StageValidate}, res.Stages)
	assert.False(t, res.Fallback)
	assert.False(t, res.Repaired)
}

func TestRun_LightModeKeepsBackground(t *testing.T) {
	o, _ := newOrchestrator(`{"backgroundColor": "#fdf6e3"}`, `{"themePreset": "light"}`)
	ctx := context.Background()

	first, err := o.Run(ctx, Request{Instruction: "cream background"})
	require.NoError(t, err)
	second, err := o.Run(ctx, Request{Instruction: "light mode", Current: first.Tree})
	require.NoError(t, err)

	assert.Equal(t, "light", second.Config.ThemePreset)
	assert.Equal(t, "#fdf6e3", second.Config.BackgroundColor)
}

func TestRun_LightModeLeavesBackgroundUnset(t *testing.T) {
	o, _ := newOrchestrator(`{"themePreset": "light"}`)

	res, err := o.Run(context.Background(), Request{Instruction: "light mode"})
	require.NoError(t, err)

	assert.Equal(t, "light", res.Config.ThemePreset)
	assert.Empty(t, res.Config.BackgroundColor)
	_, ok := res.Tree["backgroundColor"]
	assert.False(t, ok)
}

func TestRun_NewChartHasTitleAndLegend(t *testing.T) {
	for _, completion := range []string{`{}`, `{"chartType":"line","title":{"color":"#fff"}}`, `{"legend":{"position":"top"}}`} {
		o, _ := newOrchestrator(completion)

		res, err := o.Run(context.Background(), Request{Instruction: "make a chart", Current: chartconfig.Tree{}})
		require.NoError(t, err, completion)

		require.NotNil(t, res.Config.Title, completion)
		assert.NotEmpty(t, res.Config.Title.Text, completion)
		require.NotNil(t, res.Config.Legend, completion)
		require.NotNil(t, res.Config.Legend.Show, completion)
		assert.True(t, *res.Config.Legend.Show, completion)
	}
}

func TestRun_FallbackOnUnparseableJSON(t *testing.T) {
	o, _ := newOrchestrator(`{"chartType": [}`)

	res, err := o.Run(context.Background(), Request{Instruction: "??"})
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	assert.Equal(t, chartconfig.ChartBar, res.Config.ChartType)
	assert.Equal(t, chartconfig.DefaultXKey, res.Config.XKey)
	assert.Equal(t, chartconfig.DefaultYKey, res.Config.YKey)
}

func TestRun_FixedDefaultsRepair(t *testing.T) {
	o, _ := newOrchestrator(`{"axisStyle": 5, "axisLabels": {"xLabels": {"formatter": "function(v){return v.slice(0,3)}"}}}`)

	res, err := o.Run(context.Background(), Request{Instruction: "short labels"})
	require.NoError(t, err)

	assert.True(t, res.Repaired)
	assert.Equal(t, []string{StageTranslate, StageMerge, StageBeautify, StageValidate, StageRepair, StageRevalidate}, res.Stages)
	assert.Equal(t, chartconfig.DefaultAxisStyle, res.Config.AxisStyle.Preset)
	require.NotNil(t, res.Config.AxisLabels.XLabels.Formatter)
	assert.Equal(t, chartconfig.StrategyTruncate, res.Config.AxisLabels.XLabels.Formatter.Strategy)
}

func TestRun_ConfigurationErrorIsFatal(t *testing.T) {
	o, _ := newOrchestrator(`{"chartType": "radar"}`)

	_, err := o.Run(context.Background(), Request{Instruction: "radar chart"})

	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	var verr *chartconfig.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "chartType", verr.Path)
	assert.NotNil(t, cerr.Initial)
}

func TestRun_RequestShape(t *testing.T) {
	o, fake := newOrchestrator()

	_, err := o.Run(context.Background(), Request{Instruction: "   "})

	var rerr *RequestShapeError
	require.True(t, errors.As(err, &rerr))
	assert.Empty(t, fake.Requests())
}

func TestRun_MissingCredentials(t *testing.T) {
	_, err := New(nil, nil).Run(context.Background(), Request{Instruction: "x"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRun_TransportErrorIsFatal(t *testing.T) {
	terr := &llmclient.TransportError{Provider: "deepseek", Err: errors.New("connection refused")}
	o := New(translate.New(llmclient.NewFailingFakeClient(terr), nil, translate.Options{}), nil)
	current := chartconfig.Tree{"chartType": "line"}

	res, err := o.Run(context.Background(), Request{Instruction: "x", Current: current})

	assert.Nil(t, res)
	var got *llmclient.TransportError
	assert.True(t, errors.As(err, &got))
	assert.Equal(t, chartconfig.Tree{"chartType": "line"}, current)
}

func TestRun_DoesNotMutateCurrent(t *testing.T) {
	o, _ := newOrchestrator(`{"barStyle": {"gradient": true}}`)
	current := chartconfig.Tree{"chartType": "bar", "barStyle": map[string]any{"width": 40.0}}

	_, err := o.Run(context.Background(), Request{Instruction: "gradient bars", Current: current})
	require.NoError(t, err)

	assert.Equal(t, chartconfig.Tree{"chartType": "bar", "barStyle": map[string]any{"width": 40.0}}, current)
}
