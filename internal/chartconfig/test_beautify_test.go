package chartconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeautify_FillsEmptyConfig(t *testing.T) {
	got := Beautify(Tree{})

	assert.Equal(t, "bar", got["chartType"])
	assert.Equal(t, "Date", got["xKey"])
	assert.Equal(t, "Revenue", got["yKey"])
	assert.Equal(t, AccentPalette(), got["palette"])
	assert.Equal(t, "classic", got["axisStyle"])
	assert.Equal(t, "shadow", got["tooltipStyle"])
	assert.Equal(t, "none", got["grid"])
	assert.Equal(t, "shadcn-dark", got["themePreset"])
	assert.Equal(t, Tree{"borderRadius": 6.0}, got["barStyle"])
	assert.Equal(t, Tree{"aspectRatio": 1.8}, got["chartSize"])
	assert.Equal(t, defaultTitle(), got["title"])
	assert.Equal(t, Tree{"show": true, "position": "bottom", "textColor": "#ffffff"}, got["legend"])
	assert.Equal(t, Tree{"xTitle": defaultXTitle(), "yTitle": defaultYTitle()}, got["axisTitles"])
}

func TestBeautify_ReplacesWhitePalette(t *testing.T) {
	for _, palette := range []any{[]any{"#ffffff"}, []any{"#FFFFFF", "#000000"}, []any{}, []string{"#fff"}} {
		got := Beautify(Tree{"palette": palette})
		assert.Equal(t, AccentPalette(), got["palette"], "palette %v", palette)
	}
	kept := Beautify(Tree{"palette": []any{"#000000", "#ffffff"}})
	assert.Equal(t, []any{"#000000", "#ffffff"}, kept["palette"])
}

func TestBeautify_BarRadius(t *testing.T) {
	squared := Beautify(Tree{"chartType": "bar", "barStyle": Tree{"borderRadius": 0.0}})
	assert.Equal(t, 0.0, squared["barStyle"].(map[string]any)["borderRadius"])

	line := Beautify(Tree{"chartType": "line"})
	_, hasBar := line["barStyle"]
	assert.False(t, hasBar)
}

func TestBeautify_LineSmoothing(t *testing.T) {
	got := Beautify(Tree{"chartType": "line"})
	assert.Equal(t, Tree{"smooth": true}, got["lineStyle"])

	still := Beautify(Tree{"chartType": "line", "animation": "none"})
	_, hasLine := still["lineStyle"]
	assert.False(t, hasLine)

	explicit := Beautify(Tree{"chartType": "line", "lineStyle": Tree{"smooth": false}})
	assert.Equal(t, false, explicit["lineStyle"].(map[string]any)["smooth"])
}

func TestBeautify_DarkThemeAlias(t *testing.T) {
	got := Beautify(Tree{"themePreset": "dark"})
	assert.Equal(t, "shadcn-dark", got["themePreset"])

	light := Beautify(Tree{"themePreset": "light", "backgroundColor": "#fdf6e3"})
	assert.Equal(t, "light", light["themePreset"])
	assert.Equal(t, "#fdf6e3", light["backgroundColor"])
}

func TestBeautify_AspectRatio(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{5.0, MaxAspectRatio},
		{0.1, MinAspectRatio},
		{2.2, 2.2},
	}
	for _, tc := range cases {
		got := Beautify(Tree{"chartSize": Tree{"aspectRatio": tc.in}})
		assert.Equal(t, tc.want, got["chartSize"].(map[string]any)["aspectRatio"])
	}

	partial := Beautify(Tree{"chartSize": Tree{"maxWidth": 800.0}})
	assert.Equal(t, Tree{"maxWidth": 800.0, "aspectRatio": 1.8}, partial["chartSize"])
}

func TestBeautify_PartialTitleAndLegend(t *testing.T) {
	got := Beautify(Tree{
		"title":  Tree{"text": "Quarterly", "position": "top"},
		"legend": Tree{"show": false},
	})

	assert.Equal(t, Tree{"text": "Quarterly", "position": "top"}, got["title"])
	assert.Equal(t, Tree{"show": false, "position": "bottom", "textColor": "#ffffff"}, got["legend"])

	untitled := Beautify(Tree{"title": Tree{"show": false}})
	title := untitled["title"].(map[string]any)
	assert.Equal(t, "Data Visualization", title["text"])
	assert.Equal(t, "bottom", title["position"])
	assert.Equal(t, false, title["show"])
}

func TestBeautify_AxisTitlesFilledFieldByField(t *testing.T) {
	got := Beautify(Tree{"axisTitles": Tree{"xTitle": Tree{"text": "Time Period", "fontSize": 18.0}}})

	titles := got["axisTitles"].(map[string]any)
	assert.Equal(t, Tree{"text": "Time Period", "fontSize": 18.0, "nameGap": 80.0, "color": "#ffffff"}, titles["xTitle"])
	assert.Equal(t, defaultYTitle(), titles["yTitle"])
}

func TestBeautify_FillsPartialFont(t *testing.T) {
	got := Beautify(Tree{"font": Tree{"size": 14.0}})
	assert.Equal(t, Tree{"family": defaultFontFamily, "size": 14.0, "weight": 500.0}, got["font"])
}

func TestBeautify_Idempotent(t *testing.T) {
	inputs := []Tree{
		{},
		{"chartType": "line", "palette": []any{"#ffffff"}},
		{"chartType": "pie", "themePreset": "dark", "chartSize": Tree{"aspectRatio": 9.0}},
		{"chartType": "bar", "title": Tree{"color": "#ff0000"}, "axisTitles": Tree{"yTitle": Tree{}}},
		{"legend": Tree{"position": "left"}, "animation": "none", "grid": "dashed"},
	}
	for _, in := range inputs {
		once := Beautify(in)
		twice := Beautify(once)
		assert.Equal(t, once, twice)
	}
}

func TestBeautify_DoesNotOverwriteExplicitValues(t *testing.T) {
	in := Tree{
		"chartType":    "scatter",
		"xKey":         "Week",
		"yKey":         "Units",
		"palette":      []any{"#123456"},
		"axisStyle":    Tree{"color": "#999999", "width": 2.0},
		"animation":    "none",
		"font":         Tree{"family": "Mono", "size": 10.0, "weight": 300.0},
		"tooltipStyle": Tree{"bg": "#000000", "border": "#333333"},
		"grid":         "dashed",
		"themePreset":  "vintage",
		"chartSize":    Tree{"aspectRatio": 1.2},
		"title":        Tree{"text": "Units", "position": "left"},
		"legend":       Tree{"show": false, "position": "right", "textColor": "#000000"},
	}

	got := Beautify(in)

	for k, v := range in {
		assert.Equal(t, v, got[k], "field %s", k)
	}
}

func TestBeautify_DoesNotModifyInput(t *testing.T) {
	in := Tree{"title": Tree{"text": "x"}}
	_ = Beautify(in)
	require.Equal(t, Tree{"title": Tree{"text": "x"}}, in)
}

func TestBeautify_EmptyConfigGetsTitleAndLegend(t *testing.T) {
	got := Beautify(Merge(Tree{}, Tree{"chartType": "line"}))

	title := got["title"].(map[string]any)
	assert.NotEmpty(t, title["text"])
	assert.Equal(t, true, got["legend"].(map[string]any)["show"])
}
