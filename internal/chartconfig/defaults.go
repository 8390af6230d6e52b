package chartconfig

import (
	"slices"
	"strings"
)

const (
	DefaultChartType   = ChartBar
	DefaultXKey        = "Date"
	DefaultYKey        = "Revenue"
	DefaultAxisStyle   = "classic"
	DefaultTooltip     = "shadow"
	DefaultGrid        = "none"
	DefaultTheme       = "shadcn-dark"
	DefaultBarRadius   = 6.0
	DefaultAspectRatio = 1.8
	MinAspectRatio     = 0.3
	MaxAspectRatio     = 3.0

	defaultFontFamily = "system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif"
	repairFontFamily  = "Inter"
	legacyDarkTheme   = "dark"
)

var (
	gridValues  = []string{"none", "solid", "dashed"}
	themeValues = []string{"light", "dark", "vintage", "macarons", "custom", "shadcn-dark"}
)

// AccentPalette returns the fixed five-color palette used when none is usable.
func AccentPalette() []any {
	return []any{"#7dd3fc", "#60a5fa", "#818cf8", "#c084fc", "#f472b6"}
}

func defaultAnimation() Tree {
	return Tree{"easing": "cubicOut", "duration": 1000.0}
}

func defaultFont(family string) Tree {
	return Tree{"family": family, "size": 12.0, "weight": 500.0}
}

func defaultTitle() Tree {
	return Tree{
		"text":            "Data Visualization",
		"color":           "#ffffff",
		"fontSize":        16.0,
		"position":        "bottom",
		"backgroundColor": "#2a2a2a",
		"padding":         "8px 12px",
		"borderRadius":    "6px",
	}
}

func defaultLegend() Tree {
	return Tree{"show": true, "position": "bottom", "textColor": "#ffffff"}
}

func defaultXTitle() Tree { return Tree{"nameGap": 80.0, "fontSize": 16.0, "color": "#ffffff"} }
func defaultYTitle() Tree { return Tree{"nameGap": 60.0, "fontSize": 16.0, "color": "#ffffff"} }

// Fallback returns the minimal configuration used when a model response cannot
// be parsed. Every call returns an equal, independent tree.
func Fallback() Tree {
	return Tree{
		"chartType":    DefaultChartType,
		"xKey":         DefaultXKey,
		"yKey":         DefaultYKey,
		"palette":      AccentPalette(),
		"axisStyle":    DefaultAxisStyle,
		"animation":    defaultAnimation(),
		"font":         defaultFont(repairFontFamily),
		"tooltipStyle": DefaultTooltip,
		"grid":         DefaultGrid,
		"themePreset":  DefaultTheme,
		"axisTitles": Tree{
			"xTitle": defaultXTitle(),
			"yTitle": defaultYTitle(),
		},
	}
}

// ApplyFixedDefaults force-fills the style fields a model most often gets wrong.
// Each of axisStyle, animation, font, tooltipStyle, grid and themePreset is
// replaced with its hardcoded default when missing or malformed. Label formatters
// written as code are translated into a named strategy or removed.
func ApplyFixedDefaults(t Tree) Tree {
	out := Clone(t)
	for _, rule := range unionRules[:3] {
		key := rule.path[0]
		if absent(out, key) || checkUnion(key, out[key], rule.presets, rule.fields) != nil {
			out[key] = fixedDefault(key)
		}
	}
	if absent(out, "font") || !validFont(out["font"]) {
		out["font"] = defaultFont(repairFontFamily)
	}
	if s, _ := out["grid"].(string); !slices.Contains(gridValues, s) {
		out["grid"] = DefaultGrid
	}
	if s, _ := out["themePreset"].(string); !slices.Contains(themeValues, s) {
		out["themePreset"] = DefaultTheme
	}
	repairFormatters(out)
	return out
}

func fixedDefault(key string) any {
	switch key {
	case "axisStyle":
		return DefaultAxisStyle
	case "animation":
		return defaultAnimation()
	case "tooltipStyle":
		return DefaultTooltip
	}
	return nil
}

func validFont(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	if family, ok := m["family"].(string); !ok || family == "" {
		return false
	}
	if _, ok := toFloat(m["size"]); !ok {
		return false
	}
	_, ok = toFloat(m["weight"])
	return ok
}

func repairFormatters(t Tree) {
	labels, ok := t["axisLabels"].(map[string]any)
	if !ok {
		return
	}
	for _, axis := range []string{"xLabels", "yLabels"} {
		l, ok := labels[axis].(map[string]any)
		if !ok {
			continue
		}
		v, ok := l["formatter"]
		if !ok {
			continue
		}
		path := "axisLabels." + axis + ".formatter"
		if v != nil && checkUnion(path, v, FormatterStrategies, unionRules[3].fields) == nil && validStrategy(v) {
			continue
		}
		code, _ := v.(string)
		if f, ok := ParseLegacyFormatter(code); ok {
			l["formatter"] = f
			continue
		}
		delete(l, "formatter")
	}
}

func validStrategy(v any) bool {
	switch x := v.(type) {
	case string:
		return slices.Contains(FormatterStrategies, x)
	case map[string]any:
		s, _ := x["strategy"].(string)
		return slices.Contains(FormatterStrategies, s)
	}
	return false
}

func isWhite(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "#fff", "#ffffff", "white":
		return true
	}
	return false
}
