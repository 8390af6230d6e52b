package chartconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Style presets accepted by the string side of the tagged unions.
var (
	axisStylePresets    = []string{"minimal", "classic"}
	animationPresets    = []string{"none"}
	tooltipStylePresets = []string{"shadow"}
)

// AxisStyle is either a named preset ("minimal", "classic") or a custom style.
type AxisStyle struct {
	Preset string
	Custom *AxisStyleCustom
}

type AxisStyleCustom struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

func (a AxisStyle) MarshalJSON() ([]byte, error) {
	if a.Custom != nil {
		return json.Marshal(a.Custom)
	}
	return json.Marshal(a.Preset)
}

func (a *AxisStyle) UnmarshalJSON(data []byte) error {
	*a = AxisStyle{}
	return decodeUnion(data, &a.Preset, &a.Custom, reflect.TypeOf(a))
}

// Animation is either "none" or an easing/duration pair.
type Animation struct {
	Preset string
	Custom *AnimationCustom
}

type AnimationCustom struct {
	Easing   string  `json:"easing"`
	Duration float64 `json:"duration"`
}

// Disabled reports whether the animation is the "none" preset.
func (a *Animation) Disabled() bool {
	return a != nil && a.Custom == nil && a.Preset == "none"
}

func (a Animation) MarshalJSON() ([]byte, error) {
	if a.Custom != nil {
		return json.Marshal(a.Custom)
	}
	return json.Marshal(a.Preset)
}

func (a *Animation) UnmarshalJSON(data []byte) error {
	*a = Animation{}
	return decodeUnion(data, &a.Preset, &a.Custom, reflect.TypeOf(a))
}

// TooltipStyle is either "shadow" or a custom background/border pair.
type TooltipStyle struct {
	Preset string
	Custom *TooltipStyleCustom
}

type TooltipStyleCustom struct {
	Bg     string `json:"bg"`
	Border string `json:"border"`
}

func (t TooltipStyle) MarshalJSON() ([]byte, error) {
	if t.Custom != nil {
		return json.Marshal(t.Custom)
	}
	return json.Marshal(t.Preset)
}

func (t *TooltipStyle) UnmarshalJSON(data []byte) error {
	*t = TooltipStyle{}
	return decodeUnion(data, &t.Preset, &t.Custom, reflect.TypeOf(t))
}

// PieCenter holds a two-element center as either numbers or strings ("50%").
type PieCenter struct {
	Numbers []float64
	Strings []string
}

func (p PieCenter) IsZero() bool { return p.Numbers == nil && p.Strings == nil }

func (p PieCenter) MarshalJSON() ([]byte, error) {
	if p.Strings != nil {
		return json.Marshal(p.Strings)
	}
	if p.Numbers != nil {
		return json.Marshal(p.Numbers)
	}
	return []byte("null"), nil
}

func (p *PieCenter) UnmarshalJSON(data []byte) error {
	*p = PieCenter{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, &p.Numbers); err == nil {
		return nil
	}
	p.Numbers = nil
	if err := json.Unmarshal(data, &p.Strings); err == nil {
		return nil
	}
	p.Strings = nil
	return &json.UnmarshalTypeError{Value: "mixed array", Type: reflect.TypeOf(p)}
}

// decodeUnion fills either the preset string or the custom object depending on
// the JSON kind of data.
func decodeUnion[T any](data []byte, preset *string, custom **T, typ reflect.Type) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &json.UnmarshalTypeError{Value: "empty", Type: typ}
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, preset)
	case '{':
		var v T
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*custom = &v
		return nil
	default:
		return &json.UnmarshalTypeError{Value: jsonKind(trimmed), Type: typ}
	}
}

func jsonKind(raw []byte) string {
	switch raw[0] {
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

type unionField struct {
	name string
	kind string
}

// unionRule describes one tagged-union location in the tree.
type unionRule struct {
	path    []string
	presets []string
	fields  []unionField
}

var unionRules = []unionRule{
	{path: []string{"axisStyle"}, presets: axisStylePresets, fields: []unionField{{"color", "string"}, {"width", "number"}}},
	{path: []string{"animation"}, presets: animationPresets, fields: []unionField{{"easing", "string"}, {"duration", "number"}}},
	{path: []string{"tooltipStyle"}, presets: tooltipStylePresets, fields: []unionField{{"bg", "string"}, {"border", "string"}}},
	{path: []string{"axisLabels", "xLabels", "formatter"}, presets: FormatterStrategies, fields: []unionField{{"strategy", "string"}}},
	{path: []string{"axisLabels", "yLabels", "formatter"}, presets: FormatterStrategies, fields: []unionField{{"strategy", "string"}}},
}

func checkUnions(t Tree) error {
	for _, rule := range unionRules {
		v, ok := lookup(t, rule.path...)
		if !ok || v == nil {
			continue
		}
		if err := checkUnion(strings.Join(rule.path, "."), v, rule.presets, rule.fields); err != nil {
			return err
		}
	}
	return nil
}

// checkUnion validates the raw tree value found at one tagged-union path.
func checkUnion(path string, v any, presets []string, fields []unionField) error {
	switch x := v.(type) {
	case string:
		if slices.Contains(presets, x) {
			return nil
		}
		return &ValidationError{Path: path, Reason: fmt.Sprintf("must be one of %q or an object", presets)}
	case map[string]any:
		for _, f := range fields {
			got, ok := x[f.name]
			if !ok || got == nil {
				return &ValidationError{Path: path + "." + f.name, Reason: "is required"}
			}
			if !isKind(got, f.kind) {
				return &ValidationError{Path: path + "." + f.name, Reason: "must be a " + f.kind}
			}
		}
		return nil
	default:
		return &ValidationError{Path: path, Reason: fmt.Sprintf("must be one of %q or an object", presets)}
	}
}

func isKind(v any, kind string) bool {
	switch kind {
	case "string":
		_, ok := v.(string)
		return ok
	case "number":
		_, ok := toFloat(v)
		return ok
	}
	return false
}
