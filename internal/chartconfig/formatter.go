package chartconfig

import (
	"bytes"
	"encoding/json"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Axis label formatting strategies.
const (
	StrategyTruncate    = "truncate"
	StrategyKeepSuffix  = "keep-suffix"
	StrategyStripSuffix = "strip-suffix"
	StrategyHideIndex   = "hide-index"
)

var FormatterStrategies = []string{StrategyTruncate, StrategyKeepSuffix, StrategyStripSuffix, StrategyHideIndex}

const (
	defaultTruncateLength   = 3
	defaultKeepSuffixLength = 2
)

// Formatter selects a named label transformation. In JSON it is either the
// strategy name alone or an object carrying the strategy and its parameter.
type Formatter struct {
	Strategy string `json:"strategy" validate:"required,oneof=truncate keep-suffix strip-suffix hide-index"`
	Length   *int   `json:"length,omitempty"`
	Suffix   string `json:"suffix,omitempty"`
	Index    *int   `json:"index,omitempty"`
}

type formatterObject Formatter

func (f Formatter) MarshalJSON() ([]byte, error) {
	if f.Length == nil && f.Index == nil && f.Suffix == "" {
		return json.Marshal(f.Strategy)
	}
	return json.Marshal(formatterObject(f))
}

func (f *Formatter) UnmarshalJSON(data []byte) error {
	*f = Formatter{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &json.UnmarshalTypeError{Value: "empty", Type: reflect.TypeOf(f)}
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &f.Strategy)
	case '{':
		var obj formatterObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		*f = Formatter(obj)
		return nil
	}
	return &json.UnmarshalTypeError{Value: jsonKind(trimmed), Type: reflect.TypeOf(f)}
}

// Apply formats the label at position index. A nil formatter returns the label
// unchanged.
func (f *Formatter) Apply(label string, index int) string {
	if f == nil {
		return label
	}
	switch f.Strategy {
	case StrategyTruncate:
		n := intOr(f.Length, defaultTruncateLength)
		if utf8.RuneCountInString(label) <= n {
			return label
		}
		return string([]rune(label)[:n])
	case StrategyKeepSuffix:
		n := intOr(f.Length, defaultKeepSuffixLength)
		r := []rune(label)
		if len(r) <= n {
			return label
		}
		return string(r[len(r)-n:])
	case StrategyStripSuffix:
		if f.Suffix == "" {
			return label
		}
		return strings.TrimSuffix(label, f.Suffix)
	case StrategyHideIndex:
		if index == intOr(f.Index, 0) {
			return ""
		}
		return label
	}
	return label
}

func intOr(p *int, def int) int {
	if p == nil || *p < 0 {
		return def
	}
	return *p
}

var (
	legacyKeepSuffix = regexp.MustCompile(`\.(?:slice|substr)\(\s*-(\d+)\s*\)`)
	legacyTruncate   = regexp.MustCompile(`\.(?:substring|substr|slice)\(\s*0\s*,\s*(\d+)\s*\)`)
	legacyHideIndex  = regexp.MustCompile(`dataIndex\s*===?\s*(\d+)`)
	legacyReplace    = regexp.MustCompile(`\.replace\(\s*['"]([^'"]+)['"]\s*,\s*['"]{2}\s*\)`)
)

// ParseLegacyFormatter recognises the label snippets older configurations
// stored as code and returns the equivalent strategy object. The snippet is only
// pattern-matched, never evaluated.
func ParseLegacyFormatter(code string) (Tree, bool) {
	if code == "" {
		return nil, false
	}
	if m := legacyHideIndex.FindStringSubmatch(code); m != nil {
		return strategyTree(StrategyHideIndex, "index", m[1]), true
	}
	if m := legacyKeepSuffix.FindStringSubmatch(code); m != nil {
		return strategyTree(StrategyKeepSuffix, "length", m[1]), true
	}
	if m := legacyTruncate.FindStringSubmatch(code); m != nil {
		return strategyTree(StrategyTruncate, "length", m[1]), true
	}
	if m := legacyReplace.FindStringSubmatch(code); m != nil {
		return Tree{"strategy": StrategyStripSuffix, "suffix": m[1]}, true
	}
	return nil, false
}

func strategyTree(strategy, param, digits string) Tree {
	n, _ := strconv.Atoi(digits)
	return Tree{"strategy": strategy, param: float64(n)}
}
