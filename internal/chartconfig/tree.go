package chartconfig

import (
	"encoding/json"
	"math"
)

// Clone returns a deep copy of t. Nested maps and slices are copied; scalars are
// shared. A nil tree clones to an empty one.
func Clone(t Tree) Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return Clone(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = cloneValue(x[i])
		}
		return out
	case []string:
		return append([]string(nil), x...)
	case []float64:
		return append([]float64(nil), x...)
	default:
		return v
	}
}

// FromJSON decodes a JSON object into a tree.
func FromJSON(data []byte) (Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if t == nil {
		t = Tree{}
	}
	return t, nil
}

// ToTree converts a validated configuration back into its tree form.
func ToTree(cfg *Config) (Tree, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return FromJSON(raw)
}

func lookup(t Tree, path ...string) (any, bool) {
	var cur any = t
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// absent treats missing keys, null and the empty string alike.
func absent(t Tree, key string) bool {
	v, ok := t[key]
	if !ok || v == nil {
		return true
	}
	s, isString := v.(string)
	return isString && s == ""
}

// child returns t[key] as a map, creating it when the key is absent. It returns
// nil when the key holds a non-object value that must be left alone.
func child(t Tree, key string) Tree {
	if absent(t, key) {
		m := Tree{}
		t[key] = m
		return m
	}
	m, _ := t[key].(map[string]any)
	return m
}

func fill(t Tree, key string, v any) {
	if absent(t, key) {
		t[key] = cloneValue(v)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func stringAt(t Tree, path ...string) string {
	v, _ := lookup(t, path...)
	s, _ := v.(string)
	return s
}
