package chartconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_PreservesBaseOnlyKeys(t *testing.T) {
	base := Tree{
		"chartType": "bar",
		"xKey":      "Month",
		"title":     Tree{"text": "Sales", "color": "#ffffff"},
	}
	patch := Tree{"title": Tree{"color": "#000000"}, "grid": "solid"}

	got := Merge(base, patch)

	assert.Equal(t, "bar", got["chartType"])
	assert.Equal(t, "Month", got["xKey"])
	assert.Equal(t, "solid", got["grid"])
	assert.Equal(t, Tree{"text": "Sales", "color": "#000000"}, got["title"])
}

func TestMerge_ArraysReplaceWholesale(t *testing.T) {
	base := Tree{"palette": []any{"#111111", "#222222", "#333333"}}
	patch := Tree{"palette": []any{"#abcdef"}}

	got := Merge(base, patch)

	assert.Equal(t, []any{"#abcdef"}, got["palette"])
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	base := Tree{"barStyle": Tree{"borderRadius": 4.0}, "palette": []any{"#111111"}}
	patch := Tree{"barStyle": Tree{"width": 60.0}}

	got := Merge(base, patch)
	got["barStyle"].(map[string]any)["shadow"] = true
	got["palette"].([]any)[0] = "#999999"

	assert.Equal(t, Tree{"borderRadius": 4.0}, base["barStyle"])
	assert.Equal(t, []any{"#111111"}, base["palette"])
	assert.Equal(t, Tree{"width": 60.0}, patch["barStyle"])
}

func TestMerge_ObjectOverScalar(t *testing.T) {
	base := Tree{"axisStyle": "classic"}
	patch := Tree{"axisStyle": Tree{"color": "#ffffff", "width": 2.0}}

	got := Merge(base, patch)

	assert.Equal(t, Tree{"color": "#ffffff", "width": 2.0}, got["axisStyle"])
}

func TestMerge_ScalarOverObjectAndNull(t *testing.T) {
	base := Tree{"animation": Tree{"easing": "linear", "duration": 300.0}, "title": Tree{"text": "x"}}
	patch := Tree{"animation": "none", "title": nil}

	got := Merge(base, patch)

	assert.Equal(t, "none", got["animation"])
	v, ok := got["title"]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestMerge_NilInputs(t *testing.T) {
	assert.Equal(t, Tree{}, Merge(nil, nil))
	assert.Equal(t, Tree{"xKey": "a"}, Merge(nil, Tree{"xKey": "a"}))
	assert.Equal(t, Tree{"xKey": "a"}, Merge(Tree{"xKey": "a"}, nil))
}

func TestMerge_KeepsKeysOutsidePatch(t *testing.T) {
	cases := []struct {
		base, patch Tree
	}{
		{Tree{"a": 1.0, "b": Tree{"c": 2.0}}, Tree{"b": Tree{"d": 3.0}}},
		{Tree{"a": []any{1.0}, "b": "x"}, Tree{"c": true}},
		{Tree{"a": Tree{"b": Tree{"c": "deep"}}}, Tree{"a": Tree{"b": Tree{"e": "new"}}}},
	}
	for _, tc := range cases {
		got := Merge(tc.base, tc.patch)
		for k, v := range tc.base {
			if _, inPatch := tc.patch[k]; inPatch {
				continue
			}
			assert.Equal(t, v, got[k], "key %s", k)
		}
	}
}
