package chartconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestFormatter_Apply(t *testing.T) {
	cases := []struct {
		name  string
		f     *Formatter
		label string
		index int
		want  string
	}{
		{"nil", nil, "2024", 0, "2024"},
		{"keep suffix default", &Formatter{Strategy: StrategyKeepSuffix}, "2024", 3, "24"},
		{"keep suffix short label", &Formatter{Strategy: StrategyKeepSuffix, Length: intPtr(4)}, "24", 0, "24"},
		{"truncate default", &Formatter{Strategy: StrategyTruncate}, "January", 0, "Jan"},
		{"truncate runes", &Formatter{Strategy: StrategyTruncate, Length: intPtr(2)}, "日本語", 0, "日本"},
		{"strip suffix", &Formatter{Strategy: StrategyStripSuffix, Suffix: " 2024"}, "Jan 2024", 0, "Jan"},
		{"hide first", &Formatter{Strategy: StrategyHideIndex}, "Mon", 0, ""},
		{"hide first other index", &Formatter{Strategy: StrategyHideIndex}, "Tue", 1, "Tue"},
		{"hide third", &Formatter{Strategy: StrategyHideIndex, Index: intPtr(2)}, "Wed", 2, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.f.Apply(tc.label, tc.index))
		})
	}
}

func TestFormatter_JSONShorthand(t *testing.T) {
	var f Formatter
	require.NoError(t, json.Unmarshal([]byte(`"truncate"`), &f))
	assert.Equal(t, Formatter{Strategy: StrategyTruncate}, f)

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `"truncate"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"strategy":"hide-index","index":0}`), &f))
	out, err = json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"strategy":"hide-index","index":0}`, string(out))
}

func TestParseLegacyFormatter(t *testing.T) {
	cases := map[string]Tree{
		"return value.toString().slice(-2);":             {"strategy": StrategyKeepSuffix, "length": 2.0},
		"return value.toString().substring(0, 3);":       {"strategy": StrategyTruncate, "length": 3.0},
		"return params.dataIndex === 0 ? '' : value;":    {"strategy": StrategyHideIndex, "index": 0.0},
		"return value.replace(' Inc', '');":              {"strategy": StrategyStripSuffix, "suffix": " Inc"},
	}
	for code, want := range cases {
		got, ok := ParseLegacyFormatter(code)
		require.True(t, ok, code)
		assert.Equal(t, want, got, code)
	}

	_, ok := ParseLegacyFormatter("return fetch('/steal')")
	assert.False(t, ok)
}
