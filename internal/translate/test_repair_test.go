package translate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithRepair_ValidJSONNeedsNoRepair(t *testing.T) {
	tree, repairs, err := ParseWithRepair(`{"grid":"none"}`)
	require.NoError(t, err)
	assert.Empty(t, repairs)
	assert.Equal(t, "none", tree["grid"])
}

func TestParseWithRepair_TrailingComma(t *testing.T) {
	tree, repairs, err := ParseWithRepair(`{"palette":["#fff","#000",],}`)
	require.NoError(t, err)
	assert.Equal(t, []string{RepairTrailingCommas}, repairs)
	assert.Equal(t, []any{"#fff", "#000"}, tree["palette"])
}

func TestParseWithRepair_Cumulative(t *testing.T) {
	tree, repairs, err := ParseWithRepair(`{chartType: 'bar', yKey: "Revenue",}`)
	require.NoError(t, err)
	assert.Equal(t, []string{RepairTrailingCommas, RepairBareKeys, RepairSingleQuotes}, repairs)
	assert.Equal(t, "bar", tree["chartType"])
	assert.Equal(t, "Revenue", tree["yKey"])
}

func TestParseWithRepair_NestedBareKeys(t *testing.T) {
	tree, _, err := ParseWithRepair(`{title: {text: "Sales, by week", fontSize: 18}}`)
	require.NoError(t, err)
	title, ok := tree["title"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Sales, by week", title["text"])
	assert.Equal(t, 18.0, title["fontSize"])
}

func TestParseWithRepair_Unrecoverable(t *testing.T) {
	_, repairs, err := ParseWithRepair(`{"a": [1, 2}`)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Len(t, repairs, 3)
	assert.Equal(t, repairs, perr.Repairs)
}

func TestRepairSteps_LeaveStringsAlone(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"comma in string", stripTrailingCommas, `{"t":"a,}"}`, `{"t":"a,}"}`},
		{"comma before brace", stripTrailingCommas, "{\"a\":1 ,\n}", "{\"a\":1 \n}"},
		{"key-like text in string", quoteBareKeys, `{"t":"x, y: z"}`, `{"t":"x, y: z"}`},
		{"bare value not key", quoteBareKeys, `{"a":[b, c]}`, `{"a":[b, c]}`},
		{"single inside double", singleToDoubleQuotes, `{"t":"it's"}`, `{"t":"it's"}`},
		{"double inside single", singleToDoubleQuotes, `{'t':'say "hi"'}`, `{"t":"say \"hi\""}`},
		{"escaped single quote", singleToDoubleQuotes, `{'t':'it\'s'}`, `{"t":"it's"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fn(tc.in))
		})
	}
}

func TestExtract(t *testing.T) {
	span, err := Extract("Sure! ```json\n{\"grid\":\"solid\"}\n``` enjoy")
	require.NoError(t, err)
	assert.Equal(t, `{"grid":"solid"}`, span)

	_, err = Extract("I cannot help with that.")
	var eerr *ExtractionError
	require.True(t, errors.As(err, &eerr))
	assert.ErrorIs(t, err, ErrNoJSON)
	assert.Equal(t, "I cannot help with that.", eerr.Response)

	_, err = Extract("} backwards {")
	assert.ErrorIs(t, err, ErrNoJSON)
}
