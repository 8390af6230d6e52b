package translate

import (
	"fmt"
	"strings"

	"vibechart/internal/chartconfig"
	"vibechart/internal/llmtool"
)

const correctExample = `{
  "chartType": "line",
  "xKey": "Date",
  "yKey": "Revenue",
  "title": {
    "text": "Weekly Revenue Trends",
    "color": "#ffffff",
    "fontSize": 18
  }
}`

const incorrectExample = `{
  chartType: "line",
  xKey: "Date",
  'yKey': "Revenue",
  title: {
    text: "Weekly Revenue Trends",
    fontSize: 18,
  }
}`

var translatePromptSpec = llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
	Purpose:      "You are a data visualization expert. Turn the user's request into a chart configuration.",
	Background:   "Return either a COMPLETE configuration (new chart, empty current config) or a PARTIAL configuration holding only the changed fields (tweaks).",
	OutputFields: promptFields(),
	Rules: []string{
		"Choose the chart type that fits the data and select meaningful x and y keys.",
		"ALWAYS add a descriptive title that summarizes the chart content.",
		"Show the legend for categorical data, positioned at the bottom.",
		"Axis title spacing: xTitle nameGap 80-100, yTitle nameGap 60-80.",
		`Axis titles are fontSize 16-18 and white ("#ffffff") by default.`,
		`Set grid to "none" unless the user asks for grid lines.`,
		`For light themes use a warm cream background ("#fdf6e3") unless the user names a color.`,
		"Formatters are named strategies, never code.",
	},
	Assumptions: []string{
		"Fields the request does not mention keep their current values.",
		"Colors are hex strings.",
	},
	OutputFormat: "A single JSON object. Correct:\n" + correctExample + "\nNOT like this:\n" + incorrectExample,
	Examples: []llmtool.PromptExample{
		{
			InputJSON:  `{"current": {}, "request": "plot weekly revenue over time"}`,
			OutputJSON: correctExample,
		},
		{
			InputJSON:  `{"current": {"chartType": "bar", "xKey": "Month", "yKey": "Sales"}, "request": "switch to a smooth line"}`,
			OutputJSON: `{"chartType": "line", "lineStyle": {"smooth": true}}`,
		},
		{
			InputJSON:  `{"current": {"chartType": "line", "grid": "solid"}, "request": "hide the grid"}`,
			OutputJSON: `{"grid": "none"}`,
		},
	},
}, llmtool.PresetStrictJSON(), llmtool.PresetPartialUpdate())

// BuildSystemPrompt renders the translation system prompt around the current
// configuration. A nil or empty current configuration renders as {}.
func BuildSystemPrompt(current chartconfig.Tree) (string, error) {
	entries, err := Lexicon()
	if err != nil {
		return "", err
	}
	lexicon, err := renderLexicon(entries)
	if err != nil {
		return "", err
	}
	var cur any
	if len(current) > 0 {
		cur = current
	}
	currentJSON, err := llmtool.FormatJSON(cur)
	if err != nil {
		return "", fmt.Errorf("translate: render current config: %w", err)
	}

	spec := translatePromptSpec
	spec.Sections = []llmtool.PromptSection{
		{Title: "Lexicon", Body: lexicon},
		{Title: "Current config", Body: currentJSON},
	}
	return llmtool.RenderStructuredPrompt(spec)
}

// BuildUserMessage prefixes the instruction with prior turns as plain text.
func BuildUserMessage(instruction string, history []Turn) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, t := range history {
			fmt.Fprintf(&b, "%s: %s\n", t.Role, strings.TrimSpace(t.Content))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User request: %q", strings.TrimSpace(instruction))
	return b.String()
}

func promptFields() []llmtool.PromptField {
	docs := chartconfig.FieldDocs()
	fields := make([]llmtool.PromptField, 0, len(docs))
	for _, d := range docs {
		fields = append(fields, llmtool.PromptField{
			Name:        d.Name,
			Type:        d.Type,
			Required:    d.Required,
			Description: d.Description,
		})
	}
	return fields
}
