package llmtool

// PromptPreset holds reusable constraints and rules for structured prompts.
type PromptPreset struct {
	Constraints []string
	Rules       []string
}

// ApplyPresets prepends preset constraints/rules to a structured prompt spec.
func ApplyPresets(spec StructuredPromptSpec, presets ...PromptPreset) StructuredPromptSpec {
	if len(presets) == 0 {
		return spec
	}
	var merged PromptPreset
	for _, p := range presets {
		merged.Constraints = append(merged.Constraints, p.Constraints...)
		merged.Rules = append(merged.Rules, p.Rules...)
	}
	spec.Constraints = append(merged.Constraints, spec.Constraints...)
	spec.Rules = append(merged.Rules, spec.Rules...)
	return spec
}

// PresetStrictJSON enforces JSON syntax the parser accepts without repair.
func PresetStrictJSON() PromptPreset {
	return PromptPreset{
		Constraints: []string{
			"Return ONLY valid JSON, no prose and no markdown fences.",
			"Use double quotes for all strings and property names.",
			"No trailing commas and no comments.",
			"Use JSON syntax, not JavaScript object syntax.",
		},
	}
}

// PresetPartialUpdate asks for only the changed fields when a configuration exists.
func PresetPartialUpdate() PromptPreset {
	return PromptPreset{
		Rules: []string{
			"When the current configuration is empty, return a COMPLETE configuration.",
			"When the current configuration is not empty, return only the fields you want to change; the system merges them.",
		},
	}
}
