package translate

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"vibechart/internal/util/jsonutil"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// LexiconEntry pairs a typical request with the patch it should produce.
type LexiconEntry struct {
	Instruction string         `yaml:"instruction"`
	Patch       map[string]any `yaml:"patch"`
}

var (
	lexiconOnce    sync.Once
	lexiconEntries []LexiconEntry
	lexiconErr     error
)

// Lexicon returns the embedded instruction lexicon.
func Lexicon() ([]LexiconEntry, error) {
	lexiconOnce.Do(func() {
		lexiconEntries, lexiconErr = parseLexicon(lexiconYAML)
	})
	return lexiconEntries, lexiconErr
}

func parseLexicon(raw []byte) ([]LexiconEntry, error) {
	var entries []LexiconEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("translate: parse lexicon: %w", err)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Instruction) == "" || len(e.Patch) == 0 {
			return nil, fmt.Errorf("translate: lexicon entry %d is incomplete", i)
		}
	}
	return entries, nil
}

// renderLexicon writes one `- "instruction" → {patch}` line per entry.
func renderLexicon(entries []LexiconEntry) (string, error) {
	var b strings.Builder
	for _, e := range entries {
		patch, err := jsonutil.MarshalNoEscape(e.Patch)
		if err != nil {
			return "", fmt.Errorf("translate: render lexicon %q: %w", e.Instruction, err)
		}
		fmt.Fprintf(&b, "- %q → %s\n", e.Instruction, patch)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
