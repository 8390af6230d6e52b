package translate

import (
	"strings"

	"vibechart/internal/chartconfig"
	"vibechart/internal/util/jsonutil"
)

// Repair step names, in the order they are applied.
const (
	RepairTrailingCommas = "strip-trailing-commas"
	RepairBareKeys       = "quote-bare-keys"
	RepairSingleQuotes   = "single-to-double-quotes"
)

type repairStep struct {
	name string
	fn   func(string) string
}

var repairChain = []repairStep{
	{RepairTrailingCommas, stripTrailingCommas},
	{RepairBareKeys, quoteBareKeys},
	{RepairSingleQuotes, singleToDoubleQuotes},
}

// ParseWithRepair parses text as a JSON object. On failure it applies the repair
// steps cumulatively, retrying the parse after each one, and reports which steps
// ran. All three failing yields a *ParseError.
func ParseWithRepair(text string) (chartconfig.Tree, []string, error) {
	obj, firstErr := jsonutil.DecodeObject([]byte(text))
	if firstErr == nil {
		return obj, nil, nil
	}
	var applied []string
	cur := text
	for _, step := range repairChain {
		cur = step.fn(cur)
		applied = append(applied, step.name)
		if obj, err := jsonutil.DecodeObject([]byte(cur)); err == nil {
			return obj, applied, nil
		}
	}
	return nil, applied, &ParseError{Text: text, Repairs: applied, Err: firstErr}
}

// quoteState tracks whether a scan is inside a string literal delimited by
// either quote character.
type quoteState struct {
	quote   byte
	escaped bool
}

// step consumes c and reports whether it belonged to a string literal.
func (q *quoteState) step(c byte) bool {
	if q.quote == 0 {
		if c == '"' || c == '\'' {
			q.quote = c
			return true
		}
		return false
	}
	switch {
	case q.escaped:
		q.escaped = false
	case c == '\\':
		q.escaped = true
	case c == q.quote:
		q.quote = 0
	}
	return true
}

// stripTrailingCommas drops commas that directly precede '}' or ']'.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var q quoteState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if q.step(c) {
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			if next := nextSignificant(s, i+1); next == '}' || next == ']' {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// quoteBareKeys wraps identifier keys that follow '{' or ',' in double quotes.
func quoteBareKeys(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	var q quoteState
	var last byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		wasInString := q.quote != 0
		if q.step(c) {
			b.WriteByte(c)
			if !wasInString {
				last = c
			}
			continue
		}
		if isIdentStart(c) && (last == '{' || last == ',') {
			j := i + 1
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			if nextSignificant(s, j) == ':' {
				b.WriteByte('"')
				b.WriteString(s[i:j])
				b.WriteByte('"')
				last = '"'
				i = j - 1
				continue
			}
		}
		b.WriteByte(c)
		if !isSpace(c) {
			last = c
		}
	}
	return b.String()
}

// singleToDoubleQuotes rewrites single-quoted string literals as double-quoted
// ones, escaping embedded double quotes. Double-quoted literals are untouched.
func singleToDoubleQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inDouble, inSingle, escaped := false, false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inDouble:
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inDouble = false
			}
		case inSingle:
			if escaped {
				escaped = false
				if c != '\'' {
					b.WriteByte('\\')
				}
				b.WriteByte(c)
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case '\'':
				inSingle = false
				b.WriteByte('"')
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteByte(c)
			}
		default:
			switch c {
			case '"':
				inDouble = true
				b.WriteByte(c)
			case '\'':
				inSingle = true
				b.WriteByte('"')
			default:
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func nextSignificant(s string, from int) byte {
	for j := from; j < len(s); j++ {
		if !isSpace(s[j]) {
			return s[j]
		}
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
