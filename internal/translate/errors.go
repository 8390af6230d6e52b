package translate

import (
	"errors"
	"fmt"
)

// ErrNoJSON means the model answered without any '{' ... '}' span.
var ErrNoJSON = errors.New("translate: no JSON object in model response")

// ExtractionError is fatal: the completion arrived but held nothing to parse.
type ExtractionError struct {
	Response string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v (response: %q)", e.Err, e.Response)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError reports JSON that stayed unparseable after every repair step. The
// translator recovers from it with the fallback configuration.
type ParseError struct {
	Text    string
	Repairs []string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("translate: unparseable JSON after %d repairs: %v", len(e.Repairs), e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
