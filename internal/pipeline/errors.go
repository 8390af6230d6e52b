package pipeline

import (
	"fmt"

	llmclient "vibechart/internal/llm/client"
)

// ErrMissingCredentials means no model credentials were configured, so no run
// can start.
var ErrMissingCredentials = llmclient.ErrMissingCredentials

// RequestShapeError reports a malformed request, such as an empty instruction.
type RequestShapeError struct {
	Field  string
	Reason string
}

func (e *RequestShapeError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// ConfigurationError is returned when a configuration fails validation even
// after the fixed-defaults repair.
type ConfigurationError struct {
	// Initial is the validation error that triggered the repair.
	Initial error
	Err     error
}

func (e *ConfigurationError) Error() string {
	return "generated configuration is invalid: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
