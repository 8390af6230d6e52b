package chartconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError identifies the first field that made a candidate invalid.
// Path uses JSON field names joined by dots, e.g. "title.fontSize".
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid chart configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid chart configuration: %s %s", e.Path, e.Reason)
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a candidate tree against the configuration schema and returns
// the typed configuration. Keys the schema does not know are dropped.
func Validate(candidate any) (*Config, error) {
	tree, ok := candidate.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "must be a JSON object"}
	}
	if err := checkUnions(tree); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ValidationError{Path: typeErr.Field, Reason: "must be " + kindName(typeErr.Type)}
		}
		return nil, &ValidationError{Reason: err.Error()}
	}
	if err := structValidator.Struct(&cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, fieldError(fieldErrs[0])
		}
		return nil, fmt.Errorf("chartconfig: validate: %w", err)
	}
	return &cfg, nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return &ValidationError{Path: path, Reason: "is required"}
	case "oneof":
		return &ValidationError{Path: path, Reason: fmt.Sprintf("must be one of [%s]", fe.Param())}
	}
	return &ValidationError{Path: path, Reason: "failed " + fe.Tag()}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	}
	return "an object"
}
