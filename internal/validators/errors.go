package validators

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInvalidLevel Kind = iota + 1
	KindMissingField
	KindInvalidTimestamp
	KindInvalidMetadata
)

func (k Kind) String() string {
	switch k {
	case KindInvalidLevel:
		return "invalid_level"
	case KindMissingField:
		return "missing_field"
	case KindInvalidTimestamp:
		return "invalid_timestamp"
	case KindInvalidMetadata:
		return "invalid_metadata"
	}
	return "unknown"
}

// ValidationError is a caller-input problem. Its message is safe to return to
// the client as-is.
type ValidationError struct {
	Kind  Kind
	Field string
}

var (
	ErrInvalidLevel     = &ValidationError{Kind: KindInvalidLevel, Field: "level"}
	ErrInvalidTimestamp = &ValidationError{Kind: KindInvalidTimestamp, Field: "timestamp"}
	ErrInvalidMetadata  = &ValidationError{Kind: KindInvalidMetadata, Field: "metadata"}
)

func MissingField(name string) *ValidationError {
	return &ValidationError{Kind: KindMissingField, Field: name}
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindInvalidLevel:
		return "Invalid level. Use INFO, WARN, or ERROR."
	case KindMissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case KindInvalidTimestamp:
		return "Invalid timestamp format. Use ISO8601 e.g. 2026-01-02T12:34:56Z"
	case KindInvalidMetadata:
		return "metadata must be a JSON value"
	}
	return "invalid log event"
}

// Is matches on kind and field, so errors.Is(err, MissingField("service")) works.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Field == t.Field
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
