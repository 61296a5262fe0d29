// internal/domain/homework/errors.go
package homework

import (
	"fmt"
	"strings"
)

// SchemaErrorKind classifies why a payload did not match the expected shape.
type SchemaErrorKind string

const (
	KindNotAMapping   SchemaErrorKind = "NOT_A_MAPPING"
	KindMissingField  SchemaErrorKind = "MISSING_FIELD"
	KindWrongType     SchemaErrorKind = "WRONG_TYPE"
	KindUnknownStatus SchemaErrorKind = "UNKNOWN_STATUS"
)

// SchemaError reports a malformed or unexpected API payload.
type SchemaError struct {
	Kind  SchemaErrorKind
	Field string // empty for KindNotAMapping
	Value string // offending value, set for KindUnknownStatus
}

func (e *SchemaError) Error() string {
	switch e.Kind {
	case KindNotAMapping:
		return "api response is not a mapping"
	case KindMissingField:
		return fmt.Sprintf("field %q is missing", e.Field)
	case KindWrongType:
		return fmt.Sprintf("field %q has unexpected type", e.Field)
	case KindUnknownStatus:
		return fmt.Sprintf("unknown homework status %q", e.Value)
	default:
		return fmt.Sprintf("schema error (%s) on field %q", e.Kind, e.Field)
	}
}

// TransportError reports a failed request to the review API: either a non-success
// HTTP status or a network-level failure.
type TransportError struct {
	StatusCode int // 0 when the request never got a response
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api request failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// StartupError is the only fatal error: a required credential is absent or invalid.
type StartupError struct {
	Missing []string
	Cause   error
}

func (e *StartupError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("required environment variables are not set: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid startup configuration: %v", e.Cause)
}

func (e *StartupError) Unwrap() error { return e.Cause }
