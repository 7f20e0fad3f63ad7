package track

import (
	"errors"
	"fmt"
)

var (
	// ErrNoText is returned for a recognized field that carries no text.
	ErrNoText = errors.New("no text content")
	// ErrNoElement is returned when an expected nested element is missing.
	ErrNoElement = errors.New("missing nested element")
	// ErrNoWorkingBuffer is returned by the legacy temperature source when no
	// earlier field of the same trackpoint left a value to convert.
	ErrNoWorkingBuffer = errors.New("no earlier field value to convert")
)

// MalformedFieldError aborts a conversion. There is no per-field or per-point
// recovery.
type MalformedFieldError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("malformed %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedFieldError) Unwrap() error { return e.Err }
