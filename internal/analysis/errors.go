package analysis

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload is returned when the analysis payload is not a JSON object.
var ErrMalformedPayload = errors.New("malformed analysis payload")

// PayloadError describes why a payload was rejected.
type PayloadError struct {
	Kind  string
	Cause error
}

func (e *PayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedPayload, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedPayload, e.Kind)
}

func (e *PayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

func (e *PayloadError) Unwrap() error {
	return e.Cause
}
