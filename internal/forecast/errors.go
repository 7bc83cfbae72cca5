package forecast

import "fmt"

// InputError means a request field was present but could not be coerced
// to its declared type. The request fails with no partial response.
type InputError struct {
	Field string
	Value any
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Value)
}

// ValidationError means the request was well-formed but not predictable,
// e.g. every spending category is zero. Client-correctable.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ErrModelUnavailable is returned when no model artifact was ever loaded.
// No fallback is attempted for this condition.
var ErrModelUnavailable = fmt.Errorf("prediction model not loaded")

// ModelError is an inference-time failure on an otherwise valid request.
// The orchestrator recovers by recomputing the whole week via the
// fallback predictor.
type ModelError struct {
	Day string
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model prediction failed for %s: %v", e.Day, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }
