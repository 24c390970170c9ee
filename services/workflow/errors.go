package workflow

import "fmt"

// ValidationError reports a filter set that cannot be searched yet. It is
// raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// StateError reports an operation attempted from the wrong workflow stage.
type StateError struct {
	Stage   string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("stage %s: %s", e.Stage, e.Message)
}

func NewStateError(stage, msg string) error {
	return &StateError{Stage: stage, Message: msg}
}
