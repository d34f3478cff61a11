package tasks

import (
	"errors"
	"fmt"
)

var (
	ErrFetchFailed    = errors.New("fetch failed")
	ErrMutationFailed = errors.New("mutation failed")
	// ErrNotFound: el toggle apuntó a un id que no está. Se trata como no-op.
	ErrNotFound = errors.New("reminder not found")
)

// OperationError es lo que ve la UI cuando falla un refresh o un toggle.
// Message trae el texto del servidor cuando lo hay.
type OperationError struct {
	Op      string
	Kind    error
	ID      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %v: %s", e.Op, e.ID, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Message)
}

func (e *OperationError) Unwrap() error { return e.Err }

func (e *OperationError) Is(target error) bool {
	return target == e.Kind
}
