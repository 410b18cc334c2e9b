package controller

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by every operation before Init succeeded.
	ErrNotReady = errors.New("store not ready")

	// ErrEmptyTitle is returned when a submitted title is blank.
	ErrEmptyTitle = errors.New("title required")

	// ErrEmptyPriority is returned when a submitted priority is blank.
	ErrEmptyPriority = errors.New("priority required")

	// ErrUnknownAction is returned for a submit or list action that is
	// neither of the known values.
	ErrUnknownAction = errors.New("unknown action")
)

// InitError reports that the store could not be opened. The controller
// stays inert after it.
type InitError struct {
	Err error
}

func (e *InitError) Error() string { return "store unavailable: " + e.Err.Error() }
func (e *InitError) Unwrap() error { return e.Err }

// OpError reports a failed operation on an open store.
type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
