package delivery

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel for illegal state-machine edges.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyClaimed is returned when a claim loses the race for a
	// pending delivery. It is an expected outcome of concurrent claims,
	// not a storage fault; callers re-poll instead of alarming.
	ErrAlreadyClaimed = errors.New("delivery already claimed by another driver")

	// ErrNotHolder is returned when a driver operates on a delivery
	// claimed by someone else.
	ErrNotHolder = errors.New("driver does not hold this delivery")
)

// InvalidTransitionError names the rejected from/to pair of a
// state-machine edge that is not in the transition table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an error for the rejected edge.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
