package navstack

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition  = errors.New("navstack: illegal transition")
	ErrNotInitialized     = errors.New("navstack: initial state not set")
	ErrAlreadyInitialized = errors.New("navstack: initial state already set")
)

// TransitionError reports a rejected request. It matches
// ErrIllegalTransition with errors.Is.
type TransitionError struct {
	From    State
	Request Request
	Reason  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("navstack: %s from %s rejected: %s", e.Request, e.From, e.Reason)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
