package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload is returned when the request data is not a JSON object
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrUnknownForm is returned for a form name outside the catalog
	ErrUnknownForm = errors.New("unknown form")
	// ErrUnsupportedAction is returned when a form does not offer the requested action
	ErrUnsupportedAction = errors.New("unsupported action")
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when an admin action lacks a valid token
	ErrUnauthorized = errors.New("unauthorized")
)

// StoreAccessError reports a failed table store operation. Nothing from the
// failing request is committed.
type StoreAccessError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StoreAccessError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying store error
func (e *StoreAccessError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreAccessError{Op: op, Err: err}
}

// UnsupportedAction reports that a form does not offer action
func UnsupportedAction(action string) error {
	return fmt.Errorf("%w %q", ErrUnsupportedAction, action)
}
