package editor

import (
	"errors"
	"fmt"
)

// Editor errors.
var (
	// ErrDestroyed indicates use of a destroyed editor.
	ErrDestroyed = errors.New("editor destroyed")
)

// InitError represents a failure while setting up an editor component.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
