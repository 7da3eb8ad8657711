package config

import (
	"errors"
	"fmt"
)

// Errors returned by Load and Decode.
var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDuplicateButton indicates two [[button]] tables share an id.
	ErrDuplicateButton = errors.New("duplicate button id")
)

// FieldError is a validation failure at a configuration path.
type FieldError struct {
	// Path is the dot-separated location, e.g. "button[1].id".
	Path string

	// Message describes the problem.
	Message string

	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap reports ErrInvalidConfig and the specific cause, if any.
func (e *FieldError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}

func fieldErr(path, format string, args ...any) error {
	return &FieldError{Path: path, Message: fmt.Sprintf(format, args...)}
}
