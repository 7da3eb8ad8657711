package button

import "errors"

// Sentinel errors for buttons.
var (
	// ErrNilElement is returned when New is given a nil element.
	ErrNilElement = errors.New("button: nil element")

	// ErrNilScheduler is returned when New is given a nil scheduler.
	ErrNilScheduler = errors.New("button: nil scheduler")

	// ErrAlreadyBound is returned when the element already carries a button.
	ErrAlreadyBound = errors.New("button: element already bound")

	// ErrInvalidOption is returned when an option value cannot be normalized.
	ErrInvalidOption = errors.New("button: invalid option value")
)
