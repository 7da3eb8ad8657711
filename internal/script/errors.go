package script

import "errors"

// Errors returned by the engine.
var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("script engine is closed")

	// ErrTimeout is returned when a chunk or handler runs past its deadline.
	ErrTimeout = errors.New("script execution timed out")

	// ErrNoElement is raised in Lua when button() names an unknown element.
	ErrNoElement = errors.New("no such element")
)
