package widget

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Operation is a public button operation reachable through Invoke.
type Operation int

const (
	OpNone Operation = iota
	OpEnable
	OpDisable
	OpPress
	OpStartPress
	OpEndPress
	OpOption
	OpOptions
	OpWidget
	OpDestroy
)

var opNames = [...]string{
	OpNone:       "",
	OpEnable:     "enable",
	OpDisable:    "disable",
	OpPress:      "press",
	OpStartPress: "startpress",
	OpEndPress:   "endpress",
	OpOption:     "option",
	OpOptions:    "options",
	OpWidget:     "widget",
	OpDestroy:    "destroy",
}

// String returns the operation name as accepted by ParseOperation.
func (o Operation) String() string {
	if o > OpNone && int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Operations returns every public operation.
func Operations() []Operation {
	ops := make([]Operation, 0, len(opNames)-1)
	for op := OpEnable; int(op) < len(opNames); op++ {
		ops = append(ops, op)
	}
	return ops
}

// Errors returned by ParseOperation and Invoke.
var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrPrivateOperation = errors.New("private operation")
	ErrNotBound         = errors.New("element has no button")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// OperationError records a failed operation and the element it ran on.
type OperationError struct {
	// Op is the operation name as given by the caller.
	Op string

	// Element is the id of the element, empty when the failure is not tied
	// to one.
	Element string

	// Suggest is the closest public operation name for an unknown one.
	Suggest string

	Err error
}

func (e *OperationError) Error() string {
	var b strings.Builder
	b.WriteString("widget: ")
	if e.Op != "" {
		b.WriteString(`"` + e.Op + `"`)
	} else {
		b.WriteString("init")
	}
	if e.Element != "" {
		b.WriteString(" on " + e.Element)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if e.Suggest != "" {
		b.WriteString(` (did you mean "` + e.Suggest + `"?)`)
	}
	return b.String()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// ParseOperation resolves an operation name. Names are case-sensitive.
func ParseOperation(name string) (Operation, error) {
	if strings.HasPrefix(name, "_") {
		return OpNone, &OperationError{Op: name, Err: ErrPrivateOperation}
	}
	for op := OpEnable; int(op) < len(opNames); op++ {
		if opNames[op] == name {
			return op, nil
		}
	}
	return OpNone, &OperationError{Op: name, Suggest: suggest(name), Err: ErrUnknownOperation}
}

// suggest returns the best fuzzy match for name among the public
// operations, ignoring case, or "" when nothing matches.
func suggest(name string) string {
	if name == "" {
		return ""
	}
	names := make([]string, 0, len(opNames)-1)
	for op := OpEnable; int(op) < len(opNames); op++ {
		names = append(names, strings.ToLower(opNames[op]))
	}
	matches := fuzzy.Find(strings.ToLower(name), names)
	if len(matches) == 0 {
		return ""
	}
	return opNames[OpEnable+Operation(matches[0].Index)]
}
