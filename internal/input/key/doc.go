// Package key provides key codes and key sets for the input system.
//
// This package defines the fundamental types for representing the keys a
// widget reacts to:
//
//   - Code: a DOM-style numeric key code (13 for Enter, 32 for Space)
//   - Set: an immutable set of codes with constant-time membership
//
// # Key Set Specifications
//
// Sets can be written in multiple formats:
//
//   - Space-delimited codes: "13 32"
//   - Code names: "enter space", "Escape"
//   - Sequences: []int{13, 32}, []string{"13", "space"}, []any{13, "32"}
//
// An empty specification yields an empty set, and an empty set never
// matches any key.
package key
