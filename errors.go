// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"fmt"
	"strings"
)

// MissingVariableError occurs when a required environment variable is
// absent and the variable declares no default. Key is always the full
// prefixed key, not the local fragment.
type MissingVariableError struct {
	Key string
}

// Error implements the error interface.
func (e MissingVariableError) Error() string {
	return fmt.Sprintf("missing environment variable: %s", e.Key)
}

// AmbiguousKeyError occurs when a case-insensitive lookup matches two
// or more distinct environment keys. The engine never chooses between
// them silently, even if one of the candidates matches exactly.
type AmbiguousKeyError struct {
	Key     string
	Matches []string
}

// Error implements the error interface.
func (e AmbiguousKeyError) Error() string {
	return fmt.Sprintf(
		"cannot choose between environment variables for %s: %s",
		e.Key,
		strings.Join(e.Matches, ", "),
	)
}

// InferenceError occurs at declaration time when a placeholder cannot
// be resolved against its enclosing schema's factory. Declaration
// helpers panic with an InferenceError since variables are normally
// declared at package initialization.
type InferenceError struct {
	Param   string
	Factory string
	Reason  string
}

// Error implements the error interface.
func (e InferenceError) Error() string {
	return fmt.Sprintf("cannot infer parameter %q of %s: %s", e.Param, e.Factory, e.Reason)
}

// PartialCompositeError occurs when some of a schema's children are
// set in the environment while a required child is missing, and the
// schema's partial-presence policy forbids falling back to a default.
type PartialCompositeError struct {
	Key   string
	Cause MissingVariableError
}

// Error implements the error interface.
func (e PartialCompositeError) Error() string {
	return fmt.Sprintf("schema %s is only partially set: %s", e.Key, e.Cause.Error())
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e PartialCompositeError) Unwrap() error {
	return e.Cause
}
