// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsers

import (
	"fmt"
	"strings"
)

type boolOptions struct {
	caseSensitive bool
	fallback      *bool
}

// BoolOption configures the Bool combinator.
type BoolOption func(*boolOptions)

// MatchBoolCase makes the truthy and falsy token sets match exactly
// instead of case-insensitively.
func MatchBoolCase() BoolOption {
	return func(bo *boolOptions) {
		bo.caseSensitive = true
	}
}

// FallbackBool sets the value returned when the input is in neither
// token set, instead of failing.
func FallbackBool(v bool) BoolOption {
	return func(bo *boolOptions) {
		bo.fallback = &v
	}
}

// Bool returns a parser mapping members of truthy to true and members
// of falsy to false. Any other input fails unless FallbackBool is set.
func Bool(truthy, falsy []string, opts ...BoolOption) func(string) (bool, error) {
	bo := boolOptions{}
	for _, opt := range opts {
		opt(&bo)
	}

	fold := func(s string) string {
		if bo.caseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	truthSet := make(map[string]struct{}, len(truthy))
	for _, t := range truthy {
		truthSet[fold(t)] = struct{}{}
	}
	falseSet := make(map[string]struct{}, len(falsy))
	for _, f := range falsy {
		falseSet[fold(f)] = struct{}{}
	}

	return func(raw string) (bool, error) {
		v := fold(raw)
		if _, ok := truthSet[v]; ok {
			return true, nil
		}
		if _, ok := falseSet[v]; ok {
			return false, nil
		}
		if bo.fallback != nil {
			return *bo.fallback, nil
		}
		return false, fmt.Errorf(
			"%q must evaluate to either true (%s) or false (%s)",
			raw,
			strings.Join(truthy, ", "),
			strings.Join(falsy, ", "),
		)
	}
}
