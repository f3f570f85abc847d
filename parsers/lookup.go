// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsers

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type lookupOptions struct {
	caseSensitive bool
}

// LookupOption configures the Lookup combinator.
type LookupOption func(*lookupOptions)

// MatchLookupCase makes Lookup tokens match exactly instead of
// case-insensitively.
func MatchLookupCase() LookupOption {
	return func(lo *lookupOptions) {
		lo.caseSensitive = true
	}
}

// Lookup returns a parser mapping each token to its value in m. Input
// outside the token set fails, naming the accepted tokens.
func Lookup[T any](m map[string]T, opts ...LookupOption) func(string) (T, error) {
	lo := lookupOptions{}
	for _, opt := range opts {
		opt(&lo)
	}

	fold := func(s string) string {
		if lo.caseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	folded := make(map[string]T, len(m))
	tokens := make([]string, 0, len(m))
	for k, v := range m {
		folded[fold(k)] = v
		tokens = append(tokens, k)
	}
	sort.Strings(tokens)

	return func(raw string) (T, error) {
		v, ok := folded[fold(raw)]
		if !ok {
			return v, fmt.Errorf("%q is not one of: %s", raw, strings.Join(tokens, ", "))
		}
		return v, nil
	}
}

// Match returns a parser that passes its input through unchanged if
// the whole input matches re, and fails otherwise.
func Match(re *regexp.Regexp) func(string) (string, error) {
	pattern := re.String()
	if !strings.HasPrefix(pattern, `\A`) && !strings.HasPrefix(pattern, "^") {
		pattern = `\A(?:` + pattern + `)\z`
	}
	full := regexp.MustCompile(pattern)

	return func(raw string) (string, error) {
		if !full.MatchString(raw) {
			return "", fmt.Errorf("%q does not match %s", raw, re)
		}
		return raw, nil
	}
}
