// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsers

import (
	"fmt"
	"strings"
)

type delimitedOptions struct {
	opener     string
	closer     string
	trailing   *bool
	valueFirst bool
}

// DelimitedOption configures the Delimited and DelimitedPairs combinators.
type DelimitedOption func(*delimitedOptions)

// Opener requires the input to start with the given marker, which is
// stripped before splitting.
func Opener(s string) DelimitedOption {
	return func(do *delimitedOptions) {
		do.opener = s
	}
}

// Closer requires the input to end with the given marker, which is
// stripped before splitting.
func Closer(s string) DelimitedOption {
	return func(do *delimitedOptions) {
		do.closer = s
	}
}

// RequireTrailingDelimiter fails inputs that do not end with a
// delimiter. By default a trailing delimiter is accepted but not required.
func RequireTrailingDelimiter() DelimitedOption {
	t := true
	return func(do *delimitedOptions) {
		do.trailing = &t
	}
}

// ForbidTrailingDelimiter treats a trailing delimiter as an empty
// final element instead of ignoring it.
func ForbidTrailingDelimiter() DelimitedOption {
	t := false
	return func(do *delimitedOptions) {
		do.trailing = &t
	}
}

// ValueFirst makes DelimitedPairs read each pair as value-then-key
// instead of key-then-value.
func ValueFirst() DelimitedOption {
	return func(do *delimitedOptions) {
		do.valueFirst = true
	}
}

// Delimited returns a parser that splits its input by delimiter and
// parses each part with elem. Parts are stripped of surrounding
// whitespace before parsing.
func Delimited[E any](delimiter string, elem func(string) (E, error), opts ...DelimitedOption) func(string) ([]E, error) {
	do := delimitedOptions{}
	for _, opt := range opts {
		opt(&do)
	}

	return func(raw string) ([]E, error) {
		parts, err := splitDelimited(raw, delimiter, do)
		if err != nil {
			return nil, err
		}

		out := make([]E, 0, len(parts))
		for _, part := range parts {
			e, err := elem(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	}
}

// DelimitedPairs returns a parser that splits its input into key-value
// pairs by pairDelimiter, splits each pair by kvDelimiter, and
// aggregates the parsed pairs into a map. Duplicate keys fail.
func DelimitedPairs[K comparable, V any](
	pairDelimiter, kvDelimiter string,
	key func(string) (K, error),
	value func(string) (V, error),
	opts ...DelimitedOption,
) func(string) (map[K]V, error) {
	do := delimitedOptions{}
	for _, opt := range opts {
		opt(&do)
	}

	return func(raw string) (map[K]V, error) {
		parts, err := splitDelimited(raw, pairDelimiter, do)
		if err != nil {
			return nil, err
		}

		out := make(map[K]V, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			rawKey, rawValue, ok := strings.Cut(part, kvDelimiter)
			if !ok {
				return nil, fmt.Errorf("expecting key-value pair, got %q", part)
			}
			if do.valueFirst {
				rawKey, rawValue = rawValue, rawKey
			}

			k, err := key(strings.TrimSpace(rawKey))
			if err != nil {
				return nil, err
			}
			if _, ok := out[k]; ok {
				return nil, fmt.Errorf("duplicate key %v", k)
			}
			v, err := value(strings.TrimSpace(rawValue))
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
}

func splitDelimited(raw, delimiter string, do delimitedOptions) ([]string, error) {
	rest, ok := strings.CutPrefix(raw, do.opener)
	if !ok {
		return nil, fmt.Errorf("position 0, expected opener %q", do.opener)
	}
	rest, ok = strings.CutSuffix(rest, do.closer)
	if !ok {
		return nil, fmt.Errorf("expected string to end in closer %q", do.closer)
	}

	parts := strings.Split(rest, delimiter)
	last := parts[len(parts)-1]
	if last == "" {
		if do.trailing == nil || *do.trailing {
			parts = parts[:len(parts)-1]
		}
	} else if do.trailing != nil && *do.trailing {
		return nil, fmt.Errorf("expected trailing delimiter %q", delimiter)
	}
	return parts, nil
}
