// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package parsers provides combinators for building the string parsing
// functions consumed by envtree variable declarations.
//
// Every combinator returns a plain func(string) (T, error), so the
// results compose with each other and plug directly into
// envtree.ParseWith:
//
//	hosts := envtree.Var[[]string]("HOSTS",
//	    envtree.ParseWith(parsers.Delimited(";", parsers.String)),
//	)
package parsers

// String is the identity parser.
func String(raw string) (string, error) {
	return raw, nil
}
