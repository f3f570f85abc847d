// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsers

import "gopkg.in/yaml.v3"

// YAML returns a parser that unmarshals its input into T.
func YAML[T any]() func(string) (T, error) {
	return func(raw string) (T, error) {
		var v T
		err := yaml.Unmarshal([]byte(raw), &v)
		return v, err
	}
}
