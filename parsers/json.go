// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsers

import (
	"bytes"
	"encoding/json"
)

// JSON returns a parser that unmarshals its input into T.
func JSON[T any]() func(string) (T, error) {
	return func(raw string) (T, error) {
		var v T
		err := json.Unmarshal([]byte(raw), &v)
		return v, err
	}
}

// StrictJSON behaves like JSON but fails on object fields that have no
// counterpart in T.
func StrictJSON[T any]() func(string) (T, error) {
	return func(raw string) (T, error) {
		var v T
		dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
		dec.DisallowUnknownFields()
		err := dec.Decode(&v)
		return v, err
	}
}
