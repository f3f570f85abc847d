// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type logLevel int

func TestParserFor(t *testing.T) {
	testCases := []struct {
		name     string
		typ      reflect.Type
		raw      string
		expected any
	}{
		{
			name:     "string",
			typ:      reflect.TypeFor[string](),
			raw:      "hello",
			expected: "hello",
		},
		{
			name:     "named integer type",
			typ:      reflect.TypeFor[logLevel](),
			raw:      "3",
			expected: logLevel(3),
		},
		{
			name:     "integer with base prefix",
			typ:      reflect.TypeFor[int](),
			raw:      "0x10",
			expected: 16,
		},
		{
			name:     "unsigned integer",
			typ:      reflect.TypeFor[uint8](),
			raw:      "255",
			expected: uint8(255),
		},
		{
			name:     "float",
			typ:      reflect.TypeFor[float64](),
			raw:      "2.5",
			expected: 2.5,
		},
		{
			name:     "complex",
			typ:      reflect.TypeFor[complex128](),
			raw:      "1+2i",
			expected: complex(1, 2),
		},
		{
			name:     "bool is case insensitive",
			typ:      reflect.TypeFor[bool](),
			raw:      "TRUE",
			expected: true,
		},
		{
			name:     "duration",
			typ:      reflect.TypeFor[time.Duration](),
			raw:      "1h30m",
			expected: 90 * time.Minute,
		},
		{
			name:     "byte slice passes through raw",
			typ:      reflect.TypeFor[[]byte](),
			raw:      "[1,2]",
			expected: []byte("[1,2]"),
		},
		{
			name:     "text unmarshaler",
			typ:      reflect.TypeFor[netip.Addr](),
			raw:      "127.0.0.1",
			expected: netip.MustParseAddr("127.0.0.1"),
		},
		{
			name:     "json for slices",
			typ:      reflect.TypeFor[[]int](),
			raw:      "[1, 2, 3]",
			expected: []int{1, 2, 3},
		},
		{
			name:     "json for maps",
			typ:      reflect.TypeFor[map[string]int](),
			raw:      `{"a": 1}`,
			expected: map[string]int{"a": 1},
		},
		{
			name:     "json for structs",
			typ:      reflect.TypeFor[struct{ X, Y int }](),
			raw:      `{"X": 1, "Y": 2}`,
			expected: struct{ X, Y int }{X: 1, Y: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parse, err := parserFor(tc.typ)
			require.NoError(t, err)

			got, err := parse(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestParserFor_Pointer(t *testing.T) {
	parse, err := parserFor(reflect.TypeFor[*int]())
	require.NoError(t, err)

	got, err := parse("42")
	require.NoError(t, err)

	p, ok := got.(*int)
	require.True(t, ok)
	require.Equal(t, 42, *p)
}

func TestParserFor_Errors(t *testing.T) {
	t.Run("unsupported type", func(t *testing.T) {
		_, err := parserFor(reflect.TypeFor[chan int]())
		require.Error(t, err)

		_, err = parserFor(reflect.TypeFor[func()]())
		require.Error(t, err)
	})

	t.Run("out of range integer", func(t *testing.T) {
		parse, err := parserFor(reflect.TypeFor[int8]())
		require.NoError(t, err)

		_, err = parse("300")
		require.Error(t, err)
	})

	t.Run("unrecognized bool token", func(t *testing.T) {
		parse, err := parserFor(reflect.TypeFor[bool]())
		require.NoError(t, err)

		_, err = parse("yes")
		require.Error(t, err)
	})
}
