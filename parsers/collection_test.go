// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package parsers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDelimited(t *testing.T) {
	testCases := []struct {
		name      string
		opts      []DelimitedOption
		raw       string
		expected  []int
		expectErr bool
	}{
		{
			name:     "splits and parses elements",
			raw:      "1;2;3",
			expected: []int{1, 2, 3},
		},
		{
			name:     "elements are trimmed before parsing",
			raw:      " 1 ; 2 ",
			expected: []int{1, 2},
		},
		{
			name:     "trailing delimiter is accepted by default",
			raw:      "1;2;",
			expected: []int{1, 2},
		},
		{
			name:      "RequireTrailingDelimiter rejects a bare tail",
			opts:      []DelimitedOption{RequireTrailingDelimiter()},
			raw:       "1;2",
			expectErr: true,
		},
		{
			name:     "RequireTrailingDelimiter accepts a delimited tail",
			opts:     []DelimitedOption{RequireTrailingDelimiter()},
			raw:      "1;2;",
			expected: []int{1, 2},
		},
		{
			name:      "ForbidTrailingDelimiter rejects a trailing delimiter",
			opts:      []DelimitedOption{ForbidTrailingDelimiter()},
			raw:       "1;2;",
			expectErr: true,
		},
		{
			name:     "opener and closer are stripped",
			opts:     []DelimitedOption{Opener("["), Closer("]")},
			raw:      "[1;2]",
			expected: []int{1, 2},
		},
		{
			name:      "missing opener fails",
			opts:      []DelimitedOption{Opener("[")},
			raw:       "1;2",
			expectErr: true,
		},
		{
			name:      "missing closer fails",
			opts:      []DelimitedOption{Opener("["), Closer("]")},
			raw:       "[1;2",
			expectErr: true,
		},
		{
			name:      "element parse failure fails the whole input",
			raw:       "1;x;3",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parse := Delimited(";", strconv.Atoi, tc.opts...)

			got, err := parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestDelimitedPairs(t *testing.T) {
	t.Run("aggregates key value pairs", func(t *testing.T) {
		parse := DelimitedPairs(";", "=", String, strconv.Atoi)

		got, err := parse("a=1; b=2")
		require.NoError(t, err)
		require.Equal(t, map[string]int{"a": 1, "b": 2}, got)
	})

	t.Run("duplicate keys fail", func(t *testing.T) {
		parse := DelimitedPairs(";", "=", String, strconv.Atoi)

		_, err := parse("a=1;a=2")
		require.Error(t, err)
	})

	t.Run("pairs without the key value delimiter fail", func(t *testing.T) {
		parse := DelimitedPairs(";", "=", String, strconv.Atoi)

		_, err := parse("a=1;b")
		require.Error(t, err)
	})

	t.Run("ValueFirst flips each pair", func(t *testing.T) {
		parse := DelimitedPairs(";", "=", String, strconv.Atoi, ValueFirst())

		got, err := parse("1=a;2=b")
		require.NoError(t, err)
		require.Equal(t, map[string]int{"a": 1, "b": 2}, got)
	})
}
