// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribe_Scalars(t *testing.T) {
	t.Run("bare key when there is no description", func(t *testing.T) {
		v := Var[string]("ENVTREE_DESC_BARE")

		lines := describeNested([]node{v.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, []string{"ENVTREE_DESC_BARE"}, lines)
	})

	t.Run("case insensitive keys render upper cased", func(t *testing.T) {
		v := Var[string]("envtree_desc_lower", Description("some text"))

		lines := describeNested([]node{v.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, []string{"ENVTREE_DESC_LOWER: some text"}, lines)
	})

	t.Run("case sensitive keys render as declared", func(t *testing.T) {
		v := Var[string]("envtree_desc_exact", CaseSensitive())

		lines := describeNested([]node{v.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, []string{"envtree_desc_exact"}, lines)
	})

	t.Run("roots are sorted by key", func(t *testing.T) {
		b := Var[string]("ENVTREE_DESC_B")
		a := Var[string]("ENVTREE_DESC_A")

		lines := describeNested([]node{b.anyNode(), a.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, []string{"ENVTREE_DESC_A", "ENVTREE_DESC_B"}, lines)
	})

	t.Run("long descriptions wrap with a continuation indent", func(t *testing.T) {
		v := Var[string]("K", Description("aaa bbb ccc"))

		lines := describeNested([]node{v.anyNode()}, newDescribeOptions([]DescribeOption{Width(9)}))
		require.Equal(t, []string{
			"K: aaa",
			"   bbb",
			"   ccc",
		}, lines)
	})

	t.Run("paragraphs render as separate wrapped blocks", func(t *testing.T) {
		v := Var[string]("K2", Description("first paragraph", "second paragraph"))

		lines := describeNested([]node{v.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, []string{
			"K2: first paragraph",
			"    second paragraph",
		}, lines)
	})
}

func TestDescribe_Schemas(t *testing.T) {
	type cfg struct {
		Host string
		Port int
	}

	t.Run("described schema becomes a titled indented section", func(t *testing.T) {
		db := Schema[cfg]("envtree_desc_db_", nil, Args{
			Arg("host", Auto(Required(), Description("database host"))),
			Arg("port", Auto(Default(5432), Description("database port"))),
		}, Description("Database settings"))

		lines := describeNested([]node{db.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, []string{
			"Database settings:",
			"  ENVTREE_DESC_DB_HOST: database host",
			"  ENVTREE_DESC_DB_PORT: database port",
		}, lines)
	})

	t.Run("undescribed schema renders its members in place", func(t *testing.T) {
		db := Schema[cfg]("envtree_desc_db2_", nil, Args{
			Arg("host", Auto(Required())),
			Arg("port", Auto(Default(5432))),
		})

		lines := describeNested([]node{db.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, []string{
			"ENVTREE_DESC_DB2_HOST",
			"ENVTREE_DESC_DB2_PORT",
		}, lines)
	})

	t.Run("IndentIncrement controls nesting", func(t *testing.T) {
		db := Schema[cfg]("envtree_desc_db3_", nil, Args{
			Arg("host", Auto(Required())),
		}, Description("DB"))

		lines := describeNested([]node{db.anyNode()}, newDescribeOptions([]DescribeOption{IndentIncrement("    ")}))
		require.Equal(t, []string{
			"DB:",
			"    ENVTREE_DESC_DB3_HOST",
		}, lines)
	})

	t.Run("a schema sorts where its first member would", func(t *testing.T) {
		mid := Schema[cfg]("envtree_desc_m_", nil, Args{
			Arg("host", Auto(Required())),
		})
		first := Var[string]("ENVTREE_DESC_A1")
		last := Var[string]("ENVTREE_DESC_Z1")

		lines := describeNested([]node{last.anyNode(), mid.anyNode(), first.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, []string{
			"ENVTREE_DESC_A1",
			"ENVTREE_DESC_M_HOST",
			"ENVTREE_DESC_Z1",
		}, lines)
	})
}

func TestDescribeFlat(t *testing.T) {
	type cfg struct {
		Host string
	}

	t.Run("leaves are flattened and sorted", func(t *testing.T) {
		db := Schema[cfg]("envtree_flat_db_", nil, Args{
			Arg("host", Auto(Required(), Description("database host"))),
		}, Description("ignored in the flat layout"))
		v := Var[string]("ENVTREE_FLAT_A", Description("standalone"))

		groups := describeFlatGrouped([]node{db.anyNode(), v.anyNode()}, newDescribeOptions(nil))
		require.Equal(t, [][]string{
			{"ENVTREE_FLAT_A: standalone"},
			{"ENVTREE_FLAT_DB_HOST: database host"},
		}, groups)
	})

	t.Run("duplicate keys collate with described declarations winning", func(t *testing.T) {
		undescribed := Var[string]("ENVTREE_FLAT_DUP")
		described := Var[int]("ENVTREE_FLAT_DUP", Description("the one that counts"))

		groups := describeFlatGrouped(
			[]node{undescribed.anyNode(), described.anyNode()},
			newDescribeOptions(nil),
		)
		require.Equal(t, [][]string{
			{"ENVTREE_FLAT_DUP: the one that counts"},
		}, groups)
	})

	t.Run("distinct descriptions of one key are grouped together", func(t *testing.T) {
		first := Var[string]("ENVTREE_FLAT_DUP2", Description("used by the reader"))
		second := Var[string]("ENVTREE_FLAT_DUP2", Description("used by the writer"))

		groups := describeFlatGrouped(
			[]node{first.anyNode(), second.anyNode()},
			newDescribeOptions(nil),
		)
		require.Equal(t, [][]string{
			{
				"ENVTREE_FLAT_DUP2: used by the reader",
				"ENVTREE_FLAT_DUP2: used by the writer",
			},
		}, groups)
	})

	t.Run("UniqueKeys keeps one entry per key", func(t *testing.T) {
		first := Var[string]("ENVTREE_FLAT_DUP3", Description("used by the reader"))
		second := Var[string]("ENVTREE_FLAT_DUP3", Description("used by the writer"))

		groups := describeFlatGrouped(
			[]node{first.anyNode(), second.anyNode()},
			newDescribeOptions([]DescribeOption{UniqueKeys()}),
		)
		require.Equal(t, [][]string{
			{"ENVTREE_FLAT_DUP3: used by the reader"},
		}, groups)
	})
}

func TestDescribe_Exclusion(t *testing.T) {
	kept := Var[string]("ENVTREE_DESC_KEPT")
	hidden := Var[string]("ENVTREE_DESC_HIDDEN")

	ExcludeFromDescription(hidden)

	lines := describeNested([]node{kept.anyNode(), hidden.anyNode()}, newDescribeOptions(nil))
	require.Equal(t, []string{"ENVTREE_DESC_KEPT"}, lines)
}
