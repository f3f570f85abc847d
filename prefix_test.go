// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVar_WithPrefix(t *testing.T) {
	t.Run("prepends the prefix to the key", func(t *testing.T) {
		t.Setenv("ENVTREE_PFX_PORT", "9090")

		port := Var[int]("PORT")
		appPort := port.WithPrefix("ENVTREE_PFX_")

		require.Equal(t, "ENVTREE_PFX_PORT", appPort.Key())

		got, err := appPort.Get()
		require.NoError(t, err)
		require.Equal(t, 9090, got)
	})

	t.Run("the original keeps resolving its own key", func(t *testing.T) {
		t.Setenv("ENVTREE_PFX2_N", "1")
		t.Setenv("ENVTREE_PFX2_OUTER_N", "2")

		n := Var[int]("ENVTREE_PFX2_N")
		outer := n.WithPrefix("ENVTREE_PFX2_OUTER_")

		got, err := n.Get()
		require.NoError(t, err)
		require.Equal(t, 1, got)

		got, err = outer.Get()
		require.NoError(t, err)
		require.Equal(t, 2, got)
	})

	t.Run("validators added to the copy do not affect the original", func(t *testing.T) {
		t.Setenv("ENVTREE_PFX3_NAME", "x")
		t.Setenv("ENVTREE_PFX3_COPY_NAME", "x")

		orig := Var[string]("ENVTREE_PFX3_NAME")
		copied := orig.WithPrefix("ENVTREE_PFX3_COPY_")
		copied.Validator(func(s string) (string, error) {
			return strings.ToUpper(s), nil
		})

		got, err := copied.Get()
		require.NoError(t, err)
		require.Equal(t, "X", got)

		got, err = orig.Get()
		require.NoError(t, err)
		require.Equal(t, "x", got)
	})

	t.Run("patches on the original do not leak into the copy", func(t *testing.T) {
		t.Setenv("ENVTREE_PFX4_COPY_N", "5")

		orig := Var[int]("ENVTREE_PFX4_N")
		copied := orig.WithPrefix("ENVTREE_PFX4_COPY_")

		restore := orig.Patch(99)
		defer restore()

		got, err := copied.Get()
		require.NoError(t, err)
		require.Equal(t, 5, got)
	})

	t.Run("the copy keeps the default", func(t *testing.T) {
		orig := Var[int]("ENVTREE_PFX5_N", Default(3))
		copied := orig.WithPrefix("ENVTREE_PFX5_COPY_")

		got, err := copied.Get()
		require.NoError(t, err)
		require.Equal(t, 3, got)
	})
}

func TestSchema_WithPrefix(t *testing.T) {
	type cfg struct {
		Host string
		Port int
	}

	t.Setenv("ENVTREE_OUTER_DB_HOST", "deep")

	db := Schema[cfg]("DB_", nil, Args{
		Arg("host", Auto(Required())),
		Arg("port", Auto(Default(5432))),
	})
	outer := db.WithPrefix("ENVTREE_OUTER_")

	require.Equal(t, "ENVTREE_OUTER_DB_", outer.Key())

	got, err := outer.Get()
	require.NoError(t, err)
	require.Equal(t, cfg{Host: "deep", Port: 5432}, got)
}

func TestAbsolute(t *testing.T) {
	t.Run("WithPrefix leaves an absolute key untouched", func(t *testing.T) {
		t.Setenv("ENVTREE_ABS_GLOBAL", "g")

		v := Var[string]("ENVTREE_ABS_GLOBAL", Absolute())
		copied := v.WithPrefix("ENVTREE_ABS_OUTER_")

		require.Equal(t, "ENVTREE_ABS_GLOBAL", copied.Key())

		got, err := copied.Get()
		require.NoError(t, err)
		require.Equal(t, "g", got)
	})

	t.Run("schema prefixing skips absolute members", func(t *testing.T) {
		type cfg struct {
			Host  string
			Debug bool
		}

		t.Setenv("ENVTREE_ABS2_HOST", "h")
		t.Setenv("GLOBAL_DEBUG", "true")

		debug := Var[bool]("GLOBAL_DEBUG", Absolute())
		s := Schema[cfg]("ENVTREE_ABS2_", nil, Args{
			Arg("host", Auto(Required())),
			Arg("debug", debug),
		})

		got, err := s.Get()
		require.NoError(t, err)
		require.Equal(t, cfg{Host: "h", Debug: true}, got)
	})
}
