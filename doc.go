// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package envtree resolves typed values from environment variables.
//
// The package is built around two kinds of declared variables:
//
//   - EnvVar[T]: a scalar variable binding one environment key to a value of type T
//   - SchemaVar[T]: a composite variable assembling a T from child variables under a shared key prefix
//
// Keys match case-insensitively by default, values are parsed with a
// parser selected from T, and every declared variable participates in a
// process-wide description of the environment your program consumes.
//
// # Scalar Variables
//
// Declare a variable once, usually at package level, and resolve it as
// often as you like:
//
//	port := envtree.Var[uint16]("PORT", envtree.Default(uint16(8080)))
//
//	p, err := port.Get()
//
// Get re-reads the process environment on every call, so changes made
// with os.Setenv (or t.Setenv in tests) are always visible.
//
// # Schemas
//
// Schemas group related variables under a prefix and hand the resolved
// values to a factory. Members declared with Auto infer their key, type
// and default from the factory parameter they are attached to:
//
//	type ConnectionInfo struct {
//	    Host    string
//	    Port    uint16
//	    Timeout time.Duration `default:"10s"`
//	}
//
//	conn := envtree.Schema[ConnectionInfo]("DB_", nil, envtree.Args{
//	    envtree.Arg("host", envtree.Auto(envtree.Required())),
//	    envtree.Arg("port", envtree.Auto(envtree.Default(uint16(5432)))),
//	    envtree.Arg("timeout", envtree.Auto()),
//	})
//
//	info, err := conn.Get()
//
// A schema is absent as a whole when none of its members appear in the
// environment; it fails with a PartialCompositeError when only some do,
// unless an OnPartial option declares otherwise.
//
// # Describing The Environment
//
// Every declared variable is registered, and Describe renders the full
// set as help text:
//
//	for _, line := range envtree.Describe() {
//	    fmt.Println(line)
//	}
//
// # Testing
//
// Patch, PatchMissing and PatchDiscard override a variable's resolution
// without touching the process environment; each returns a func that
// restores the previous state:
//
//	restore := port.Patch(9090)
//	defer restore()
package envtree
