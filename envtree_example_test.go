// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envtree_test

import (
	"fmt"

	"github.com/z5labs/envtree"
	"github.com/z5labs/envtree/parsers"
)

func ExampleVar() {
	port := envtree.Var[int]("EXAMPLE_PORT", envtree.Default(8080))

	v, err := port.Get()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v)
	// Output: 8080
}

func ExampleSchema() {
	type connInfo struct {
		Host string
		Port int
	}

	db := envtree.Schema[connInfo]("EXAMPLE_DB_", nil, envtree.Args{
		envtree.Arg("host", envtree.Auto(envtree.Required())),
		envtree.Arg("port", envtree.Auto(envtree.Default(5432))),
	})

	restore := db.Patch(connInfo{Host: "db.internal", Port: 5433})
	defer restore()

	conn, err := db.Get()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s:%d\n", conn.Host, conn.Port)
	// Output: db.internal:5433
}

func ExampleEnvVar_Patch() {
	timeout := envtree.Var[int]("EXAMPLE_TIMEOUT")

	restore := timeout.Patch(30)
	defer restore()

	v, err := timeout.Get()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v)
	// Output: 30
}

func ExampleParseWith() {
	hosts := envtree.Var[[]string]("EXAMPLE_HOSTS",
		envtree.ParseWith(parsers.Delimited(";", parsers.String)),
	)

	restore := hosts.Patch([]string{"a", "b"})
	defer restore()

	v, err := hosts.Get()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v)
	// Output: [a b]
}
