// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/z5labs/envtree"

	"github.com/spf13/cobra"
)

type cacheConfig struct {
	Addr string `default:"localhost:6379"`
	TTL  time.Duration
}

var vars = struct {
	listenPort *envtree.EnvVar[uint16]
	logLevel   *envtree.EnvVar[string]
	cache      *envtree.SchemaVar[cacheConfig]
}{
	listenPort: envtree.Var[uint16]("ENVDOC_PORT",
		envtree.Default(uint16(8080)),
		envtree.Description("Port to listen on."),
	),
	logLevel: envtree.Var[string]("ENVDOC_LOG_LEVEL",
		envtree.Default("info"),
		envtree.Description("Minimum level to log at.", "One of: debug, info, warn, error."),
	),
	cache: envtree.Schema[cacheConfig]("ENVDOC_CACHE_", nil, envtree.Args{
		envtree.Arg("addr", envtree.Auto(envtree.Description("Cache server address."))),
		envtree.Arg("ttl", envtree.Auto(envtree.Default(time.Minute), envtree.Description("How long entries live."))),
	}, envtree.Description("Cache settings")),
}

func main() {
	var flat bool
	var width int
	var indent string

	cmd := &cobra.Command{
		Use:   "envdoc",
		Short: "Print the environment variables this program reads",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []envtree.DescribeOption{
				envtree.Width(width),
				envtree.IndentIncrement(indent),
			}

			lines := envtree.Describe(opts...)
			if flat {
				lines = envtree.DescribeFlat(opts...)
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "print a flat sorted list instead of a tree")
	cmd.Flags().IntVar(&width, "width", 80, "wrap description text at this column")
	cmd.Flags().StringVar(&indent, "indent", "  ", "indent per nesting level")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
