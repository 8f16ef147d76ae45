// Command ecotrack estimates the carbon footprint of free-text activity
// descriptions from the command line or over HTTP.
package main

import (
	"context"
	"os"

	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/pkg/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.String())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
