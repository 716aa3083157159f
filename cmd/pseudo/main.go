// Command pseudo is the CLI entry point: run, repl, and version
// subcommands over the pkg/pseudo interpreter.
package main

import (
	"os"

	"github.com/example/pseudo/cmd/pseudo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
