// Package cmd implements the pseudo command-line tool: run, repl, and
// version subcommands built on cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pseudo",
	Short: "Cambridge-style pseudocode interpreter",
	Long: `pseudo runs Cambridge International AS/A Level pseudocode
programs: DECLARE/OUTPUT/INPUT, IF/WHILE/FOR/REPEAT/CASE OF control
flow, PROCEDURE/FUNCTION with BYREF/BYVAL parameters, arrays, records,
and pointers.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// colorEnabled reports whether error/REPL output should be colorized:
// stdout must be a terminal and NO_COLOR must not be set.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

