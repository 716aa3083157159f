package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/example/pseudo/internal/errors"
	"github.com/example/pseudo/internal/lexer"
	"github.com/example/pseudo/pkg/pseudo"
	"github.com/spf13/cobra"
)

var (
	dumpTokens bool
	dumpAST    bool
	trace      bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a pseudocode file",
	Long: `Execute a pseudocode program from a file.

Examples:
  pseudo run program.pseudo
  pseudo run --dump-ast program.pseudo
  pseudo run --trace program.pseudo`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "dump the token stream instead of running")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST instead of running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace each executed top-level statement to stderr")
}

func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	useColor := colorEnabled()

	if !strings.HasSuffix(filename, ".pseudo") {
		err := errors.New(errors.UsageError, lexer.Position{}, fmt.Sprintf("file %q must end with .pseudo", filename), "", "")
		fmt.Fprintln(os.Stderr, err.Format(useColor))
		return fmt.Errorf("invalid file extension")
	}

	content, readErr := os.ReadFile(filename)
	if readErr != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, readErr)
	}
	source := string(content)

	if dumpTokens {
		tokens, lexErrs := pseudo.Tokenize(source)
		fmt.Println(lexer.DumpTokens(tokens))
		if len(lexErrs) > 0 {
			fmt.Fprint(os.Stderr, lexErrs.Format(useColor))
			return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
		}
		return nil
	}

	if dumpAST {
		prog, err := pseudo.Parse(source, filename)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Format(useColor))
			return fmt.Errorf("parsing failed")
		}
		fmt.Println(prog.String())
		return nil
	}

	opts := pseudo.Options{Stdin: os.Stdin, Stdout: os.Stdout, File: filename}
	if trace {
		tracer := log.New(os.Stderr, "trace: ", 0)
		opts.Trace = true
		opts.Tracer = func(line int, text string) {
			tracer.Printf("line %d: %s", line, text)
		}
	}

	if err := pseudo.Run(source, opts); err != nil {
		fmt.Fprintln(os.Stderr, err.Format(useColor))
		return fmt.Errorf("execution failed")
	}
	return nil
}
