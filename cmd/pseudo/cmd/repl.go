package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/example/pseudo/pkg/pseudo"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const replHistoryFile = ".pseudo_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive pseudocode session",
	Long: `repl reads pseudocode lines until a blank line, then runs the
collected lines as one standalone program in a single Run call. No state
carries over from one program to the next.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(replHistoryFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(replHistoryFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	useColor := colorEnabled()
	prompt := "pseudo> "
	if useColor {
		prompt = color.New(color.FgCyan).Sprint("pseudo> ")
	}

	fmt.Println("pseudo REPL. Enter a program; a blank line runs it. Ctrl-D to exit.")

	for {
		var lines []string
		for {
			text, err := line.Prompt(prompt)
			if err != nil { // EOF (Ctrl-D) or Ctrl-C
				return nil
			}
			if strings.TrimSpace(text) == "" {
				break
			}
			lines = append(lines, text)
			line.AppendHistory(text)
		}
		if len(lines) == 0 {
			continue
		}

		source := strings.Join(lines, "\n")
		err := pseudo.Run(source, pseudo.Options{Stdin: os.Stdin, Stdout: os.Stdout, File: "<repl>"})
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Format(useColor))
		}
	}
}
