// Package pseudo is the public entry point for running Cambridge-style
// pseudocode programs: tokenize, parse, and evaluate in one call.
package pseudo

import (
	"io"
	"strings"

	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/errors"
	"github.com/example/pseudo/internal/evaluator"
	"github.com/example/pseudo/internal/lexer"
	"github.com/example/pseudo/internal/parser"
)

// Options configures one Run. Stdin/Stdout default to an empty reader and
// io.Discard respectively when left nil.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	File   string // shown in diagnostics; "" for inline/eval source

	Trace  bool
	Tracer func(line int, text string)
}

// Tokenize runs only the lexing stage, for `--dump-tokens`.
func Tokenize(source string) ([]lexer.Token, errors.List) {
	tokens, lexErrs := lexer.Tokenize(source)
	list := make(errors.List, len(lexErrs))
	for i, e := range lexErrs {
		list[i] = errors.New(errors.LexError, e.Pos, e.Message, source, "")
	}
	return tokens, list
}

// Parse runs lexing and parsing, for `--dump-ast`. It returns the first
// diagnostic if lexing produced any errors, or the parser's own error.
func Parse(source, file string) (*ast.Program, *errors.Error) {
	tokens, lexErrs := lexer.Tokenize(source)
	if len(lexErrs) > 0 {
		return nil, errors.New(errors.LexError, lexErrs[0].Pos, lexErrs[0].Message, source, file)
	}
	p := parser.New(tokens, source, file)
	return p.Parse()
}

// Run lexes, parses, and evaluates source, writing OUTPUT to opts.Stdout
// and reading INPUT from opts.Stdin. It returns the first diagnostic
// encountered at any stage.
func Run(source string, opts Options) *errors.Error {
	if opts.Stdin == nil {
		opts.Stdin = strings.NewReader("")
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}

	prog, err := Parse(source, opts.File)
	if err != nil {
		return err
	}

	in := evaluator.New(source, opts.File, opts.Stdin, opts.Stdout)
	in.Trace = opts.Trace
	in.Tracer = opts.Tracer
	return in.Run(prog)
}
