// Package errors formats interpreter diagnostics with source context,
// line/column information, and a caret pointing at the offending token.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/example/pseudo/internal/lexer"
)

// Kind classifies a diagnostic into one of the taxonomy buckets.
type Kind int

const (
	// UsageError covers CLI misuse: a source file without the .pseudo
	// extension.
	UsageError Kind = iota
	// LexError covers unrecognized characters and unterminated literals.
	LexError
	// SyntaxError covers tokens that don't fit any grammar production.
	SyntaxError
	// NameError covers undeclared variables, unknown callables, and
	// duplicate callable definitions.
	NameError
	// TypeError covers operations applied to values of the wrong type.
	TypeError
	// RangeError covers out-of-bounds array access, a wrong number of array
	// indices, division by zero, a negative RIGHT length, and exceeding the
	// maximum call depth.
	RangeError
	// InputError covers INPUT values that don't parse as the target type.
	InputError
)

func (k Kind) String() string {
	switch k {
	case UsageError:
		return "UsageError"
	case LexError:
		return "LexError"
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case RangeError:
		return "RangeError"
	case InputError:
		return "InputError"
	default:
		return "Error"
	}
}

// Error is a single diagnostic: a kind, message, and the source context
// needed to render a caret under the offending position.
type Error struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	Source  string
	File    string
}

// New builds an Error of the given kind.
func New(kind Kind, pos lexer.Position, message, source, file string) *Error {
	return &Error{Kind: kind, Message: message, Pos: pos, Source: source, File: file}
}

// Error implements the error interface with no color.
func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic. If useColor is true, the kind and the
// caret are styled with github.com/fatih/color.
func (e *Error) Format(useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if useColor {
		header = color.New(color.FgRed, color.Bold).Sprint(header)
	}

	if e.File != "" {
		fmt.Fprintf(&sb, "%s\n  --> %s:%d:%d\n", header, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s\n  --> line %d:%d\n", header, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		caretPad := strings.Repeat(" ", len(lineNumStr)+maxInt(e.Pos.Column-1, 0))
		caret := "^"
		if useColor {
			caret = color.New(color.FgRed, color.Bold).Sprint(caret)
		}
		sb.WriteString(caretPad)
		sb.WriteString(caret)
	}

	return sb.String()
}

func (e *Error) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// List is an accumulated set of diagnostics, used for the lexer's errors
// since the lexer keeps scanning after a first error instead of aborting.
// The parser stops at its first error and reports a single *Error.
type List []*Error

// Format renders every error in the list, separated by blank lines.
func (l List) Format(useColor bool) string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Format(useColor)
	}
	return strings.Join(parts, "\n\n")
}
