package errors

import (
	"strings"
	"testing"

	"github.com/example/pseudo/internal/lexer"
)

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	source := "DECLARE x : INTEGER\nx <- y + 1"
	pos := lexer.Position{Line: 2, Column: 6}
	err := New(NameError, pos, `variable "y" used before declaration`, source, "prog.pseudo")

	out := err.Format(false)
	if !strings.Contains(out, "NameError") {
		t.Errorf("expected kind in output, got %q", out)
	}
	if !strings.Contains(out, "prog.pseudo:2:6") {
		t.Errorf("expected file:line:col in output, got %q", out)
	}
	if !strings.Contains(out, "x <- y + 1") {
		t.Errorf("expected offending source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret in output, got %q", out)
	}
}

func TestFormatWithoutFileUsesLineOnly(t *testing.T) {
	err := New(SyntaxError, lexer.Position{Line: 1, Column: 1}, "unexpected token", "", "")
	out := err.Format(false)
	if !strings.Contains(out, "line 1:1") {
		t.Errorf("expected bare line reference, got %q", out)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		UsageError:  "UsageError",
		LexError:    "LexError",
		SyntaxError: "SyntaxError",
		NameError:   "NameError",
		TypeError:   "TypeError",
		RangeError:  "RangeError",
		InputError:  "InputError",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestListFormatJoinsAllErrors(t *testing.T) {
	list := List{
		New(LexError, lexer.Position{Line: 1, Column: 1}, "first", "", ""),
		New(SyntaxError, lexer.Position{Line: 2, Column: 1}, "second", "", ""),
	}
	out := list.Format(false)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("expected both messages in joined output, got %q", out)
	}
}
