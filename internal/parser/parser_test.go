package parser

import (
	"testing"

	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(src)
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	p := New(tokens, src, "test.pseudo")
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err.Error())
	}
	return prog
}

func TestParseDeclareAndAssign(t *testing.T) {
	prog := parseSource(t, "DECLARE x : INTEGER\nx <- 5")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.Declare)
	if !ok || decl.Name != "x" || decl.Type != "INTEGER" {
		t.Fatalf("unexpected declare: %+v", prog.Statements[0])
	}
	assign, ok := prog.Statements[1].(*ast.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", prog.Statements[1])
	}
	if _, ok := assign.Target.(*ast.Var); !ok {
		t.Fatalf("expected Var target, got %T", assign.Target)
	}
}

func TestExpressionPrecedence(t *testing.T) {
	prog := parseSource(t, "x <- 1 + 2 * 3")
	assign := prog.Statements[0].(*ast.Assign)
	bin, ok := assign.Value.(*ast.BinaryOp)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected top-level +, got %+v", assign.Value)
	}
	right, ok := bin.Right.(*ast.BinaryOp)
	if !ok || right.Operator != "*" {
		t.Fatalf("expected * nested under +, got %+v", bin.Right)
	}
}

func TestLogicalPrecedenceBelowComparison(t *testing.T) {
	prog := parseSource(t, "x <- a < b AND c > d")
	assign := prog.Statements[0].(*ast.Assign)
	and, ok := assign.Value.(*ast.BinaryOp)
	if !ok || and.Operator != "AND" {
		t.Fatalf("expected top-level AND, got %+v", assign.Value)
	}
	if _, ok := and.Left.(*ast.BinaryOp); !ok {
		t.Fatalf("expected comparison nested under AND, got %T", and.Left)
	}
}

func TestParseArrayTypeName(t *testing.T) {
	prog := parseSource(t, "DECLARE nums : ARRAY[1:5] OF INTEGER")
	decl := prog.Statements[0].(*ast.Declare)
	if decl.Type != "ARRAY[1:5] OF INTEGER" {
		t.Fatalf("unexpected array type: %q", decl.Type)
	}
}

func TestParsePointerType(t *testing.T) {
	prog := parseSource(t, "DECLARE p : ^INTEGER")
	decl := prog.Statements[0].(*ast.Declare)
	if decl.Type != "^INTEGER" {
		t.Fatalf("unexpected pointer type: %q", decl.Type)
	}
}

func TestParseTypeDefPointerAlias(t *testing.T) {
	prog := parseSource(t, "TYPE PtrInt = ^INTEGER\nDECLARE p : PtrInt")
	td, ok := prog.Statements[0].(*ast.TypeDef)
	if !ok {
		t.Fatalf("expected TypeDef, got %T", prog.Statements[0])
	}
	if td.Name != "PtrInt" || td.AliasBase != "INTEGER" || len(td.Fields) != 0 {
		t.Fatalf("unexpected alias TypeDef: %+v", td)
	}
	decl, ok := prog.Statements[1].(*ast.Declare)
	if !ok || decl.Type != "PtrInt" {
		t.Fatalf("unexpected declare using alias type: %+v", prog.Statements[1])
	}
}

func TestParseProcedureWithByRefParam(t *testing.T) {
	src := `PROCEDURE Swap(BYREF a : INTEGER, BYREF b : INTEGER)
	DECLARE tmp : INTEGER
	tmp <- a
	a <- b
	b <- tmp
ENDPROCEDURE`
	prog := parseSource(t, src)
	proc := prog.Statements[0].(*ast.ProcedureDef)
	if proc.Name != "Swap" || len(proc.Params) != 2 {
		t.Fatalf("unexpected procedure: %+v", proc)
	}
	if !proc.Params[0].ByRef {
		t.Fatalf("expected BYREF param, got %+v", proc.Params[0])
	}
}

func TestParseFunctionDefaultsToByVal(t *testing.T) {
	src := `FUNCTION Square(n : INTEGER) RETURNS INTEGER
	RETURN n * n
ENDFUNCTION`
	prog := parseSource(t, src)
	fn := prog.Statements[0].(*ast.FunctionDef)
	if fn.Params[0].ByRef {
		t.Fatalf("expected BYVAL by default, got BYREF")
	}
	if fn.ReturnType != "INTEGER" {
		t.Fatalf("unexpected return type: %q", fn.ReturnType)
	}
}

func TestParseReturnWithLeadingNot(t *testing.T) {
	src := `FUNCTION Invert(flag : BOOLEAN) RETURNS BOOLEAN
	RETURN NOT flag
ENDFUNCTION`
	prog := parseSource(t, src)
	fn := prog.Statements[0].(*ast.FunctionDef)
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected Return statement, got %T", fn.Body[0])
	}
	if ret.Value == nil {
		t.Fatalf("expected RETURN NOT flag to carry a value, got bare return")
	}
	if _, ok := ret.Value.(*ast.UnaryOp); !ok {
		t.Fatalf("expected UnaryOp value, got %T", ret.Value)
	}
}

func TestParseForLoopRequiresMatchingNextVar(t *testing.T) {
	src := "FOR i <- 1 TO 10\n  OUTPUT i\nNEXT j"
	tokens, _ := lexer.Tokenize(src)
	p := New(tokens, src, "test.pseudo")
	_, err := p.Parse()
	if err == nil {
		t.Fatalf("expected a syntax error for mismatched NEXT variable")
	}
}

func TestParseCaseOfWithOtherwise(t *testing.T) {
	src := `CASE OF grade
	"A" : OUTPUT "excellent"
	"B" : OUTPUT "good"
	OTHERWISE OUTPUT "unknown"
ENDCASE`
	prog := parseSource(t, src)
	c := prog.Statements[0].(*ast.CaseOf)
	if len(c.Arms) != 2 || c.Otherwise == nil {
		t.Fatalf("unexpected case-of: %+v", c)
	}
}

func TestParseErrorOnMalformedExpression(t *testing.T) {
	tokens, _ := lexer.Tokenize("x <- +")
	p := New(tokens, "x <- +", "test.pseudo")
	_, err := p.Parse()
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
}

func TestParseFieldAccess(t *testing.T) {
	prog := parseSource(t, "x <- rec.total")
	assign := prog.Statements[0].(*ast.Assign)
	fa, ok := assign.Value.(*ast.FieldAccess)
	if !ok || fa.Field != "total" {
		t.Fatalf("unexpected field access: %+v", assign.Value)
	}
}

func TestParseAddressOfAndDereference(t *testing.T) {
	prog := parseSource(t, "DECLARE p : ^INTEGER\np <- ^x\ny <- p^")
	assign := prog.Statements[1].(*ast.Assign)
	if _, ok := assign.Value.(*ast.AddressOf); !ok {
		t.Fatalf("expected AddressOf, got %T", assign.Value)
	}
	assign2 := prog.Statements[2].(*ast.Assign)
	if _, ok := assign2.Value.(*ast.Dereference); !ok {
		t.Fatalf("expected Dereference, got %T", assign2.Value)
	}
}
