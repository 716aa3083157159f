// Package ast defines the Abstract Syntax Tree node types for pseudocode
// programs.
package ast

import (
	"bytes"
	"strings"

	"github.com/example/pseudo/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token the node starts at.
	TokenLiteral() string

	// String renders the node for debugging and `--dump-ast`.
	String() string

	// Pos returns the node's source position for error reporting.
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself producing
// a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a flat list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Identifier names a variable, parameter, field, or callable.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }

// Var is a bare variable reference used as an expression.
type Var struct {
	Token lexer.Token
	Name  string
}

func (v *Var) expressionNode()      {}
func (v *Var) TokenLiteral() string { return v.Token.Literal }
func (v *Var) String() string       { return v.Name }
func (v *Var) Pos() lexer.Position  { return v.Token.Pos }

// Number is an INTEGER or REAL literal; Value always carries the parsed
// float64 form, IsReal distinguishes an INTEGER literal (123) from a REAL
// one (123.0) for the evaluator's coercion rules.
type Number struct {
	Token  lexer.Token
	Value  float64
	IsReal bool
}

func (n *Number) expressionNode()      {}
func (n *Number) TokenLiteral() string { return n.Token.Literal }
func (n *Number) String() string       { return n.Token.Literal }
func (n *Number) Pos() lexer.Position  { return n.Token.Pos }

// String is a double-quoted string literal.
type String struct {
	Token lexer.Token
	Value string
}

func (s *String) expressionNode()      {}
func (s *String) TokenLiteral() string { return s.Token.Literal }
func (s *String) String() string       { return "\"" + s.Value + "\"" }
func (s *String) Pos() lexer.Position  { return s.Token.Pos }

// BinaryOp is a two-operand expression: arithmetic, comparison, logical,
// or string-concatenation (`&`).
type BinaryOp struct {
	Token    lexer.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryOp) expressionNode()      {}
func (b *BinaryOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}
func (b *BinaryOp) Pos() lexer.Position { return b.Token.Pos }

// UnaryOp is a single-operand prefix expression: unary minus or NOT.
type UnaryOp struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOp) String() string       { return "(" + u.Operator + u.Operand.String() + ")" }
func (u *UnaryOp) Pos() lexer.Position  { return u.Token.Pos }

// FieldAccess is `record.field`.
type FieldAccess struct {
	Token lexer.Token
	Var   Expression
	Field string
}

func (f *FieldAccess) expressionNode()      {}
func (f *FieldAccess) TokenLiteral() string { return f.Token.Literal }
func (f *FieldAccess) String() string       { return f.Var.String() + "." + f.Field }
func (f *FieldAccess) Pos() lexer.Position  { return f.Token.Pos }

// ArrayAccess is `name[i]` or `name[i, j]`.
type ArrayAccess struct {
	Token   lexer.Token
	Name    string
	Indices []Expression
}

func (a *ArrayAccess) expressionNode()      {}
func (a *ArrayAccess) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayAccess) String() string {
	parts := make([]string, len(a.Indices))
	for i, idx := range a.Indices {
		parts[i] = idx.String()
	}
	return a.Name + "[" + strings.Join(parts, ", ") + "]"
}
func (a *ArrayAccess) Pos() lexer.Position { return a.Token.Pos }

// AddressOf is `^x`, producing a pointer referent to x.
type AddressOf struct {
	Token  lexer.Token
	Target Expression
}

func (a *AddressOf) expressionNode()      {}
func (a *AddressOf) TokenLiteral() string { return a.Token.Literal }
func (a *AddressOf) String() string       { return "^" + a.Target.String() }
func (a *AddressOf) Pos() lexer.Position  { return a.Token.Pos }

// Dereference is `p^`, reading or writing through a pointer.
type Dereference struct {
	Token   lexer.Token
	Pointer Expression
}

func (d *Dereference) expressionNode()      {}
func (d *Dereference) TokenLiteral() string { return d.Token.Literal }
func (d *Dereference) String() string       { return d.Pointer.String() + "^" }
func (d *Dereference) Pos() lexer.Position  { return d.Token.Pos }

// Call is a function or procedure invocation used as an expression
// (function call) or wrapped by CallStmt (procedure call).
type Call struct {
	Token lexer.Token
	Name  string
	Args  []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (c *Call) Pos() lexer.Position { return c.Token.Pos }
