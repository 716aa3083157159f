// Package ast: procedure/function declaration and call-statement nodes.
package ast

import (
	"bytes"
	"strings"

	"github.com/example/pseudo/internal/lexer"
)

// Param is one formal parameter of a PROCEDURE or FUNCTION.
type Param struct {
	Name  string
	Type  string
	ByRef bool // set by the BYREF keyword; BYVAL (false) is the default
}

func (p Param) String() string {
	mode := "BYVAL"
	if p.ByRef {
		mode = "BYREF"
	}
	return mode + " " + p.Name + " : " + p.Type
}

// ProcedureDef is `PROCEDURE name(params) ... ENDPROCEDURE`.
type ProcedureDef struct {
	Token  lexer.Token
	Name   string
	Params []Param
	Body   []Statement
}

func (p *ProcedureDef) statementNode()      {}
func (p *ProcedureDef) TokenLiteral() string { return p.Token.Literal }
func (p *ProcedureDef) Pos() lexer.Position  { return p.Token.Pos }
func (p *ProcedureDef) String() string {
	var out bytes.Buffer
	parts := make([]string, len(p.Params))
	for i, prm := range p.Params {
		parts[i] = prm.String()
	}
	out.WriteString("PROCEDURE " + p.Name + "(" + strings.Join(parts, ", ") + ")\n")
	out.WriteString(BlockString(p.Body))
	out.WriteString("\nENDPROCEDURE")
	return out.String()
}

// FunctionDef is `FUNCTION name(params) RETURNS Type ... ENDFUNCTION`.
type FunctionDef struct {
	Token      lexer.Token
	Name       string
	Params     []Param
	ReturnType string
	Body       []Statement
}

func (f *FunctionDef) statementNode()      {}
func (f *FunctionDef) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDef) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDef) String() string {
	var out bytes.Buffer
	parts := make([]string, len(f.Params))
	for i, prm := range f.Params {
		parts[i] = prm.String()
	}
	out.WriteString("FUNCTION " + f.Name + "(" + strings.Join(parts, ", ") + ") RETURNS " + f.ReturnType + "\n")
	out.WriteString(BlockString(f.Body))
	out.WriteString("\nENDFUNCTION")
	return out.String()
}

// CallStmt is a CALL used as a statement: `CALL name(args)`, discarding
// any return value.
type CallStmt struct {
	Token lexer.Token
	Call  *Call
}

func (c *CallStmt) statementNode()      {}
func (c *CallStmt) TokenLiteral() string { return c.Token.Literal }
func (c *CallStmt) Pos() lexer.Position  { return c.Token.Pos }
func (c *CallStmt) String() string       { return "CALL " + c.Call.String() }

// Return is `RETURN [expr]`. Value is nil for a bare RETURN inside a
// PROCEDURE or a value-less RETURN inside a FUNCTION.
type Return struct {
	Token lexer.Token
	Value Expression
}

func (r *Return) statementNode()      {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() lexer.Position  { return r.Token.Pos }
func (r *Return) String() string {
	if r.Value == nil {
		return "RETURN"
	}
	return "RETURN " + r.Value.String()
}
