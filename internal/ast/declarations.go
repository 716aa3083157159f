package ast

import (
	"bytes"
	"strings"

	"github.com/example/pseudo/internal/lexer"
)

// Declare is `DECLARE name : Type`.
type Declare struct {
	Token lexer.Token
	Name  string
	Type  string
}

func (d *Declare) statementNode()      {}
func (d *Declare) TokenLiteral() string { return d.Token.Literal }
func (d *Declare) String() string       { return "DECLARE " + d.Name + " : " + d.Type }
func (d *Declare) Pos() lexer.Position  { return d.Token.Pos }

// FieldDef is one `name : Type` entry inside a TYPE block.
type FieldDef struct {
	Name string
	Type string
}

// TypeDef is either a `TYPE ... ENDTYPE` record type definition (Fields
// populated, AliasBase empty) or a pointer-alias form `TYPE T = ^Base`
// (AliasBase set to the pointee scalar type, Fields empty).
type TypeDef struct {
	Token     lexer.Token
	Name      string
	Fields    []FieldDef
	AliasBase string
}

func (t *TypeDef) statementNode()      {}
func (t *TypeDef) TokenLiteral() string { return t.Token.Literal }
func (t *TypeDef) Pos() lexer.Position  { return t.Token.Pos }
func (t *TypeDef) String() string {
	if t.AliasBase != "" {
		return "TYPE " + t.Name + " = ^" + t.AliasBase
	}
	var out bytes.Buffer
	out.WriteString("TYPE " + t.Name + "\n")
	for _, f := range t.Fields {
		out.WriteString("  DECLARE " + f.Name + " : " + f.Type + "\n")
	}
	out.WriteString("ENDTYPE")
	return out.String()
}

// Assign is `target <- value`, where target is a Var, FieldAccess,
// ArrayAccess, or Dereference.
type Assign struct {
	Token  lexer.Token
	Target Expression
	Value  Expression
}

func (a *Assign) statementNode()      {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) String() string       { return a.Target.String() + " <- " + a.Value.String() }
func (a *Assign) Pos() lexer.Position  { return a.Token.Pos }

// Output is `OUTPUT expr, expr, ...`.
type Output struct {
	Token  lexer.Token
	Values []Expression
}

func (o *Output) statementNode()      {}
func (o *Output) TokenLiteral() string { return o.Token.Literal }
func (o *Output) String() string {
	parts := make([]string, len(o.Values))
	for i, v := range o.Values {
		parts[i] = v.String()
	}
	return "OUTPUT " + strings.Join(parts, ", ")
}
func (o *Output) Pos() lexer.Position { return o.Token.Pos }

// Input is `INPUT target`, where Target is a Var, FieldAccess, or
// ArrayAccess.
type Input struct {
	Token  lexer.Token
	Target Expression
}

func (in *Input) statementNode()      {}
func (in *Input) TokenLiteral() string { return in.Token.Literal }
func (in *Input) String() string       { return "INPUT " + in.Target.String() }
func (in *Input) Pos() lexer.Position  { return in.Token.Pos }
