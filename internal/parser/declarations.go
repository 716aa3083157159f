package parser

import (
	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/lexer"
)

// parseDeclare parses `DECLARE name : Type`, where Type is a scalar type
// keyword, a user-defined TYPE name, a pointer type (`^INTEGER`), or an
// array type (`ARRAY[1:5] OF INTEGER` / `ARRAY[1:3, 1:3] OF INTEGER`).
func (p *Parser) parseDeclare() *ast.Declare {
	tok := p.expect(lexer.DECLARE)
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.COLON)

	typeName := p.parseTypeName()
	return &ast.Declare{Token: tok, Name: name, Type: typeName}
}

// parseTypeName parses everything that can follow a `:` in a DECLARE,
// parameter, field, or return-type position, returning its canonical
// textual form. Pointer and array types are encoded as strings (`^INTEGER`,
// `ARRAY[1:5] OF INTEGER`) since ast.Declare.Type is a plain string; the
// evaluator re-parses this form when it needs the structured shape.
func (p *Parser) parseTypeName() string {
	if p.cur.is(lexer.CARET) {
		p.cur.advance()
		base := p.expectBaseType()
		return "^" + base
	}
	if p.cur.is(lexer.ARRAY) {
		return p.parseArrayTypeName()
	}
	return p.expectTypeIdent()
}

func (p *Parser) parseArrayTypeName() string {
	p.expect(lexer.ARRAY)
	p.expect(lexer.LBRACKET)

	bounds := ""
	for {
		low := p.expect(lexer.NUMBER).Literal
		p.expect(lexer.COLON)
		high := p.expect(lexer.NUMBER).Literal
		if bounds != "" {
			bounds += ", "
		}
		bounds += low + ":" + high
		if p.cur.is(lexer.COMMA) {
			p.cur.advance()
			continue
		}
		break
	}
	p.expect(lexer.RBRACKET)
	p.expect(lexer.OF)
	base := p.expectTypeIdent()
	return "ARRAY[" + bounds + "] OF " + base
}

// expectBaseType consumes a scalar type keyword, used after `^`.
func (p *Parser) expectBaseType() string {
	tok := p.cur.current()
	if !scalarTypes[tok.Literal] {
		p.fail("unknown base type for pointer: %q", tok.Literal)
	}
	p.cur.advance()
	return tok.Literal
}

// expectTypeIdent consumes a scalar type keyword or a user-defined TYPE
// name (a plain identifier).
func (p *Parser) expectTypeIdent() string {
	tok := p.cur.current()
	if scalarTypes[tok.Literal] {
		p.cur.advance()
		return tok.Literal
	}
	if tok.Type == lexer.IDENT {
		p.cur.advance()
		if !p.userTypes[tok.Literal] {
			p.fail("unknown type: %q", tok.Literal)
		}
		return tok.Literal
	}
	p.fail("expected a type name, got %s %q", tok.Type, tok.Literal)
	return ""
}

// parseTypeDef parses either a record definition
// (`TYPE Name DECLARE field : Type ... ENDTYPE`) or a pointer-alias form
// (`TYPE Name = ^Base`).
func (p *Parser) parseTypeDef() *ast.TypeDef {
	tok := p.expect(lexer.TYPE)
	name := p.expect(lexer.IDENT).Literal
	p.userTypes[name] = true

	if p.cur.is(lexer.EQ) {
		p.cur.advance()
		p.expect(lexer.CARET)
		base := p.expectBaseType()
		return &ast.TypeDef{Token: tok, Name: name, AliasBase: base}
	}

	var fields []ast.FieldDef
	for !p.cur.is(lexer.ENDTYPE) {
		p.expect(lexer.DECLARE)
		fieldName := p.expect(lexer.IDENT).Literal
		p.expect(lexer.COLON)
		fieldType := p.parseTypeName()
		fields = append(fields, ast.FieldDef{Name: fieldName, Type: fieldType})
	}
	p.expect(lexer.ENDTYPE)
	return &ast.TypeDef{Token: tok, Name: name, Fields: fields}
}

// parseOutput parses `OUTPUT expr, expr, ...`.
func (p *Parser) parseOutput() *ast.Output {
	tok := p.expect(lexer.OUTPUT)
	values := []ast.Expression{p.parseExpression(LOWEST)}
	for p.cur.is(lexer.COMMA) {
		p.cur.advance()
		values = append(values, p.parseExpression(LOWEST))
	}
	return &ast.Output{Token: tok, Values: values}
}

// parseInput parses `INPUT target`, where target is any lvalue.
func (p *Parser) parseInput() *ast.Input {
	tok := p.expect(lexer.INPUT)
	target := p.parseLValue()
	return &ast.Input{Token: tok, Target: target}
}

// parseAssign parses `target <- value`.
func (p *Parser) parseAssign() *ast.Assign {
	target := p.parseLValue()
	tok := p.expect(lexer.ASSIGN)
	value := p.parseExpression(LOWEST)
	return &ast.Assign{Token: tok, Target: target, Value: value}
}
