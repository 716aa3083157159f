package parser

import (
	"strconv"

	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/lexer"
)

// parseExpression implements precedence climbing: it parses a unary/
// primary operand, then repeatedly absorbs binary operators whose
// precedence is at least minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary()

	for {
		opPrec, ok := binaryPrecedence[p.cur.current().Type]
		if !ok || opPrec < minPrec {
			break
		}
		opTok := p.cur.advance()
		right := p.parseExpression(opPrec + 1)
		left = &ast.BinaryOp{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}

	return left
}

// parseUnary handles the prefix operators: unary minus, NOT, and the
// address-of operator `^`.
func (p *Parser) parseUnary() ast.Expression {
	tok := p.cur.current()
	switch tok.Type {
	case lexer.MINUS:
		p.cur.advance()
		return &ast.UnaryOp{Token: tok, Operator: "-", Operand: p.parseExpression(UNARY_PREC)}
	case lexer.NOT:
		p.cur.advance()
		return &ast.UnaryOp{Token: tok, Operator: "NOT", Operand: p.parseExpression(UNARY_PREC)}
	case lexer.CARET:
		p.cur.advance()
		return &ast.AddressOf{Token: tok, Target: p.parseExpression(UNARY_PREC)}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by any chain of
// `.field`, `[index, ...]`, or trailing `^` dereference operators, and
// recognizes a trailing `(args)` as a function call when the primary was
// a bare identifier.
func (p *Parser) parsePostfix() ast.Expression {
	node := p.parsePrimary()

	for {
		switch {
		case p.cur.is(lexer.DOT):
			ident, ok := node.(*ast.Var)
			if !ok {
				p.fail("'.' may only follow a variable name")
			}
			dotTok := p.cur.advance()
			field := p.expect(lexer.IDENT).Literal
			node = &ast.FieldAccess{Token: dotTok, Var: ident, Field: field}
		case p.cur.is(lexer.LBRACKET):
			ident, ok := node.(*ast.Var)
			if !ok {
				p.fail("'[' may only follow a variable name")
			}
			brTok := p.cur.advance()
			indices := []ast.Expression{p.parseExpression(LOWEST)}
			for p.cur.is(lexer.COMMA) {
				p.cur.advance()
				indices = append(indices, p.parseExpression(LOWEST))
			}
			p.expect(lexer.RBRACKET)
			node = &ast.ArrayAccess{Token: brTok, Name: ident.Name, Indices: indices}
		case p.cur.is(lexer.CARET):
			caretTok := p.cur.advance()
			node = &ast.Dereference{Token: caretTok, Pointer: node}
		case p.cur.is(lexer.LPAREN):
			ident, ok := node.(*ast.Var)
			if !ok {
				p.fail("'(' may only follow a callable name")
			}
			callTok := p.cur.current()
			args := p.parseCallArgs()
			node = &ast.Call{Token: callTok, Name: ident.Name, Args: args}
		default:
			return node
		}
	}
}

// parsePrimary parses a literal, a bare variable, or a parenthesized
// sub-expression.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur.current()
	switch tok.Type {
	case lexer.NUMBER:
		return p.parseNumberLiteral()
	case lexer.STRING:
		p.cur.advance()
		return &ast.String{Token: tok, Value: tok.Literal}
	case lexer.IDENT:
		p.cur.advance()
		return &ast.Var{Token: tok, Name: tok.Literal}
	case lexer.LPAREN:
		p.cur.advance()
		inner := p.parseExpression(LOWEST)
		p.expect(lexer.RPAREN)
		return inner
	default:
		p.fail("invalid operand: %s %q", tok.Type, tok.Literal)
		return nil
	}
}

func (p *Parser) parseNumberLiteral() *ast.Number {
	tok := p.expect(lexer.NUMBER)
	isReal := false
	for _, ch := range tok.Literal {
		if ch == '.' {
			isReal = true
			break
		}
	}
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.fail("invalid numeric literal %q", tok.Literal)
	}
	return &ast.Number{Token: tok, Value: value, IsReal: isReal}
}

// parseLValue parses an assignment/INPUT target: a variable, optionally
// followed by one field access, one array index, or a chain of pointer
// dereferences. This mirrors parsePostfix's cases but does not accept a
// trailing call, since a call is never an assignable target.
func (p *Parser) parseLValue() ast.Expression {
	tok := p.expect(lexer.IDENT)
	var node ast.Expression = &ast.Var{Token: tok, Name: tok.Literal}

	if p.cur.is(lexer.DOT) {
		dotTok := p.cur.advance()
		field := p.expect(lexer.IDENT).Literal
		node = &ast.FieldAccess{Token: dotTok, Var: node, Field: field}
	}

	if p.cur.is(lexer.LBRACKET) {
		brTok := p.cur.advance()
		indices := []ast.Expression{p.parseExpression(LOWEST)}
		for p.cur.is(lexer.COMMA) {
			p.cur.advance()
			indices = append(indices, p.parseExpression(LOWEST))
		}
		p.expect(lexer.RBRACKET)
		node = &ast.ArrayAccess{Token: brTok, Name: tok.Literal, Indices: indices}
	}

	for p.cur.is(lexer.CARET) {
		caretTok := p.cur.advance()
		node = &ast.Dereference{Token: caretTok, Pointer: node}
	}

	return node
}
