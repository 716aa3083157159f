package parser

import (
	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/lexer"
)

// parseParam parses one `[BYREF|BYVAL] name : Type` formal parameter.
func (p *Parser) parseParam() ast.Param {
	byRef := false
	if p.cur.is(lexer.BYREF) {
		p.cur.advance()
		byRef = true
	} else if p.cur.is(lexer.BYVAL) {
		p.cur.advance()
	}

	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.COLON)
	typeName := p.parseTypeName()

	return ast.Param{Name: name, Type: typeName, ByRef: byRef}
}

// parseParamList parses an optional, parenthesized, comma-separated
// parameter list. An absent `(` means zero parameters.
func (p *Parser) parseParamList() []ast.Param {
	if !p.cur.is(lexer.LPAREN) {
		return nil
	}
	p.expect(lexer.LPAREN)

	var params []ast.Param
	for !p.cur.is(lexer.RPAREN) {
		params = append(params, p.parseParam())
		if p.cur.is(lexer.COMMA) {
			p.cur.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)
	return params
}

// parseProcedureDef parses `PROCEDURE name(params) ... ENDPROCEDURE`.
func (p *Parser) parseProcedureDef() *ast.ProcedureDef {
	tok := p.expect(lexer.PROCEDURE)
	name := p.expect(lexer.IDENT).Literal
	params := p.parseParamList()
	body := p.parseBlockUntil(lexer.ENDPROCEDURE)
	p.expect(lexer.ENDPROCEDURE)
	return &ast.ProcedureDef{Token: tok, Name: name, Params: params, Body: body}
}

// parseFunctionDef parses `FUNCTION name(params) RETURNS Type ... ENDFUNCTION`.
func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	tok := p.expect(lexer.FUNCTION)
	name := p.expect(lexer.IDENT).Literal
	params := p.parseParamList()
	p.expect(lexer.RETURNS)
	returnType := p.parseTypeName()
	body := p.parseBlockUntil(lexer.ENDFUNCTION)
	p.expect(lexer.ENDFUNCTION)
	return &ast.FunctionDef{Token: tok, Name: name, Params: params, ReturnType: returnType, Body: body}
}

// parseCallStmt parses `CALL name(args)` as a statement.
func (p *Parser) parseCallStmt() *ast.CallStmt {
	tok := p.expect(lexer.CALL)
	name := p.expect(lexer.IDENT).Literal
	args := p.parseCallArgs()
	return &ast.CallStmt{Token: tok, Call: &ast.Call{Token: tok, Name: name, Args: args}}
}

// parseCallArgs parses an optional, parenthesized, comma-separated
// argument list.
func (p *Parser) parseCallArgs() []ast.Expression {
	if !p.cur.is(lexer.LPAREN) {
		return nil
	}
	p.expect(lexer.LPAREN)
	var args []ast.Expression
	for !p.cur.is(lexer.RPAREN) {
		args = append(args, p.parseExpression(LOWEST))
		if p.cur.is(lexer.COMMA) {
			p.cur.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)
	return args
}

// parseReturn parses `RETURN [expr]`. A following token ends the bare form
// only if it can't begin an expression itself; NOT is a keyword but also a
// valid unary expression prefix, so `RETURN NOT flag` must still parse as
// a value return.
func (p *Parser) parseReturn() *ast.Return {
	tok := p.expect(lexer.RETURN)
	cur := p.cur.current().Type
	if p.cur.atEnd() || (cur.IsKeyword() && cur != lexer.NOT) {
		return &ast.Return{Token: tok}
	}
	return &ast.Return{Token: tok, Value: p.parseExpression(LOWEST)}
}
