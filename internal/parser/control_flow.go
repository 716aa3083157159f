package parser

import (
	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/lexer"
)

// parseIf parses `IF cond THEN ... [ELSE ...] ENDIF`.
func (p *Parser) parseIf() *ast.If {
	tok := p.expect(lexer.IF)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.THEN)

	then := p.parseBlockUntil(lexer.ELSE, lexer.ENDIF)

	var elseBody []ast.Statement
	if p.cur.is(lexer.ELSE) {
		p.cur.advance()
		elseBody = p.parseBlockUntil(lexer.ENDIF)
	}
	p.expect(lexer.ENDIF)

	return &ast.If{Token: tok, Condition: cond, Then: then, Else: elseBody}
}

// parseWhile parses `WHILE cond ... ENDWHILE`.
func (p *Parser) parseWhile() *ast.While {
	tok := p.expect(lexer.WHILE)
	cond := p.parseExpression(LOWEST)
	body := p.parseBlockUntil(lexer.ENDWHILE)
	p.expect(lexer.ENDWHILE)
	return &ast.While{Token: tok, Condition: cond, Body: body}
}

// parseRepeat parses `REPEAT ... UNTIL cond`.
func (p *Parser) parseRepeat() *ast.RepeatUntil {
	tok := p.expect(lexer.REPEAT)
	body := p.parseBlockUntil(lexer.UNTIL)
	p.expect(lexer.UNTIL)
	cond := p.parseExpression(LOWEST)
	return &ast.RepeatUntil{Token: tok, Body: body, Condition: cond}
}

// parseFor parses `FOR var <- start TO end ... NEXT var`.
func (p *Parser) parseFor() *ast.For {
	tok := p.expect(lexer.FOR)
	varName := p.expect(lexer.IDENT).Literal
	p.expect(lexer.ASSIGN)
	start := p.parseExpression(LOWEST)
	p.expect(lexer.TO)
	end := p.parseExpression(LOWEST)

	body := p.parseBlockUntil(lexer.NEXT)
	p.expect(lexer.NEXT)
	nextVar := p.expect(lexer.IDENT).Literal
	if nextVar != varName {
		p.fail("NEXT %s does not match FOR %s", nextVar, varName)
	}

	return &ast.For{Token: tok, VarName: varName, Start: start, End: end, Body: body}
}

// parseCaseOf parses `CASE OF expr label: stmt ... [OTHERWISE stmt] ENDCASE`.
// Each arm holds exactly one statement, matching the original grammar; a
// multi-statement arm can still be expressed since IF/WHILE/etc. are
// themselves single statements.
func (p *Parser) parseCaseOf() *ast.CaseOf {
	tok := p.expect(lexer.CASE)
	p.expect(lexer.OF)
	subject := p.parseExpression(LOWEST)

	var arms []ast.CaseArm
	var otherwise ast.Statement

	for !p.cur.is(lexer.ENDCASE) {
		if p.cur.is(lexer.OTHERWISE) {
			p.cur.advance()
			otherwise = p.parseStatement()
			continue
		}
		label := p.parseCaseLabel()
		p.expect(lexer.COLON)
		stmt := p.parseStatement()
		arms = append(arms, ast.CaseArm{Label: label, Statement: stmt})
	}
	p.expect(lexer.ENDCASE)

	return &ast.CaseOf{Token: tok, Subject: subject, Arms: arms, Otherwise: otherwise}
}

// parseCaseLabel parses a CASE OF arm label: a NUMBER, STRING, or bare
// IDENTIFIER literal (SPEC_FULL.md Open Question 3).
func (p *Parser) parseCaseLabel() ast.Expression {
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
	default:
		p.fail("unexpected CASE OF label: %s %q", tok.Type, tok.Literal)
		return nil
	}
}
