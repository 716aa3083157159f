// Package parser implements a hand-written, recursive-descent,
// one-token-lookahead parser for pseudocode source, built directly over
// the token stream produced by internal/lexer.
package parser

import (
	"fmt"

	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/errors"
	"github.com/example/pseudo/internal/lexer"
)

// Precedence levels for expression parsing, lowest to highest, per
// SPEC_FULL.md's precedence-climbing resolution of spec.md §9.
const (
	_ int = iota
	LOWEST
	OR_PREC
	AND_PREC
	NOT_PREC
	COMPARE_PREC // = <> < > <= >=
	CONCAT_PREC  // &
	SUM_PREC     // + -
	PRODUCT_PREC // * /
	UNARY_PREC   // unary - and NOT
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OR:       OR_PREC,
	lexer.AND:      AND_PREC,
	lexer.EQ:       COMPARE_PREC,
	lexer.NEQ:      COMPARE_PREC,
	lexer.LT:       COMPARE_PREC,
	lexer.GT:       COMPARE_PREC,
	lexer.LTE:      COMPARE_PREC,
	lexer.GTE:      COMPARE_PREC,
	lexer.STRCOMB:  CONCAT_PREC,
	lexer.PLUS:     SUM_PREC,
	lexer.MINUS:    SUM_PREC,
	lexer.ASTERISK: PRODUCT_PREC,
	lexer.SLASH:    PRODUCT_PREC,
}

var scalarTypes = map[string]bool{
	"INTEGER": true,
	"REAL":    true,
	"STRING":  true,
	"CHAR":    true,
	"BOOLEAN": true,
	"DATE":    true,
}

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	cur    *cursor
	source string
	file   string

	userTypes map[string]bool
}

// New builds a Parser over tokens already produced by the lexer.
func New(tokens []lexer.Token, source, file string) *Parser {
	return &Parser{
		cur:       newCursor(tokens),
		source:    source,
		file:      file,
		userTypes: make(map[string]bool),
	}
}

// Parse runs the parser to completion, returning the program and any
// syntax error encountered. Unlike the lexer, the parser stops at the
// first error: later productions generally can't be trusted once one
// fails, since the token stream is no longer at a known grammar boundary.
func (p *Parser) Parse() (prog *ast.Program, err *errors.Error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*parseError)
			if !ok {
				panic(r)
			}
			err = errors.New(errors.SyntaxError, pe.pos, pe.message, p.source, p.file)
		}
	}()

	prog = &ast.Program{}
	for !p.cur.atEnd() {
		prog.Statements = append(prog.Statements, p.parseStatement())
	}
	return prog, nil
}

func (p *Parser) fail(format string, args ...interface{}) {
	panic(&parseError{message: fmt.Sprintf(format, args...), pos: p.cur.current().Pos})
}

// expect consumes the current token if it has type tt, else fails.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if !p.cur.is(tt) {
		p.fail("expected %s, got %s %q", tt, p.cur.current().Type, p.cur.current().Literal)
	}
	return p.cur.advance()
}

func (p *Parser) isKeyword(literal string) bool {
	return p.cur.current().Literal == literal && p.cur.current().Type.IsKeyword()
}

// parseStatement dispatches on the current token to the matching
// production, mirroring parse_statement in the original interpreter.
func (p *Parser) parseStatement() ast.Statement {
	tok := p.cur.current()

	switch tok.Type {
	case lexer.DECLARE:
		return p.parseDeclare()
	case lexer.TYPE:
		return p.parseTypeDef()
	case lexer.OUTPUT:
		return p.parseOutput()
	case lexer.INPUT:
		return p.parseInput()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.REPEAT:
		return p.parseRepeat()
	case lexer.CASE:
		return p.parseCaseOf()
	case lexer.PROCEDURE:
		return p.parseProcedureDef()
	case lexer.FUNCTION:
		return p.parseFunctionDef()
	case lexer.CALL:
		return p.parseCallStmt()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IDENT, lexer.CARET:
		return p.parseAssign()
	default:
		p.fail("unexpected start of statement: %s %q", tok.Type, tok.Literal)
		return nil
	}
}

// parseBlockUntil collects statements until the current token matches one
// of the given stop keywords (without consuming the stop token).
func (p *Parser) parseBlockUntil(stops ...lexer.TokenType) []ast.Statement {
	var stmts []ast.Statement
	for !p.cur.atEnd() && !p.atStop(stops...) {
		stmts = append(stmts, p.parseStatement())
	}
	return stmts
}

func (p *Parser) atStop(stops ...lexer.TokenType) bool {
	for _, s := range stops {
		if p.cur.is(s) {
			return true
		}
	}
	return false
}
