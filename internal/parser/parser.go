// Package parser turns a token stream into a rill AST.
//
// The parser is a handwritten recursive descent parser with Pratt-style
// operator precedence for expressions. It owns two tokens of lookahead
// (curToken and peekToken) and records errors instead of stopping, so a
// single parse reports every syntax problem it can recover from.
package parser

import (
	"fmt"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// Operator binding powers, lowest first.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // =
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x +x
	CALL        // f(...)
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:  ASSIGNMENT,
	lexer.EQ:      EQUALS,
	lexer.NOT_EQ:  EQUALS,
	lexer.LT:      LESSGREATER,
	lexer.GT:      LESSGREATER,
	lexer.LT_EQ:   LESSGREATER,
	lexer.GT_EQ:   LESSGREATER,
	lexer.PLUS:    SUM,
	lexer.MINUS:   SUM,
	lexer.STAR:    PRODUCT,
	lexer.SLASH:   PRODUCT,
	lexer.PERCENT: PRODUCT,
	lexer.LPAREN:  CALL,
}

// ParseError is a single syntax error with its position.
type ParseError struct {
	Pos     lexer.Position
	Message string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser parses one unit from a lexer.
type Parser struct {
	l      *lexer.Lexer
	errors []ParseError

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading from the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:  p.parseIdentifier,
		lexer.NUMBER: p.parseNumberLiteral,
		lexer.TRUE:   p.parseBooleanLiteral,
		lexer.FALSE:  p.parseBooleanLiteral,
		lexer.MINUS:  p.parsePrefixExpression,
		lexer.PLUS:   p.parsePrefixExpression,
		lexer.LPAREN: p.parseGroupedExpression,
		lexer.IF:     p.parseIfExpression,
	}
	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:    p.parseBinaryExpression,
		lexer.MINUS:   p.parseBinaryExpression,
		lexer.STAR:    p.parseBinaryExpression,
		lexer.SLASH:   p.parseBinaryExpression,
		lexer.PERCENT: p.parseBinaryExpression,
		lexer.EQ:      p.parseBinaryExpression,
		lexer.NOT_EQ:  p.parseBinaryExpression,
		lexer.LT:      p.parseBinaryExpression,
		lexer.GT:      p.parseBinaryExpression,
		lexer.LT_EQ:   p.parseBinaryExpression,
		lexer.GT_EQ:   p.parseBinaryExpression,
		lexer.LPAREN:  p.parseCallExpression,
		lexer.ASSIGN:  p.parseAssignExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns all syntax errors found so far.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) addError(pos lexer.Position, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances when the next token matches, or records an error.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.addError(p.peekToken.Pos, "expected %s, got %s", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// skipNewlines advances past any NEWLINE tokens at curToken.
func (p *Parser) skipNewlines() {
	for p.curIs(lexer.NEWLINE) {
		p.nextToken()
	}
}

// sync skips forward to the next statement boundary after an error.
func (p *Parser) sync() {
	for !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.DEDENT) && !p.curIs(lexer.EOF) {
		p.nextToken()
	}
}

// ParseUnit parses the entire input as one compilation unit.
func (p *Parser) ParseUnit() *ast.Unit {
	unit := &ast.Unit{}
	p.skipNewlines()
	for !p.curIs(lexer.EOF) {
		switch p.curToken.Type {
		case lexer.FN:
			if fn := p.parseFunctionDecl(); fn != nil {
				unit.Items = append(unit.Items, fn)
			}
		default:
			p.addError(p.curToken.Pos, "expected fn, got %s", p.curToken.Type)
			p.sync()
		}
		p.nextToken()
		p.skipNewlines()
	}
	return unit
}

// parseFunctionDecl parses `fn name(params) [-> type]` and its body.
// curToken is the fn keyword on entry; the trailing DEDENT of the body
// is current on exit.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	fn := &ast.FunctionDecl{Token: p.curToken}

	if !p.expectPeek(lexer.IDENT) {
		p.sync()
		return nil
	}
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.LPAREN) {
		p.sync()
		return nil
	}
	fn.Params = p.parseParams()
	if fn.Params == nil {
		p.sync()
		return nil
	}

	if p.peekIs(lexer.ARROW) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseTypeAnnotation()
		if fn.ReturnType == nil {
			p.sync()
			return nil
		}
		fn.ExplicitReturn = true
	} else {
		// An omitted return type means ().
		fn.ReturnType = unitAnnotation(fn.Token)
	}

	if !p.expectPeek(lexer.NEWLINE) {
		p.sync()
		return nil
	}
	if !p.expectPeek(lexer.INDENT) {
		return nil
	}
	fn.Body = p.parseBlock()
	return fn
}

// parseParams parses a parenthesized parameter list. curToken is the
// opening paren on entry and the closing paren on exit. Returns nil on
// error; an empty list parses to a non-nil empty slice.
func (p *Parser) parseParams() []*ast.Param {
	params := []*ast.Param{}
	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		param := &ast.Param{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.nextToken()
		param.Type = p.parseTypeAnnotation()
		if param.Type == nil {
			return nil
		}
		params = append(params, param)

		if !p.peekIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return params
}

// parseTypeAnnotation parses a named type at curToken: an identifier
// or the unit type `()`.
func (p *Parser) parseTypeAnnotation() *ast.TypeAnnotation {
	switch p.curToken.Type {
	case lexer.IDENT:
		return &ast.TypeAnnotation{
			Ident: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}
	case lexer.LPAREN:
		tok := p.curToken
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return unitAnnotation(tok)
	}
	p.addError(p.curToken.Pos, "expected a type name, got %s", p.curToken.Type)
	return nil
}

// unitAnnotation builds a synthetic `()` annotation anchored at the
// given token.
func unitAnnotation(tok lexer.Token) *ast.TypeAnnotation {
	return &ast.TypeAnnotation{
		Ident: &ast.Identifier{
			Token: lexer.Token{Type: lexer.LPAREN, Literal: "()", Pos: tok.Pos},
			Value: "()",
		},
	}
}
