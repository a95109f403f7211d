package parser

import (
	"strconv"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseExpression parses an expression with the given minimum binding
// power. curToken is the expression's first token on entry and its
// last token on exit.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError(p.curToken.Pos, "unexpected %s in expression", p.curToken.Type)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken.Pos, "invalid number literal %q", p.curToken.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curIs(lexer.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	if expr.Operand == nil {
		return nil
	}
	return expr
}

// parseGroupedExpression parses `(expr)` or the unit literal `()`.
func (p *Parser) parseGroupedExpression() ast.Expression {
	if p.peekIs(lexer.RPAREN) {
		tok := p.curToken
		p.nextToken()
		return &ast.UnitLiteral{Token: tok}
	}
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

// parseIfExpression parses the inline conditional
// `if cond => consequence else alternative`.
func (p *Parser) parseIfExpression() ast.Expression {
	ifToken := p.curToken
	p.nextToken()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	return p.parseIfExpressionTail(ifToken, condition)
}

// parseIfExpressionTail finishes an inline if whose condition has
// already been parsed. curToken is the condition's last token.
func (p *Parser) parseIfExpressionTail(ifToken lexer.Token, condition ast.Expression) ast.Expression {
	expr := &ast.IfExpression{Token: ifToken, Condition: condition}

	if !p.expectPeek(lexer.FAT_ARROW) {
		return nil
	}
	p.nextToken()
	expr.Consequence = p.parseExpression(LOWEST)
	if expr.Consequence == nil {
		return nil
	}

	if !p.expectPeek(lexer.ELSE) {
		return nil
	}
	p.nextToken()
	expr.Alternative = p.parseExpression(LOWEST)
	if expr.Alternative == nil {
		return nil
	}
	return expr
}

// parseCallExpression parses `callee(name: value, ...)`. The callee
// must be a plain identifier.
func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	ident, ok := callee.(*ast.Identifier)
	if !ok {
		p.addError(p.curToken.Pos, "calls require a function name")
		return nil
	}
	call := &ast.CallExpression{Token: p.curToken, Function: ident}

	if p.peekIs(lexer.RPAREN) {
		p.nextToken()
		return call
	}

	for {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		arg := &ast.CallArgument{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
		}
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.nextToken()
		arg.Value = p.parseExpression(LOWEST)
		if arg.Value == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)

		if !p.peekIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return call
}

// parseAssignExpression parses `target = value`. The target must be a
// plain identifier.
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	target, ok := left.(*ast.Identifier)
	if !ok {
		p.addError(p.curToken.Pos, "cannot assign to %s", left.String())
		return nil
	}
	expr := &ast.AssignExpression{Token: p.curToken, Target: target}
	p.nextToken()
	expr.Value = p.parseExpression(LOWEST)
	if expr.Value == nil {
		return nil
	}
	return expr
}
