package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// parseBlock parses statements until the matching DEDENT. curToken is
// the INDENT on entry and the DEDENT (or EOF) on exit.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{}
	p.nextToken()
	for !p.curIs(lexer.DEDENT) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			// A successful statement ends on its own NEWLINE (or the
			// DEDENT of its trailing block); step past it. The block's
			// own DEDENT is never consumed by a statement.
			block.Statements = append(block.Statements, stmt)
			p.nextToken()
			continue
		}
		// Error recovery: sync stopped at a boundary token.
		if p.curIs(lexer.DEDENT) || p.curIs(lexer.EOF) {
			break
		}
		p.nextToken()
	}
	return block
}

// parseStatement parses one statement. curToken is the statement's
// first token on entry. On exit curToken is the statement's
// terminating NEWLINE, or the DEDENT that closed a trailing block, or
// is left just before an unconsumed DEDENT/EOF.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.LET:
		return p.parseVarDeclaration()
	case lexer.DO:
		return p.parseDoBlock()
	case lexer.IF:
		return p.parseIfStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// endOfStatement consumes the statement's terminating NEWLINE. A
// DEDENT or EOF also ends a statement but stays unconsumed for the
// block loop.
func (p *Parser) endOfStatement() bool {
	if p.peekIs(lexer.NEWLINE) {
		p.nextToken()
		return true
	}
	if p.peekIs(lexer.DEDENT) || p.peekIs(lexer.EOF) {
		return true
	}
	p.addError(p.peekToken.Pos, "expected end of statement, got %s", p.peekToken.Type)
	p.nextToken()
	p.sync()
	return false
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekIs(lexer.NEWLINE) || p.peekIs(lexer.DEDENT) || p.peekIs(lexer.EOF) {
		p.endOfStatement()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	if !p.endOfStatement() {
		return nil
	}
	return stmt
}

func (p *Parser) parseVarDeclaration() ast.Statement {
	stmt := &ast.VarDeclaration{Token: p.curToken}

	if p.peekIs(lexer.MUT) {
		p.nextToken()
		stmt.Mutable = true
	}
	if !p.expectPeek(lexer.IDENT) {
		p.sync()
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.Type = p.parseTypeAnnotation()
		if stmt.Type == nil {
			p.sync()
			return nil
		}
	}

	if !p.expectPeek(lexer.ASSIGN) {
		p.sync()
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	if !p.endOfStatement() {
		return nil
	}
	return stmt
}

func (p *Parser) parseDoBlock() ast.Statement {
	stmt := &ast.DoBlock{Token: p.curToken}
	if !p.expectPeek(lexer.NEWLINE) {
		p.sync()
		return nil
	}
	if !p.expectPeek(lexer.INDENT) {
		return nil
	}
	stmt.Block = p.parseBlock()
	return stmt
}

// parseIfStatement parses either the block form of if or, when the
// condition is followed by `=>`, the inline if-expression used in
// statement position.
func (p *Parser) parseIfStatement() ast.Statement {
	ifToken := p.curToken
	p.nextToken()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}

	if p.peekIs(lexer.FAT_ARROW) {
		expr := p.parseIfExpressionTail(ifToken, condition)
		if expr == nil {
			return nil
		}
		if !p.endOfStatement() {
			return nil
		}
		return &ast.ExpressionStatement{Expression: expr}
	}

	ifBlock := &ast.IfBlock{Token: ifToken}
	if !p.expectPeek(lexer.NEWLINE) {
		p.sync()
		return nil
	}
	if !p.expectPeek(lexer.INDENT) {
		return nil
	}
	ifBlock.Conditionals = append(ifBlock.Conditionals, &ast.Conditional{
		Condition: condition,
		Block:     p.parseBlock(),
	})

	// Further arms: `else if cond` blocks, then one optional `else`.
	for p.peekIs(lexer.ELSE) {
		p.nextToken()
		if p.peekIs(lexer.IF) {
			p.nextToken()
			p.nextToken()
			armCondition := p.parseExpression(LOWEST)
			if armCondition == nil {
				return nil
			}
			if !p.expectPeek(lexer.NEWLINE) {
				p.sync()
				return nil
			}
			if !p.expectPeek(lexer.INDENT) {
				return nil
			}
			ifBlock.Conditionals = append(ifBlock.Conditionals, &ast.Conditional{
				Condition: armCondition,
				Block:     p.parseBlock(),
			})
			continue
		}
		if !p.expectPeek(lexer.NEWLINE) {
			p.sync()
			return nil
		}
		if !p.expectPeek(lexer.INDENT) {
			return nil
		}
		ifBlock.Else = p.parseBlock()
		break
	}
	return ifBlock
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.sync()
		return nil
	}
	if !p.endOfStatement() {
		return nil
	}
	return &ast.ExpressionStatement{Expression: expr}
}
