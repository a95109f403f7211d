package ast

import (
	"bytes"

	"github.com/rill-lang/rill/internal/lexer"
)

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Expression.TokenLiteral() }
func (es *ExpressionStatement) String() string       { return es.Expression.String() }
func (es *ExpressionStatement) Pos() lexer.Position  { return es.Expression.Pos() }

// ReturnStatement is `return [expr]`. A bare return yields ().
type ReturnStatement struct {
	Token lexer.Token // The `return` token
	Value Expression  // nil for a bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() lexer.Position  { return rs.Token.Pos }

func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return"
	}
	return "return " + rs.Value.String()
}

// VarDeclaration is `let [mut] name [: type] = value`.
type VarDeclaration struct {
	Token   lexer.Token // The `let` token
	Mutable bool
	Name    *Identifier
	Type    *TypeAnnotation // nil when the type is inferred
	Value   Expression
}

func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclaration) Pos() lexer.Position  { return vd.Token.Pos }

func (vd *VarDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	if vd.Mutable {
		out.WriteString("mut ")
	}
	out.WriteString(vd.Name.String())
	if vd.Type != nil {
		out.WriteString(": ")
		out.WriteString(vd.Type.String())
	}
	out.WriteString(" = ")
	out.WriteString(vd.Value.String())
	return out.String()
}

// ID returns the declared variable's id.
func (vd *VarDeclaration) ID() ScopedId { return vd.Name.ID() }

// DoBlock introduces a nested scope: `do` followed by an indented block.
type DoBlock struct {
	Token lexer.Token // The `do` token
	Block *Block
}

func (db *DoBlock) statementNode()       {}
func (db *DoBlock) TokenLiteral() string { return db.Token.Literal }
func (db *DoBlock) Pos() lexer.Position  { return db.Token.Pos }

func (db *DoBlock) String() string {
	return "do\n" + db.Block.String()
}

// Conditional is one `if`/`else if` arm of an IfBlock.
type Conditional struct {
	Condition Expression
	Block     *Block
}

// IfBlock is the statement form of a conditional, with one or more
// condition arms and an optional else block. Like Block it carries a
// scope id and a source cell marking value consumption.
type IfBlock struct {
	Token        lexer.Token // The `if` token
	Conditionals []*Conditional
	Else         *Block // nil when there is no else arm
	id           ScopedId
	source       *ScopedId
}

func (ib *IfBlock) statementNode()       {}
func (ib *IfBlock) TokenLiteral() string { return ib.Token.Literal }
func (ib *IfBlock) Pos() lexer.Position  { return ib.Token.Pos }

func (ib *IfBlock) String() string {
	var out bytes.Buffer
	for i, cond := range ib.Conditionals {
		if i == 0 {
			out.WriteString("if ")
		} else {
			out.WriteString("else if ")
		}
		out.WriteString(cond.Condition.String())
		out.WriteString("\n")
		out.WriteString(cond.Block.String())
	}
	if ib.Else != nil {
		out.WriteString("else\n")
		out.WriteString(ib.Else.String())
	}
	return out.String()
}

// ID returns the if-block's scope id.
func (ib *IfBlock) ID() ScopedId { return ib.id }

// SetID assigns the if-block's scope id.
func (ib *IfBlock) SetID(id ScopedId) { ib.id = id.Clone() }

// Source returns the consuming construct's id, or false if the
// if-block's value is discarded.
func (ib *IfBlock) Source() (ScopedId, bool) {
	if ib.source == nil {
		return ScopedId{}, false
	}
	return *ib.source, true
}

// SetSource marks the if-block's value as consumed.
func (ib *IfBlock) SetSource(id ScopedId) {
	cloned := id.Clone()
	ib.source = &cloned
}

// HasSource reports whether the if-block's value is consumed.
func (ib *IfBlock) HasSource() bool { return ib.source != nil }
