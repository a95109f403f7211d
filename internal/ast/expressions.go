package ast

import (
	"bytes"
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// BooleanLiteral represents `true` or `false`.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() lexer.Position  { return bl.Token.Pos }

// NumberLiteral represents a floating point literal value.
type NumberLiteral struct {
	Token lexer.Token
	Value float64 // IEEE-754 64-bit
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return nl.Token.Literal }
func (nl *NumberLiteral) Pos() lexer.Position  { return nl.Token.Pos }

// UnitLiteral represents the unit value `()`.
type UnitLiteral struct {
	Token lexer.Token // The ( token
}

func (ul *UnitLiteral) expressionNode()      {}
func (ul *UnitLiteral) TokenLiteral() string { return ul.Token.Literal }
func (ul *UnitLiteral) String() string       { return "()" }
func (ul *UnitLiteral) Pos() lexer.Position  { return ul.Token.Pos }

// BinaryExpression represents a binary operation (e.g. a + b, x < y).
type BinaryExpression struct {
	Token    lexer.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) Pos() lexer.Position  { return be.Token.Pos }

func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}

// UnaryExpression represents a prefix operation (e.g. -x).
type UnaryExpression struct {
	Token    lexer.Token // The operator token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) Pos() lexer.Position  { return ue.Token.Pos }

func (ue *UnaryExpression) String() string {
	return "(" + ue.Operator + ue.Operand.String() + ")"
}

// IfExpression is the inline, always-valued conditional
// `if cond => consequence else alternative`.
type IfExpression struct {
	Token       lexer.Token // The `if` token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ie *IfExpression) expressionNode()      {}
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IfExpression) Pos() lexer.Position  { return ie.Token.Pos }

func (ie *IfExpression) String() string {
	return "if " + ie.Condition.String() + " => " + ie.Consequence.String() +
		" else " + ie.Alternative.String()
}

// CallArgument is one named argument in a call: `name: value`.
type CallArgument struct {
	Name  *Identifier // parameter name; id resolves to the parameter
	Value Expression
}

func (ca *CallArgument) String() string {
	return ca.Name.Value + ": " + ca.Value.String()
}

// CallExpression is the invocation of a function with named arguments.
type CallExpression struct {
	Token     lexer.Token // The ( token
	Function  *Identifier
	Arguments []*CallArgument
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() lexer.Position  { return ce.Function.Pos() }

func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, arg := range ce.Arguments {
		args[i] = arg.String()
	}
	return ce.Function.Value + "(" + strings.Join(args, ", ") + ")"
}

// AssignExpression assigns a value to a previously declared variable.
// Assignments evaluate to ().
type AssignExpression struct {
	Token  lexer.Token // The = token
	Target *Identifier
	Value  Expression
}

func (ae *AssignExpression) expressionNode()      {}
func (ae *AssignExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignExpression) Pos() lexer.Position  { return ae.Target.Pos() }

func (ae *AssignExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ae.Target.String())
	out.WriteString(" = ")
	out.WriteString(ae.Value.String())
	return out.String()
}
