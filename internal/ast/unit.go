package ast

import (
	"bytes"
	"strings"

	"github.com/rill-lang/rill/internal/lexer"
)

// Unit is the root of the AST for a single compilation input.
type Unit struct {
	Items []Item
}

func (u *Unit) TokenLiteral() string {
	if len(u.Items) > 0 {
		return u.Items[0].TokenLiteral()
	}
	return ""
}

func (u *Unit) String() string {
	var out bytes.Buffer
	for _, item := range u.Items {
		out.WriteString(item.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (u *Unit) Pos() lexer.Position {
	if len(u.Items) > 0 {
		return u.Items[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Item is a top-level declaration in a unit.
type Item interface {
	Node
	itemNode()
}

// Param is one function parameter: `name: type`.
type Param struct {
	Name *Identifier
	Type *TypeAnnotation
}

func (p *Param) String() string {
	return p.Name.Value + ": " + p.Type.String()
}

// FunctionDecl is a block function declaration:
//
//	fn name(a: T, b: U) -> R
//	    <body>
//
// An omitted return type means () and leaves ExplicitReturn false.
type FunctionDecl struct {
	Token          lexer.Token // The `fn` token
	Name           *Identifier
	Params         []*Param
	ReturnType     *TypeAnnotation
	ExplicitReturn bool
	Body           *Block
}

func (fd *FunctionDecl) itemNode()            {}
func (fd *FunctionDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDecl) Pos() lexer.Position  { return fd.Token.Pos }

func (fd *FunctionDecl) String() string {
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.String()
	}
	var out bytes.Buffer
	out.WriteString("fn ")
	out.WriteString(fd.Name.Value)
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if fd.ExplicitReturn {
		out.WriteString(" -> ")
		out.WriteString(fd.ReturnType.String())
	}
	out.WriteString("\n")
	out.WriteString(fd.Body.String())
	return out.String()
}

// ID returns the function's id.
func (fd *FunctionDecl) ID() ScopedId { return fd.Name.ID() }

// SetID assigns the function's id.
func (fd *FunctionDecl) SetID(id ScopedId) { fd.Name.SetID(id) }
