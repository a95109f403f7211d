package ast

import "github.com/rill-lang/rill/internal/lexer"

// TypeAnnotation is a named type written in the source: a parameter
// type, a return type, or a declaration annotation. Its identifier's
// id cell resolves to a concrete type definition.
type TypeAnnotation struct {
	Ident *Identifier
}

func (ta *TypeAnnotation) TokenLiteral() string { return ta.Ident.TokenLiteral() }
func (ta *TypeAnnotation) String() string       { return ta.Ident.Value }
func (ta *TypeAnnotation) Pos() lexer.Position  { return ta.Ident.Pos() }

// Name returns the written type name, e.g. "float" or "()".
func (ta *TypeAnnotation) Name() string { return ta.Ident.Value }

// ID returns the resolved type id, default if unresolved.
func (ta *TypeAnnotation) ID() ScopedId { return ta.Ident.ID() }

// SetID resolves the annotation to a type definition.
func (ta *TypeAnnotation) SetID(id ScopedId) { ta.Ident.SetID(id) }
