package semantic

import "github.com/rill-lang/rill/internal/ast"

// resolveTypeAnnotation links a written type name to its definition in
// the type scope, or records an unknown-type error.
func resolveTypeAnnotation(errors *Collector, typeScope *TypeScopeBuilder, ta *ast.TypeAnnotation) {
	if ta == nil {
		return
	}
	if id, ok := typeScope.NamedTypeID(ta.Name()); ok {
		ta.SetID(id)
		return
	}
	errors.Errorf(ta.Ident.Token, nil, "unknown type %s", ta.Name())
}

// ItemTypeIdentifier resolves the type names appearing in item
// signatures: parameter types and return types.
type ItemTypeIdentifier struct {
	errors    *Collector
	typeScope *TypeScopeBuilder
}

// NewItemTypeIdentifier creates the pass.
func NewItemTypeIdentifier(errors *Collector, typeScope *TypeScopeBuilder) *ItemTypeIdentifier {
	return &ItemTypeIdentifier{errors: errors, typeScope: typeScope}
}

// VisitUnit resolves the signature type expressions of every item.
func (iti *ItemTypeIdentifier) VisitUnit(unit *ast.Unit) {
	for _, item := range unit.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		for _, param := range fn.Params {
			resolveTypeAnnotation(iti.errors, iti.typeScope, param.Type)
		}
		resolveTypeAnnotation(iti.errors, iti.typeScope, fn.ReturnType)
	}
}

// ExprTypeIdentifier resolves the type names appearing inside function
// bodies. Today that is only declaration annotations.
type ExprTypeIdentifier struct {
	errors    *Collector
	typeScope *TypeScopeBuilder
}

// NewExprTypeIdentifier creates the pass.
func NewExprTypeIdentifier(errors *Collector, typeScope *TypeScopeBuilder) *ExprTypeIdentifier {
	return &ExprTypeIdentifier{errors: errors, typeScope: typeScope}
}

// VisitUnit resolves in-body type expressions of every identified item.
func (eti *ExprTypeIdentifier) VisitUnit(unit *ast.Unit) {
	for _, item := range unit.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok || !fn.Name.HasID() {
			continue
		}
		eti.visitBlock(fn.Body)
	}
}

func (eti *ExprTypeIdentifier) visitBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.VarDeclaration:
			resolveTypeAnnotation(eti.errors, eti.typeScope, s.Type)
		case *ast.DoBlock:
			eti.visitBlock(s.Block)
		case *ast.IfBlock:
			for _, cond := range s.Conditionals {
				eti.visitBlock(cond.Block)
			}
			if s.Else != nil {
				eti.visitBlock(s.Else)
			}
		}
	}
}
