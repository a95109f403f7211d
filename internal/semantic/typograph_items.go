package semantic

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/types"
)

// ItemTypographer seeds the type graph from item signatures. For each
// identified function it constructs the concrete function type from
// the resolved parameter and return annotations, registers it in the
// type scope under the function's id, adds the matching graph nodes,
// and ties every parameter variable to its declared type.
//
// Function return types need no node of their own here; return
// statements and implicit returns reach them through edges added by
// the expression typographer.
type ItemTypographer struct {
	typeScope *TypeScopeBuilder
	errors    *Collector
	graph     *TypeGraph
}

// NewItemTypographer creates the pass.
func NewItemTypographer(typeScope *TypeScopeBuilder, errors *Collector, graph *TypeGraph) *ItemTypographer {
	return &ItemTypographer{typeScope: typeScope, errors: errors, graph: graph}
}

// VisitUnit processes every item in the unit.
func (it *ItemTypographer) VisitUnit(unit *ast.Unit) {
	for _, item := range unit.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			it.visitFunction(fn)
		}
	}
}

func (it *ItemTypographer) visitFunction(fn *ast.FunctionDecl) {
	fnID := fn.ID()
	if fnID.IsDefault() {
		return
	}

	signature, ok := it.signatureOf(fn)
	if !ok {
		// An earlier pass failed on part of the signature; the
		// matching diagnostic is already recorded.
		return
	}
	it.typeScope.AddType(fnID, signature)
	it.graph.AddType(fnID)

	for _, param := range fn.Params {
		paramID := param.Name.ID()
		paramTypeID := param.Type.ID()
		if paramID.IsDefault() || paramTypeID.IsDefault() {
			continue
		}
		paramVar := it.graph.AddVariable(paramID)
		paramType := it.graph.AddType(paramTypeID)
		it.graph.AddInference(paramVar, paramType, SourceFnParameter)
	}
}

// signatureOf builds the function's concrete type from its resolved
// annotations. It fails if any annotation is unresolved.
func (it *ItemTypographer) signatureOf(fn *ast.FunctionDecl) (*types.FunctionType, bool) {
	params := make([]types.Param, 0, len(fn.Params))
	for _, param := range fn.Params {
		paramTypeID := param.Type.ID()
		if paramTypeID.IsDefault() {
			return nil, false
		}
		pt, ok := it.typeScope.TypeOf(paramTypeID)
		if !ok {
			return nil, false
		}
		params = append(params, types.Param{Name: param.Name.Value, Type: pt})
	}

	retID := fn.ReturnType.ID()
	if retID.IsDefault() {
		return nil, false
	}
	ret, ok := it.typeScope.TypeOf(retID)
	if !ok {
		return nil, false
	}
	return &types.FunctionType{Params: params, ReturnType: ret}, true
}
