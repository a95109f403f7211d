package semantic

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/types"
)

// TypeScopeBuilder maps referenceable type names to ScopedIds and
// ScopedIds to concrete type definitions.
//
// It is seeded with the primitive types `()`, `bool`, and `float` at
// consecutive ids starting from the first non-default id. Function
// signatures are registered later under their item's id; they have no
// name entry because function types cannot be written in the source.
type TypeScopeBuilder struct {
	names   map[string]ast.ScopedId
	types   map[string]types.Type
	current ast.ScopedId
}

// NewTypeScopeBuilder creates a builder seeded with the primitives.
func NewTypeScopeBuilder() *TypeScopeBuilder {
	tsb := &TypeScopeBuilder{
		names: make(map[string]ast.ScopedId),
		types: make(map[string]types.Type),
	}
	current := ast.NewScopedId().Incremented()
	for _, name := range types.PrimitiveNames {
		tsb.names[name] = current.Clone()
		tsb.types[current.Key()] = types.Primitive(name)
		current.Increment()
	}
	tsb.current = current
	return tsb
}

// NamedTypeID returns the id of a referenceable type name.
func (tsb *TypeScopeBuilder) NamedTypeID(name string) (ast.ScopedId, bool) {
	id, ok := tsb.names[name]
	return id, ok
}

// TypeOf returns the concrete type registered under the id.
func (tsb *TypeScopeBuilder) TypeOf(id ast.ScopedId) (types.Type, bool) {
	t, ok := tsb.types[id.Key()]
	return t, ok
}

// NamedType returns the concrete type for a referenceable name.
func (tsb *TypeScopeBuilder) NamedType(name string) (types.Type, bool) {
	id, ok := tsb.names[name]
	if !ok {
		return nil, false
	}
	return tsb.TypeOf(id)
}

// AddType registers a concrete type under the given id. This is how
// function signatures, which are tracked by item id rather than by
// name, enter the type scope.
func (tsb *TypeScopeBuilder) AddType(id ast.ScopedId, t types.Type) {
	tsb.types[id.Key()] = t
}

// FirstItemID returns the first id available after the seeded
// primitives. Item identification continues the id sequence from here
// so type ids and item ids never collide.
func (tsb *TypeScopeBuilder) FirstItemID() ast.ScopedId {
	return tsb.current.Clone()
}
