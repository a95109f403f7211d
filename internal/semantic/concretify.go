package semantic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/types"
)

// TypeMapping maps ScopedId keys to resolved concrete types. It is the
// final product of analysis, covering every function, parameter, and
// variable whose type inference succeeded.
type TypeMapping map[string]types.Type

// TypeOf returns the resolved type for an id.
func (m TypeMapping) TypeOf(id ast.ScopedId) (types.Type, bool) {
	t, ok := m[id.Key()]
	return t, ok
}

func (m TypeMapping) assign(id ast.ScopedId, t types.Type) {
	m[id.Key()] = t
}

// Concretifier solves the constraint graph per declared entity and
// accumulates the results into a TypeMapping. Inference failures are
// reported with the originating token and enough context to name the
// entity involved.
type Concretifier struct {
	typeScope *TypeScopeBuilder
	errors    *Collector
	graph     *TypeGraph
	results   TypeMapping
}

// NewConcretifier creates the pass.
func NewConcretifier(typeScope *TypeScopeBuilder, errors *Collector, graph *TypeGraph) *Concretifier {
	return &Concretifier{
		typeScope: typeScope,
		errors:    errors,
		graph:     graph,
		results:   make(TypeMapping),
	}
}

// Results returns the accumulated mapping.
func (c *Concretifier) Results() TypeMapping {
	return c.results
}

// VisitUnit infers a type for every declared entity in the unit.
func (c *Concretifier) VisitUnit(unit *ast.Unit) {
	for _, item := range unit.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok || fn.ID().IsDefault() {
			continue
		}
		c.visitFunction(fn)
	}
}

func (c *Concretifier) visitFunction(fn *ast.FunctionDecl) {
	name := fn.Name.Value
	c.inferVar(fn.Name.Token, fn.ID(), fmt.Sprintf("function %s", name))

	for _, param := range fn.Params {
		if param.Name.ID().IsDefault() {
			continue
		}
		c.inferVar(param.Name.Token, param.Name.ID(),
			fmt.Sprintf("parameter %s of function %s", param.Name.Value, name))
	}

	// A valued body has a block node standing for the implicit return
	// value; solving it surfaces return type mismatches that no named
	// variable would otherwise expose.
	if fn.Body.HasSource() && !fn.Body.ID().IsDefault() {
		c.inferVar(fn.Name.Token, fn.Body.ID(),
			fmt.Sprintf("return value of function %s", name))
	}

	c.visitBlock(fn.Body)
}

func (c *Concretifier) visitBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.VarDeclaration:
			if s.ID().IsDefault() {
				continue
			}
			c.inferVar(s.Name.Token, s.ID(),
				fmt.Sprintf("variable %s", s.Name.Value))
		case *ast.DoBlock:
			c.visitBlock(s.Block)
		case *ast.IfBlock:
			// A consumed if-block has a node standing for its value.
			if s.HasSource() && !s.ID().IsDefault() {
				c.inferVar(s.Token, s.ID(), "value of if-block")
			}
			for _, cond := range s.Conditionals {
				c.visitBlock(cond.Block)
			}
			if s.Else != nil {
				c.visitBlock(s.Else)
			}
		}
	}
}

// inferVar solves for one id and records the result. Returns true on
// success or when the id was already solved.
func (c *Concretifier) inferVar(tok lexer.Token, id ast.ScopedId, context string) bool {
	if _, ok := c.results.TypeOf(id); ok {
		return true
	}

	typeID, err := c.graph.Infer(id)
	if err == nil {
		concrete, ok := c.typeScope.TypeOf(typeID)
		if !ok {
			c.errors.Errorf(tok, nil,
				"could not determine the type of %s: unregistered type %s", context, typeID)
			return false
		}
		c.results.assign(id, concrete)
		return true
	}

	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		c.errors.Errorf(tok, nil,
			"conflicting types for %s: %s", context, c.candidateNames(conflict.Candidates))
	case errors.Is(err, ErrNoTypeInfo):
		c.errors.Errorf(tok, nil,
			"could not determine the type of %s: no type information", context)
	case errors.Is(err, ErrUnknownVariable):
		// The typographer never saw this id; an earlier diagnostic
		// explains why.
	}
	return false
}

// candidateNames renders conflicting candidate types for diagnostics.
func (c *Concretifier) candidateNames(candidates []ast.ScopedId) string {
	names := make([]string, len(candidates))
	for i, id := range candidates {
		if t, ok := c.typeScope.TypeOf(id); ok {
			names[i] = t.String()
		} else {
			names[i] = id.String()
		}
	}
	return strings.Join(names, ", ")
}
