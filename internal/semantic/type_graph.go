package semantic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/types"
)

// NodeIndex identifies a node in a TypeGraph.
type NodeIndex int

// invalidNode is a sentinel for "no node".
const invalidNode NodeIndex = -1

// nodeKind tags what a graph node stands for.
type nodeKind int

const (
	// nodeVariable is the type of a program variable.
	nodeVariable nodeKind = iota
	// nodeConcreteType is a concrete type written in the program,
	// a primitive or a function signature.
	nodeConcreteType
	// nodeExpression is a temporary created from an expression.
	nodeExpression
	// nodeCallArg is the argument of a function at a call site.
	nodeCallArg
	// nodeCallReturn is the return value of a function at a call site.
	nodeCallReturn
)

// node is one vertex of the constraint graph.
type node struct {
	kind nodeKind
	id   ast.ScopedId // variable and concrete-type nodes
	arg  string       // call-arg parameter name
	fn   NodeIndex    // call-arg and call-return function node
}

// edge is one directed constraint, labeled with its origin.
type edge struct {
	to     NodeIndex
	source InferenceSource
}

// TypeGraph is the directed constraint graph used for type inference.
//
// Instead of running a unification algorithm over type equations, the
// graph represents constraints as labeled directed edges and solves by
// traversal: a variable's type is determined when exactly one concrete
// type node is reachable from its variable node. The passes that build
// the graph orient edges so this holds for every determined variable.
type TypeGraph struct {
	nodes     []node
	out       [][]edge
	types     map[string]NodeIndex
	variables map[string]NodeIndex
}

// NewTypeGraph creates a graph pre-seeded with nodes for the primitive
// types, at the same ids the TypeScopeBuilder seeds them.
func NewTypeGraph() *TypeGraph {
	g := &TypeGraph{
		types:     make(map[string]NodeIndex),
		variables: make(map[string]NodeIndex),
	}
	current := ast.NewScopedId().Incremented()
	for range types.PrimitiveNames {
		g.AddType(current.Clone())
		current.Increment()
	}
	return g
}

func (g *TypeGraph) addNode(n node) NodeIndex {
	g.nodes = append(g.nodes, n)
	g.out = append(g.out, nil)
	return NodeIndex(len(g.nodes) - 1)
}

// Len returns the number of nodes in the graph.
func (g *TypeGraph) Len() int { return len(g.nodes) }

// TypeNode returns the node for a concrete type id, if registered.
func (g *TypeGraph) TypeNode(id ast.ScopedId) (NodeIndex, bool) {
	ix, ok := g.types[id.Key()]
	return ix, ok
}

// VariableNode returns the node for a variable id, if registered.
func (g *TypeGraph) VariableNode(id ast.ScopedId) (NodeIndex, bool) {
	ix, ok := g.variables[id.Key()]
	return ix, ok
}

// AddType returns the node for a concrete type id, creating it on
// first use. At most one type node exists per id.
func (g *TypeGraph) AddType(id ast.ScopedId) NodeIndex {
	if ix, ok := g.types[id.Key()]; ok {
		return ix
	}
	ix := g.addNode(node{kind: nodeConcreteType, id: id.Clone()})
	g.types[id.Key()] = ix
	return ix
}

// AddVariable returns the node for a variable id, creating it on first
// use. At most one variable node exists per id.
func (g *TypeGraph) AddVariable(id ast.ScopedId) NodeIndex {
	if ix, ok := g.variables[id.Key()]; ok {
		return ix
	}
	ix := g.addNode(node{kind: nodeVariable, id: id.Clone()})
	g.variables[id.Key()] = ix
	return ix
}

// AddExpression creates a fresh expression node.
func (g *TypeGraph) AddExpression() NodeIndex {
	return g.addNode(node{kind: nodeExpression})
}

// AddCallArg creates a fresh node for a named argument of the function
// node at a call site.
func (g *TypeGraph) AddCallArg(name string, fn NodeIndex) NodeIndex {
	return g.addNode(node{kind: nodeCallArg, arg: name, fn: fn})
}

// AddCallReturn creates a fresh node for the return value of the
// function node at a call site.
func (g *TypeGraph) AddCallReturn(fn NodeIndex) NodeIndex {
	return g.addNode(node{kind: nodeCallReturn, fn: fn})
}

// AddInference adds a directed constraint edge.
func (g *TypeGraph) AddInference(src, dst NodeIndex, source InferenceSource) {
	g.out[src] = append(g.out[src], edge{to: dst, source: source})
}

// ErrNoTypeInfo is returned by Infer when no concrete type is
// reachable from the variable.
var ErrNoTypeInfo = errors.New("no type information")

// ErrUnknownVariable is returned by Infer for a variable that was
// never added to the graph.
var ErrUnknownVariable = errors.New("variable not in type graph")

// ConflictError is returned by Infer when more than one distinct
// concrete type is reachable from the variable.
type ConflictError struct {
	Candidates []ast.ScopedId
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Candidates))
	for i, id := range e.Candidates {
		parts[i] = id.String()
	}
	return fmt.Sprintf("conflicting types: %s", strings.Join(parts, ", "))
}

// Infer determines the type of a variable by depth-first traversal
// from its node, collecting every reachable concrete type node.
//
// Exactly one reachable type is a success: its id is returned and a
// cached Inferred edge is added so repeated queries stay cheap. Zero
// reachable types yields ErrNoTypeInfo; two or more yield a
// ConflictError listing every candidate for diagnostics.
func (g *TypeGraph) Infer(variable ast.ScopedId) (ast.ScopedId, error) {
	start, ok := g.variables[variable.Key()]
	if !ok {
		return ast.ScopedId{}, ErrUnknownVariable
	}

	visited := make([]bool, len(g.nodes))
	stack := []NodeIndex{start}
	var found []NodeIndex
	for len(stack) > 0 {
		ix := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[ix] {
			continue
		}
		visited[ix] = true
		if g.nodes[ix].kind == nodeConcreteType {
			found = append(found, ix)
		}
		// Push in reverse so edges are explored in insertion order.
		edges := g.out[ix]
		for i := len(edges) - 1; i >= 0; i-- {
			if !visited[edges[i].to] {
				stack = append(stack, edges[i].to)
			}
		}
	}

	switch len(found) {
	case 0:
		return ast.ScopedId{}, ErrNoTypeInfo
	case 1:
		g.AddInference(start, found[0], SourceInferred)
		return g.nodes[found[0]].id.Clone(), nil
	default:
		candidates := make([]ast.ScopedId, len(found))
		for i, ix := range found {
			candidates[i] = g.nodes[ix].id.Clone()
		}
		return ast.ScopedId{}, &ConflictError{Candidates: candidates}
	}
}
