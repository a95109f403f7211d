// Package semantic implements the semantic analysis core of rill:
// scoped identification, type identification, and graph-based type
// inference over a parsed unit.
//
// Analysis is a fixed pipeline of passes. Identification assigns a
// ScopedId to every declared name and every use of one; the
// typographers build a directed constraint graph over those ids; the
// concretifier solves the graph per declared entity. Every pass
// accumulates diagnostics instead of stopping, and later passes skip
// subtrees whose prerequisite ids were never assigned, so one
// compilation surfaces as many independent errors as possible.
//
// The analyzer owns all mutable state (scope builders, the graph, the
// collector) for exactly one unit and is not safe for concurrent use;
// analyzing several units concurrently takes one Analyzer each.
package semantic

import (
	"fmt"

	"github.com/rill-lang/rill/internal/ast"
)

// Analyzer runs the semantic analysis pipeline over one unit.
type Analyzer struct {
	varScope  *ScopeBuilder
	typeScope *TypeScopeBuilder
	graph     *TypeGraph
	collector *Collector
	origins   originTable
	typeMap   TypeMapping
}

// NewAnalyzer creates an analyzer with freshly seeded builders.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		varScope:  NewScopeBuilder(),
		typeScope: NewTypeScopeBuilder(),
		graph:     NewTypeGraph(),
		collector: NewCollector(),
		origins:   make(originTable),
		typeMap:   make(TypeMapping),
	}
}

// Analyze runs all passes over the unit in order. The unit's id cells
// are populated in place. Returns an AnalysisError when any pass
// recorded an error; the partial type mapping and the full collector
// remain available either way.
func (a *Analyzer) Analyze(unit *ast.Unit) error {
	if unit == nil {
		return fmt.Errorf("cannot analyze nil unit")
	}

	// Identification: names first, then the types they mention.
	NewItemIdentifier(a.collector, a.varScope, a.origins, a.typeScope.FirstItemID()).VisitUnit(unit)
	NewItemTypeIdentifier(a.collector, a.typeScope).VisitUnit(unit)
	NewExprIdentifier(a.collector, a.varScope, a.origins).VisitUnit(unit)
	NewExprTypeIdentifier(a.collector, a.typeScope).VisitUnit(unit)

	// Typography: signatures seed the graph, then bodies constrain it.
	NewItemTypographer(a.typeScope, a.collector, a.graph).VisitUnit(unit)
	NewExprTypographer(a.typeScope, a.collector, a.graph).VisitUnit(unit)

	// Solving.
	concretifier := NewConcretifier(a.typeScope, a.collector, a.graph)
	concretifier.VisitUnit(unit)
	a.typeMap = concretifier.Results()

	if a.collector.HasErrors() {
		return &AnalysisError{Diagnostics: a.collector.Errors()}
	}
	return nil
}

// Types returns the mapping produced by the last Analyze call.
func (a *Analyzer) Types() TypeMapping { return a.typeMap }

// Collector returns the diagnostic collector.
func (a *Analyzer) Collector() *Collector { return a.collector }

// Graph returns the constraint graph, for inspection after analysis.
func (a *Analyzer) Graph() *TypeGraph { return a.graph }

// TypeScope returns the type scope, for inspection after analysis.
func (a *Analyzer) TypeScope() *TypeScopeBuilder { return a.typeScope }
