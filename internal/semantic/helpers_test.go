package semantic

import (
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
	"github.com/rill-lang/rill/internal/parser"
)

// sid builds a ScopedId from counter components, e.g. sid(4, 0, 1).
func sid(parts ...int) ast.ScopedId {
	id := ast.NewScopedId()
	for i, part := range parts {
		if i > 0 {
			id.Push()
		}
		for n := 0; n < part; n++ {
			id.Increment()
		}
	}
	return id
}

// parseSource parses a program, failing the test on syntax errors.
func parseSource(t *testing.T, input string) *ast.Unit {
	t.Helper()
	p := parser.New(lexer.New(input))
	unit := p.ParseUnit()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return unit
}

// analyzeSource parses and analyzes a program, returning the unit, the
// analyzer, and the analysis error (nil when the program is valid).
func analyzeSource(t *testing.T, input string) (*ast.Unit, *Analyzer, error) {
	t.Helper()
	unit := parseSource(t, input)
	analyzer := NewAnalyzer()
	err := analyzer.Analyze(unit)
	return unit, analyzer, err
}

// expectNoErrors analyzes a program and fails the test on any
// diagnostic.
func expectNoErrors(t *testing.T, input string) (*ast.Unit, *Analyzer) {
	t.Helper()
	unit, analyzer, err := analyzeSource(t, input)
	if err != nil {
		t.Fatalf("unexpected analysis errors:\n%v", err)
	}
	return unit, analyzer
}

// expectError analyzes a program and fails unless some error message
// contains the given substring.
func expectError(t *testing.T, input, substring string) (*ast.Unit, *Analyzer) {
	t.Helper()
	unit, analyzer, err := analyzeSource(t, input)
	if err == nil {
		t.Fatalf("expected an error containing %q, analysis succeeded", substring)
	}
	for _, msg := range analyzer.Collector().ErrorMessages() {
		if strings.Contains(msg, substring) {
			return unit, analyzer
		}
	}
	t.Fatalf("no error contains %q; got: %v", substring, analyzer.Collector().ErrorMessages())
	return unit, analyzer
}

// expectMessage fails unless some recorded error contains the given
// substring.
func expectMessage(t *testing.T, analyzer *Analyzer, substring string) {
	t.Helper()
	for _, msg := range analyzer.Collector().ErrorMessages() {
		if strings.Contains(msg, substring) {
			return
		}
	}
	t.Errorf("no error contains %q; got: %v", substring, analyzer.Collector().ErrorMessages())
}

// firstFunction returns the unit's first function declaration.
func firstFunction(t *testing.T, unit *ast.Unit) *ast.FunctionDecl {
	t.Helper()
	for _, item := range unit.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			return fn
		}
	}
	t.Fatal("unit has no function")
	return nil
}

// functionNamed returns the function with the given name.
func functionNamed(t *testing.T, unit *ast.Unit, name string) *ast.FunctionDecl {
	t.Helper()
	for _, item := range unit.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok && fn.Name.Value == name {
			return fn
		}
	}
	t.Fatalf("unit has no function %q", name)
	return nil
}

// typeOf fails unless the mapping has an entry for the id.
func typeOf(t *testing.T, analyzer *Analyzer, id ast.ScopedId) string {
	t.Helper()
	typ, ok := analyzer.Types().TypeOf(id)
	if !ok {
		t.Fatalf("no type recorded for %s", id)
	}
	return typ.String()
}
