package semantic

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
)

func TestIdentityFunction(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn id(x: float) -> float
    x
`)
	fn := firstFunction(t, unit)

	if got := typeOf(t, analyzer, fn.ID()); got != "(x: float) -> float" {
		t.Errorf("function type: got %q", got)
	}
	if got := typeOf(t, analyzer, fn.Params[0].Name.ID()); got != "float" {
		t.Errorf("x: got %q", got)
	}
	// The body's implicit return value resolves too.
	if got := typeOf(t, analyzer, fn.Body.ID()); got != "float" {
		t.Errorf("result: got %q", got)
	}
}

func TestAddFunction(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn add(a: float, b: float) -> float
    a + b
`)
	fn := firstFunction(t, unit)

	if got := typeOf(t, analyzer, fn.ID()); got != "(a: float, b: float) -> float" {
		t.Errorf("function type: got %q", got)
	}
	for _, param := range fn.Params {
		if got := typeOf(t, analyzer, param.Name.ID()); got != "float" {
			t.Errorf("%s: got %q", param.Name.Value, got)
		}
	}
	if got := typeOf(t, analyzer, fn.Body.ID()); got != "float" {
		t.Errorf("+ result: got %q", got)
	}
}

func TestValuedIfExpression(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn pick(c: bool) -> float
    if c => 1.0 else 0.0
`)
	fn := firstFunction(t, unit)

	if got := typeOf(t, analyzer, fn.Params[0].Name.ID()); got != "bool" {
		t.Errorf("c: got %q", got)
	}
	if got := typeOf(t, analyzer, fn.Body.ID()); got != "float" {
		t.Errorf("if result: got %q", got)
	}
}

func TestUnknownReferenceStillFinishes(t *testing.T) {
	unit, analyzer := expectError(t, `
fn bad() -> float
    let y = z
`, "unknown reference z")

	// y gets no inferred type, but the pipeline completes and the
	// function itself still resolves.
	fn := firstFunction(t, unit)
	decl := fn.Body.Statements[0].(*ast.VarDeclaration)
	if _, ok := analyzer.Types().TypeOf(decl.ID()); ok {
		t.Error("y should have no inferred type")
	}
	if _, ok := analyzer.Types().TypeOf(fn.ID()); !ok {
		t.Error("bad itself should still have a type")
	}
}

func TestDuplicateParameterStillRegistersFunction(t *testing.T) {
	unit, analyzer := expectError(t, `
fn dup(x: float, x: float) -> float
    x
`, "parameter x of function dup is already declared")

	fn := firstFunction(t, unit)
	if _, ok := analyzer.Types().TypeOf(fn.ID()); !ok {
		t.Error("dup should still have a signature")
	}
}

func TestReturnTypeMismatchIsConflict(t *testing.T) {
	expectError(t, `
fn f() -> float
    true
`, "conflicting types for return value of function f")
}

func TestExplicitReturnStatement(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn f(x: float) -> float
    return x
`)
	fn := firstFunction(t, unit)
	if got := typeOf(t, analyzer, fn.Params[0].Name.ID()); got != "float" {
		t.Errorf("x: got %q", got)
	}
}

func TestBareReturnConflictsWithFloat(t *testing.T) {
	// `return` forces the return type to (), conflicting with float
	// at the body's implicit return.
	_, analyzer, err := analyzeSource(t, `
fn f() -> float
    return
    1.0
`)
	if err == nil {
		t.Fatalf("expected a type error, got none; types: %v", analyzer.Types())
	}
}

func TestInferenceThroughDeclarations(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn chain(x: float) -> float
    let a = x
    let b = a
    b
`)
	fn := firstFunction(t, unit)
	for _, stmt := range fn.Body.Statements[:2] {
		decl := stmt.(*ast.VarDeclaration)
		if got := typeOf(t, analyzer, decl.ID()); got != "float" {
			t.Errorf("%s: got %q", decl.Name.Value, got)
		}
	}
}

func TestInferenceThroughCalls(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn add(a: float, b: float) -> float
    a + b

fn main()
    let r = add(a: 1.0, b: 2.0)
`)
	main := functionNamed(t, unit, "main")
	decl := main.Body.Statements[0].(*ast.VarDeclaration)
	if got := typeOf(t, analyzer, decl.ID()); got != "float" {
		t.Errorf("r: got %q", got)
	}
}

func TestExplicitAnnotationDrivesInference(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn f()
    let x: float = 1.0
    let b: bool = true
`)
	fn := firstFunction(t, unit)
	x := fn.Body.Statements[0].(*ast.VarDeclaration)
	b := fn.Body.Statements[1].(*ast.VarDeclaration)
	if got := typeOf(t, analyzer, x.ID()); got != "float" {
		t.Errorf("x: got %q", got)
	}
	if got := typeOf(t, analyzer, b.ID()); got != "bool" {
		t.Errorf("b: got %q", got)
	}
}

func TestAnnotationValueMismatch(t *testing.T) {
	expectError(t, `
fn f()
    let x: bool = 1.0
`, "conflicting types for variable x")
}

func TestComparisonYieldsBool(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn f(x: float)
    let c = x < 1.0
`)
	fn := firstFunction(t, unit)
	decl := fn.Body.Statements[0].(*ast.VarDeclaration)
	if got := typeOf(t, analyzer, decl.ID()); got != "bool" {
		t.Errorf("c: got %q", got)
	}
}

func TestEqualityOfFloatsYieldsBool(t *testing.T) {
	// Comparing two float parameters with == gives a bool result.
	unit, analyzer := expectNoErrors(t, `
fn f(a: float, b: float)
    let same = b == a
`)
	fn := firstFunction(t, unit)
	decl := fn.Body.Statements[0].(*ast.VarDeclaration)
	if got := typeOf(t, analyzer, decl.ID()); got != "bool" {
		t.Errorf("same: got %q", got)
	}
}

func TestUnaryOperator(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn f(x: float) -> float
    let n = -x
    n
`)
	fn := firstFunction(t, unit)
	decl := fn.Body.Statements[0].(*ast.VarDeclaration)
	if got := typeOf(t, analyzer, decl.ID()); got != "float" {
		t.Errorf("n: got %q", got)
	}
}

func TestAssignmentEvaluatesToUnit(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn f()
    let mut x = 1.0
    let u = x = 2.0
`)
	fn := firstFunction(t, unit)
	u := fn.Body.Statements[1].(*ast.VarDeclaration)
	if got := typeOf(t, analyzer, u.ID()); got != "()" {
		t.Errorf("u: got %q", got)
	}
}

func TestValuedIfBlock(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn pick(c: bool) -> float
    if c
        1.0
    else
        0.0
`)
	fn := firstFunction(t, unit)
	ifBlock := fn.Body.Statements[0].(*ast.IfBlock)
	if !ifBlock.HasSource() {
		t.Fatal("trailing if-block of a valued body should be consumed")
	}
	if got := typeOf(t, analyzer, ifBlock.ID()); got != "float" {
		t.Errorf("if-block: got %q", got)
	}
}

func TestUnconsumedIfBlockArmsMayDiffer(t *testing.T) {
	// Nothing consumes the if-block's value, so differing arm types
	// are not an error.
	expectNoErrors(t, `
fn f(c: bool)
    if c
        1.0
    else
        true
`)
}

func TestValuedDoBlock(t *testing.T) {
	unit, analyzer := expectNoErrors(t, `
fn f() -> float
    do
        1.0
`)
	fn := firstFunction(t, unit)
	doBlock := fn.Body.Statements[0].(*ast.DoBlock)
	if !doBlock.Block.HasSource() {
		t.Fatal("trailing do-block of a valued body should be consumed")
	}
	if got := typeOf(t, analyzer, fn.Body.ID()); got != "float" {
		t.Errorf("body: got %q", got)
	}
}

func TestTypeMapIsAFunction(t *testing.T) {
	// Every declared entity appears exactly once; the mapping is
	// keyed by id, so one entry per id by construction. Verify every
	// declared id is covered.
	unit, analyzer := expectNoErrors(t, `
fn add(a: float, b: float) -> float
    let sum = a + b
    sum

fn main()
    let r = add(a: 3.0, b: 4.0)
`)
	for _, item := range unit.Items {
		fn := item.(*ast.FunctionDecl)
		if _, ok := analyzer.Types().TypeOf(fn.ID()); !ok {
			t.Errorf("no entry for function %s", fn.Name.Value)
		}
		for _, param := range fn.Params {
			if _, ok := analyzer.Types().TypeOf(param.Name.ID()); !ok {
				t.Errorf("no entry for parameter %s", param.Name.Value)
			}
		}
		for _, stmt := range fn.Body.Statements {
			if decl, ok := stmt.(*ast.VarDeclaration); ok {
				if _, ok := analyzer.Types().TypeOf(decl.ID()); !ok {
					t.Errorf("no entry for variable %s", decl.Name.Value)
				}
			}
		}
	}
}

func TestFunctionSignatureIncludesParamNames(t *testing.T) {
	_, analyzerA := expectNoErrors(t, "fn f(x: float) -> float\n    x\n")
	_, analyzerB := expectNoErrors(t, "fn f(y: float) -> float\n    y\n")

	a, _ := analyzerA.Types().TypeOf(sid(4))
	b, _ := analyzerB.Types().TypeOf(sid(4))
	if a.Equals(b) {
		t.Error("signatures with different parameter names should differ")
	}
}

func TestAnalyzeNilUnit(t *testing.T) {
	if err := NewAnalyzer().Analyze(nil); err == nil {
		t.Error("expected an error for a nil unit")
	}
}

func TestAnalysisErrorFormatting(t *testing.T) {
	_, _, err := analyzeSource(t, `
fn f()
    let y = z
`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*AnalysisError); !ok {
		t.Fatalf("got %T, want *AnalysisError", err)
	}
	if err.Error() == "" {
		t.Error("error message should not be empty")
	}
}

func TestCollectorSeparatesSeverities(t *testing.T) {
	c := NewCollector()
	if c.HasErrors() {
		t.Error("fresh collector should have no errors")
	}
	c.AddWarning(&Diagnostic{Message: "w"})
	c.AddLint(&Diagnostic{Message: "l"})
	if c.HasErrors() {
		t.Error("warnings and lints are not errors")
	}
	c.AddError(&Diagnostic{Message: "e"})
	if !c.HasErrors() || len(c.Errors()) != 1 || len(c.Warnings()) != 1 || len(c.Lints()) != 1 {
		t.Error("collector miscounted severities")
	}
}
