package parser

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

func parseUnit(t *testing.T, input string) *ast.Unit {
	t.Helper()
	p := New(lexer.New(input))
	unit := p.ParseUnit()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", input, errs)
	}
	return unit
}

// parseBody wraps a body snippet in a function and returns its block.
func parseBody(t *testing.T, body string) *ast.Block {
	t.Helper()
	unit := parseUnit(t, "fn test()\n    "+body+"\n")
	fn := singleFunction(t, unit)
	return fn.Body
}

func singleFunction(t *testing.T, unit *ast.Unit) *ast.FunctionDecl {
	t.Helper()
	if len(unit.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(unit.Items))
	}
	fn, ok := unit.Items[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", unit.Items[0])
	}
	return fn
}

func TestFunctionDecl(t *testing.T) {
	unit := parseUnit(t, "fn add(a: float, b: float) -> float\n    a + b\n")
	fn := singleFunction(t, unit)

	if fn.Name.Value != "add" {
		t.Errorf("name: got %q", fn.Name.Value)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params: got %d", len(fn.Params))
	}
	if fn.Params[0].Name.Value != "a" || fn.Params[0].Type.Name() != "float" {
		t.Errorf("param 0: got %s", fn.Params[0])
	}
	if fn.Params[1].Name.Value != "b" || fn.Params[1].Type.Name() != "float" {
		t.Errorf("param 1: got %s", fn.Params[1])
	}
	if !fn.ExplicitReturn || fn.ReturnType.Name() != "float" {
		t.Errorf("return type: got %q explicit=%v", fn.ReturnType.Name(), fn.ExplicitReturn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("body: got %d statements", len(fn.Body.Statements))
	}
}

func TestOmittedReturnTypeIsUnit(t *testing.T) {
	fn := singleFunction(t, parseUnit(t, "fn main()\n    1.0\n"))
	if fn.ExplicitReturn {
		t.Error("return type should be implicit")
	}
	if fn.ReturnType.Name() != "()" {
		t.Errorf("got %q, want ()", fn.ReturnType.Name())
	}
}

func TestExplicitUnitReturnType(t *testing.T) {
	fn := singleFunction(t, parseUnit(t, "fn main() -> ()\n    1.0\n"))
	if !fn.ExplicitReturn {
		t.Error("return type should be explicit")
	}
	if fn.ReturnType.Name() != "()" {
		t.Errorf("got %q, want ()", fn.ReturnType.Name())
	}
}

func TestMultipleFunctions(t *testing.T) {
	unit := parseUnit(t, "fn one() -> float\n    1.0\n\nfn two() -> float\n    2.0\n")
	if len(unit.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(unit.Items))
	}
}

func TestVarDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		varName string
		mutable bool
		typed   string
	}{
		{"plain", "let x = 1.0", "x", false, ""},
		{"mutable", "let mut y = 2.0", "y", true, ""},
		{"annotated", "let z: float = 3.0", "z", false, "float"},
		{"annotated unit", "let u: () = ()", "u", false, "()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := parseBody(t, tt.input)
			decl, ok := block.Statements[0].(*ast.VarDeclaration)
			if !ok {
				t.Fatalf("got %T", block.Statements[0])
			}
			if decl.Name.Value != tt.varName {
				t.Errorf("name: got %q", decl.Name.Value)
			}
			if decl.Mutable != tt.mutable {
				t.Errorf("mutable: got %v", decl.Mutable)
			}
			if tt.typed == "" && decl.Type != nil {
				t.Errorf("unexpected annotation %s", decl.Type)
			}
			if tt.typed != "" && (decl.Type == nil || decl.Type.Name() != tt.typed) {
				t.Errorf("annotation: got %v, want %q", decl.Type, tt.typed)
			}
		})
	}
}

func TestReturnStatements(t *testing.T) {
	block := parseBody(t, "return 1.0 + 2.0")
	ret, ok := block.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("got %T", block.Statements[0])
	}
	if ret.Value == nil {
		t.Fatal("expected a return value")
	}

	block = parseBody(t, "return")
	ret = block.Statements[0].(*ast.ReturnStatement)
	if ret.Value != nil {
		t.Errorf("bare return should have no value, got %s", ret.Value)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.0 + 2.0 * 3.0", "(1.0 + (2.0 * 3.0))"},
		{"1.0 * 2.0 + 3.0", "((1.0 * 2.0) + 3.0)"},
		{"a + b - c", "((a + b) - c)"},
		{"a == b + c", "(a == (b + c))"},
		{"a < b == b < c", "((a < b) == (b < c))"},
		{"-a * b", "((-a) * b)"},
		{"a % b / c", "((a % b) / c)"},
		{"(a + b) * c", "((a + b) * c)"},
		{"a <= b", "(a <= b)"},
		{"a != b", "(a != b)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			block := parseBody(t, tt.input)
			stmt, ok := block.Statements[0].(*ast.ExpressionStatement)
			if !ok {
				t.Fatalf("got %T", block.Statements[0])
			}
			if got := stmt.Expression.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLiterals(t *testing.T) {
	block := parseBody(t, "true")
	expr := block.Statements[0].(*ast.ExpressionStatement).Expression
	b, ok := expr.(*ast.BooleanLiteral)
	if !ok || !b.Value {
		t.Errorf("got %T %s", expr, expr)
	}

	block = parseBody(t, "3.5")
	expr = block.Statements[0].(*ast.ExpressionStatement).Expression
	n, ok := expr.(*ast.NumberLiteral)
	if !ok || n.Value != 3.5 {
		t.Errorf("got %T %s", expr, expr)
	}

	block = parseBody(t, "()")
	expr = block.Statements[0].(*ast.ExpressionStatement).Expression
	if _, ok := expr.(*ast.UnitLiteral); !ok {
		t.Errorf("got %T %s", expr, expr)
	}
}

func TestAssignment(t *testing.T) {
	block := parseBody(t, "x = y + 1.0")
	expr := block.Statements[0].(*ast.ExpressionStatement).Expression
	assign, ok := expr.(*ast.AssignExpression)
	if !ok {
		t.Fatalf("got %T", expr)
	}
	if assign.Target.Value != "x" {
		t.Errorf("target: got %q", assign.Target.Value)
	}
	if assign.Value.String() != "(y + 1.0)" {
		t.Errorf("value: got %q", assign.Value.String())
	}
}

func TestCallWithNamedArguments(t *testing.T) {
	block := parseBody(t, "add(a: 1.0, b: x * 2.0)")
	expr := block.Statements[0].(*ast.ExpressionStatement).Expression
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("got %T", expr)
	}
	if call.Function.Value != "add" {
		t.Errorf("callee: got %q", call.Function.Value)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("arguments: got %d", len(call.Arguments))
	}
	if call.Arguments[0].Name.Value != "a" {
		t.Errorf("arg 0 name: got %q", call.Arguments[0].Name.Value)
	}
	if call.Arguments[1].Value.String() != "(x * 2.0)" {
		t.Errorf("arg 1 value: got %q", call.Arguments[1].Value.String())
	}
}

func TestCallWithoutArguments(t *testing.T) {
	block := parseBody(t, "main()")
	call := block.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if len(call.Arguments) != 0 {
		t.Errorf("got %d arguments", len(call.Arguments))
	}
}

func TestInlineIfExpression(t *testing.T) {
	block := parseBody(t, "let x = if c => 1.0 else 0.0")
	decl := block.Statements[0].(*ast.VarDeclaration)
	ifExpr, ok := decl.Value.(*ast.IfExpression)
	if !ok {
		t.Fatalf("got %T", decl.Value)
	}
	if ifExpr.Condition.String() != "c" {
		t.Errorf("condition: got %q", ifExpr.Condition.String())
	}
	if ifExpr.Consequence.String() != "1.0" || ifExpr.Alternative.String() != "0.0" {
		t.Errorf("branches: got %q / %q", ifExpr.Consequence.String(), ifExpr.Alternative.String())
	}
}

func TestInlineIfStatement(t *testing.T) {
	block := parseBody(t, "if c => 1.0 else 0.0")
	stmt, ok := block.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("got %T", block.Statements[0])
	}
	if _, ok := stmt.Expression.(*ast.IfExpression); !ok {
		t.Fatalf("got %T", stmt.Expression)
	}
}

func TestIfBlock(t *testing.T) {
	input := `fn classify(x: float)
    if x < 0.0
        let a = 1.0
    else if x > 0.0
        let b = 2.0
    else
        let c = 3.0
`
	fn := singleFunction(t, parseUnit(t, input))
	ifBlock, ok := fn.Body.Statements[0].(*ast.IfBlock)
	if !ok {
		t.Fatalf("got %T", fn.Body.Statements[0])
	}
	if len(ifBlock.Conditionals) != 2 {
		t.Fatalf("conditionals: got %d", len(ifBlock.Conditionals))
	}
	if ifBlock.Conditionals[0].Condition.String() != "(x < 0.0)" {
		t.Errorf("arm 0 condition: got %q", ifBlock.Conditionals[0].Condition.String())
	}
	if ifBlock.Else == nil || len(ifBlock.Else.Statements) != 1 {
		t.Error("expected an else block with one statement")
	}
}

func TestIfBlockWithoutElse(t *testing.T) {
	input := "fn f(c: bool)\n    if c\n        1.0\n    let after = 2.0\n"
	fn := singleFunction(t, parseUnit(t, input))
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("got %d statements", len(fn.Body.Statements))
	}
	ifBlock := fn.Body.Statements[0].(*ast.IfBlock)
	if ifBlock.Else != nil {
		t.Error("unexpected else block")
	}
	if _, ok := fn.Body.Statements[1].(*ast.VarDeclaration); !ok {
		t.Errorf("statement after if: got %T", fn.Body.Statements[1])
	}
}

func TestDoBlock(t *testing.T) {
	input := "fn f()\n    do\n        let x = 1.0\n    let y = 2.0\n"
	fn := singleFunction(t, parseUnit(t, input))
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("got %d statements", len(fn.Body.Statements))
	}
	doBlock, ok := fn.Body.Statements[0].(*ast.DoBlock)
	if !ok {
		t.Fatalf("got %T", fn.Body.Statements[0])
	}
	if len(doBlock.Block.Statements) != 1 {
		t.Errorf("do body: got %d statements", len(doBlock.Block.Statements))
	}
}

func TestMissingNewlineAtEOF(t *testing.T) {
	fn := singleFunction(t, parseUnit(t, "fn id(x: float) -> float\n    x"))
	if len(fn.Body.Statements) != 1 {
		t.Errorf("got %d statements", len(fn.Body.Statements))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"top level expression", "1.0 + 2.0\n"},
		{"missing param type", "fn f(x)\n    x\n"},
		{"missing body", "fn f()\n"},
		{"positional call argument", "fn f()\n    g(1.0)\n"},
		{"assign to literal", "fn f()\n    1.0 = 2.0\n"},
		{"missing else in inline if", "fn f()\n    let x = if c => 1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(lexer.New(tt.input))
			p.ParseUnit()
			if len(p.Errors()) == 0 {
				t.Errorf("expected parse errors for %q", tt.input)
			}
		})
	}
}

func TestErrorRecoveryFindsMultipleErrors(t *testing.T) {
	input := "fn f(x float)\n    x\n\nfn g()\n    let = 1.0\n"
	p := New(lexer.New(input))
	p.ParseUnit()
	if len(p.Errors()) < 2 {
		t.Errorf("expected at least 2 errors, got %d: %v", len(p.Errors()), p.Errors())
	}
}
