package semantic

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/types"
)

// ExprTypographer walks function bodies and turns every expression
// into constraint edges in the type graph.
//
// The pass keeps a running "current type" node: visiting an expression
// leaves the node standing for that expression's type, which the
// enclosing construct then constrains. Edge direction is chosen so a
// determined variable can always reach a concrete type sink by plain
// forward traversal.
type ExprTypographer struct {
	typeScope *TypeScopeBuilder
	errors    *Collector
	graph     *TypeGraph

	current NodeIndex // type node of the last visited expression
	fnRet   NodeIndex // return type node of the current function
}

// NewExprTypographer creates the pass.
func NewExprTypographer(typeScope *TypeScopeBuilder, errors *Collector, graph *TypeGraph) *ExprTypographer {
	return &ExprTypographer{
		typeScope: typeScope,
		errors:    errors,
		graph:     graph,
		current:   invalidNode,
		fnRet:     invalidNode,
	}
}

// primitive returns the graph node of a seeded primitive type.
func (et *ExprTypographer) primitive(name string) NodeIndex {
	id, ok := et.typeScope.NamedTypeID(name)
	if !ok {
		panic("semantic: primitive " + name + " not seeded")
	}
	ix, ok := et.graph.TypeNode(id)
	if !ok {
		panic("semantic: primitive " + name + " not in graph")
	}
	return ix
}

// VisitUnit processes every identified function in the unit.
func (et *ExprTypographer) VisitUnit(unit *ast.Unit) {
	for _, item := range unit.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		et.visitFunction(fn)
	}
}

func (et *ExprTypographer) visitFunction(fn *ast.FunctionDecl) {
	fnID := fn.ID()
	if fnID.IsDefault() || fn.ReturnType.ID().IsDefault() {
		return
	}
	if _, ok := et.typeScope.TypeOf(fnID); !ok {
		// The signature never made it into the type scope; whatever
		// went wrong has already been reported.
		return
	}

	unitID, _ := et.typeScope.NamedTypeID("()")
	needsValue := !fn.ReturnType.ID().Equals(unitID)

	et.fnRet = et.graph.AddType(fn.ReturnType.ID())

	// The function is usable both as a name (variable node) and as a
	// callee signature (type node registered by the item typographer).
	fnVar := et.graph.AddVariable(fnID)
	fnType := et.graph.AddType(fnID)
	et.graph.AddInference(fnVar, fnType, SourceFnSignature)

	et.visitBlock(fn.Body)

	// A valued body left its block node as the current type; require
	// it to match the declared return type.
	if needsValue {
		et.graph.AddInference(et.current, et.fnRet, SourceFnReturnType)
	}
}

func (et *ExprTypographer) visitBlock(block *ast.Block) {
	if block.ID().IsDefault() {
		et.current = et.primitive("()")
		return
	}
	if len(block.Statements) == 0 {
		et.current = et.primitive("()")
		return
	}

	for _, stmt := range block.Statements {
		et.visitStatement(stmt)
	}

	if block.HasSource() {
		blockVar := et.graph.AddVariable(block.ID())
		et.graph.AddInference(blockVar, et.current, SourceImplicitReturn)
		et.current = blockVar
	} else {
		et.current = et.primitive("()")
	}
}

func (et *ExprTypographer) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		et.visitExpression(s.Expression)
	case *ast.ReturnStatement:
		et.visitReturn(s)
	case *ast.VarDeclaration:
		et.visitDeclaration(s)
	case *ast.DoBlock:
		et.visitBlock(s.Block)
	case *ast.IfBlock:
		et.visitIfBlock(s)
	}
}

func (et *ExprTypographer) visitReturn(ret *ast.ReturnStatement) {
	unitType := et.primitive("()")
	et.current = unitType
	if ret.Value != nil {
		et.visitExpression(ret.Value)
		if et.current != unitType {
			et.graph.AddInference(et.current, et.fnRet, SourceExplicitReturn)
		}
		return
	}
	// A bare return forces the function's return type to be ().
	et.graph.AddInference(et.fnRet, unitType, SourceExplicitReturn)
}

func (et *ExprTypographer) visitDeclaration(decl *ast.VarDeclaration) {
	et.visitExpression(decl.Value)

	if decl.ID().IsDefault() {
		et.current = et.primitive("()")
		return
	}
	declVar := et.graph.AddVariable(decl.ID())

	if decl.Type != nil && !decl.Type.ID().IsDefault() {
		declType := et.graph.AddType(decl.Type.ID())
		et.graph.AddInference(declVar, declType, SourceExplicitDecl)
	}
	et.graph.AddInference(declVar, et.current, SourceDeclaration)

	et.current = et.primitive("()")
}

func (et *ExprTypographer) visitIfBlock(ifBlock *ast.IfBlock) {
	if ifBlock.ID().IsDefault() {
		et.current = et.primitive("()")
		return
	}

	valued := ifBlock.HasSource()
	ifVar := et.graph.AddVariable(ifBlock.ID())
	boolType := et.primitive("bool")

	for _, cond := range ifBlock.Conditionals {
		et.visitExpression(cond.Condition)
		et.graph.AddInference(et.current, boolType, SourceIfConditionBool)

		et.visitBlock(cond.Block)
		if valued {
			et.graph.AddInference(ifVar, et.current, SourceIfBranchesSame)
		}
	}
	if ifBlock.Else != nil {
		et.visitBlock(ifBlock.Else)
		if valued {
			et.graph.AddInference(et.current, ifVar, SourceIfBranchesSame)
		}
	}

	if valued {
		et.current = ifVar
	} else {
		et.current = et.primitive("()")
	}
}

func (et *ExprTypographer) visitExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		et.visitVarRef(e)
	case *ast.BooleanLiteral:
		et.visitLiteral(et.primitive("bool"))
	case *ast.NumberLiteral:
		et.visitLiteral(et.primitive("float"))
	case *ast.UnitLiteral:
		et.visitLiteral(et.primitive("()"))
	case *ast.UnaryExpression:
		et.visitUnary(e)
	case *ast.BinaryExpression:
		et.visitBinary(e)
	case *ast.IfExpression:
		et.visitIfExpression(e)
	case *ast.AssignExpression:
		et.visitAssignment(e)
	case *ast.CallExpression:
		et.visitCall(e)
	}
}

func (et *ExprTypographer) visitVarRef(ident *ast.Identifier) {
	if !ident.HasID() {
		// Identification failed here; an unconstrained node keeps the
		// enclosing expression from tripping over a missing one.
		et.current = et.graph.AddExpression()
		return
	}
	et.current = et.graph.AddVariable(ident.ID())
}

func (et *ExprTypographer) visitLiteral(typeNode NodeIndex) {
	exprNode := et.graph.AddExpression()
	et.graph.AddInference(exprNode, typeNode, SourceLiteralValue)
	et.current = exprNode
}

func (et *ExprTypographer) visitUnary(unary *ast.UnaryExpression) {
	floatType := et.primitive("float")
	et.visitExpression(unary.Operand)
	et.graph.AddInference(et.current, floatType, SourceNumericOperator)

	exprNode := et.graph.AddExpression()
	et.graph.AddInference(exprNode, floatType, SourceNumericOperator)
	et.current = exprNode
}

func (et *ExprTypographer) visitBinary(binary *ast.BinaryExpression) {
	et.visitExpression(binary.Left)
	left := et.current

	et.visitExpression(binary.Right)
	right := et.current

	result := et.graph.AddExpression()

	switch binary.Operator {
	case "==", "!=":
		// Both sides agree; the result is bool.
		boolType := et.primitive("bool")
		et.graph.AddInference(right, left, SourceEqualityOperator)
		et.graph.AddInference(result, boolType, SourceEqualityOperator)
	case "<", ">", "<=", ">=":
		// Both sides are numeric; the result is bool.
		floatType := et.primitive("float")
		boolType := et.primitive("bool")
		et.graph.AddInference(left, floatType, SourceNumericOperator)
		et.graph.AddInference(right, floatType, SourceNumericOperator)
		et.graph.AddInference(result, boolType, SourceBooleanOperator)
	case "+", "-", "*", "/", "%":
		// Both sides and the result are numeric.
		floatType := et.primitive("float")
		et.graph.AddInference(left, floatType, SourceNumericOperator)
		et.graph.AddInference(right, floatType, SourceNumericOperator)
		et.graph.AddInference(result, floatType, SourceNumericOperator)
	}
	et.current = result
}

func (et *ExprTypographer) visitIfExpression(ifExpr *ast.IfExpression) {
	exprNode := et.graph.AddExpression()

	et.visitExpression(ifExpr.Condition)
	et.graph.AddInference(et.current, et.primitive("bool"), SourceIfConditionBool)

	et.visitExpression(ifExpr.Consequence)
	left := et.current

	et.visitExpression(ifExpr.Alternative)
	right := et.current

	// The branches agree, and the expression node sees both so a
	// disagreement shows up as a conflict at the consumer.
	et.graph.AddInference(right, left, SourceIfBranchesSame)
	et.graph.AddInference(exprNode, left, SourceIfBranchesSame)
	et.graph.AddInference(exprNode, right, SourceIfBranchesSame)

	et.current = exprNode
}

func (et *ExprTypographer) visitAssignment(assign *ast.AssignExpression) {
	et.visitExpression(assign.Value)

	if !assign.Target.HasID() {
		et.current = et.primitive("()")
		return
	}
	target := et.graph.AddVariable(assign.Target.ID())
	et.graph.AddInference(et.current, target, SourceAssignment)

	et.current = et.primitive("()")
}

func (et *ExprTypographer) visitCall(call *ast.CallExpression) {
	fnID := call.Function.ID()
	if fnID.IsDefault() {
		et.current = et.graph.AddExpression()
		return
	}

	fnNode, ok := et.graph.TypeNode(fnID)
	if !ok {
		fnNode, ok = et.graph.VariableNode(fnID)
	}
	if !ok {
		et.errors.Errorf(call.Function.Token, nil,
			"unknown function %s", call.Function.Value)
		et.current = et.graph.AddExpression()
		return
	}

	// The callee's signature, when known, lets argument and return
	// nodes reach concrete types directly.
	signature, _ := et.signatureOf(fnID)

	for _, arg := range call.Arguments {
		et.visitExpression(arg.Value)
		argExpr := et.current

		argNode := et.graph.AddCallArg(arg.Name.Value, fnNode)
		et.graph.AddInference(argExpr, argNode, SourceCallArgument)

		if paramType, ok := et.paramTypeNode(signature, arg.Name.Value); ok {
			et.graph.AddInference(argNode, paramType, SourceFnParameter)
		}
	}

	retNode := et.graph.AddCallReturn(fnNode)
	if returnType, ok := et.returnTypeNode(signature); ok {
		et.graph.AddInference(retNode, returnType, SourceCallReturnType)
	}
	et.current = retNode
}

func (et *ExprTypographer) signatureOf(fnID ast.ScopedId) (*types.FunctionType, bool) {
	t, ok := et.typeScope.TypeOf(fnID)
	if !ok {
		return nil, false
	}
	sig, ok := t.(*types.FunctionType)
	return sig, ok
}

// paramTypeNode resolves the graph node of a signature parameter's
// type, matching the argument by name.
func (et *ExprTypographer) paramTypeNode(sig *types.FunctionType, name string) (NodeIndex, bool) {
	if sig == nil {
		return invalidNode, false
	}
	for _, p := range sig.Params {
		if p.Name == name {
			return et.typeNodeFor(p.Type)
		}
	}
	return invalidNode, false
}

func (et *ExprTypographer) returnTypeNode(sig *types.FunctionType) (NodeIndex, bool) {
	if sig == nil {
		return invalidNode, false
	}
	return et.typeNodeFor(sig.ReturnType)
}

// typeNodeFor maps a concrete type back to its graph node. Only named
// types can appear in signatures, so the name lookup suffices.
func (et *ExprTypographer) typeNodeFor(t types.Type) (NodeIndex, bool) {
	named, ok := t.(*types.NamedType)
	if !ok {
		return invalidNode, false
	}
	id, ok := et.typeScope.NamedTypeID(named.Name)
	if !ok {
		return invalidNode, false
	}
	ix, ok := et.graph.TypeNode(id)
	if !ok {
		return invalidNode, false
	}
	return ix, ok
}
