package semantic

import "github.com/rill-lang/rill/internal/ast"

// ExprIdentifier assigns ScopedIds to names used inside function
// bodies: variable declarations, references, assignment targets,
// callees, and named call arguments. It also assigns each block and
// if-block its scope id and marks value consumption through the
// source cells.
//
// Entering a block pushes both the running id and a scope frame, so
// every declaration gets a unique id even when names shadow across
// blocks. Declarations at one level consume successive ids.
type ExprIdentifier struct {
	errors  *Collector
	scope   *ScopeBuilder
	origins originTable
	current ast.ScopedId
}

// NewExprIdentifier creates the pass. It reuses the scope builder the
// item pass populated with items and qualified parameter names.
func NewExprIdentifier(errors *Collector, scope *ScopeBuilder, origins originTable) *ExprIdentifier {
	return &ExprIdentifier{errors: errors, scope: scope, origins: origins}
}

// VisitUnit identifies names in every previously identified function.
func (ei *ExprIdentifier) VisitUnit(unit *ast.Unit) {
	for _, item := range unit.Items {
		fn, ok := item.(*ast.FunctionDecl)
		if !ok || !fn.Name.HasID() {
			continue
		}
		ei.visitFunction(fn)
	}
}

func (ei *ExprIdentifier) visitFunction(fn *ast.FunctionDecl) {
	ei.current = fn.ID().Clone()
	ei.current.Push() // parameter level
	ei.current.Push() // entry block level

	// A function whose declared return type is not () consumes its
	// body's final expression as the implicit return value.
	if fn.ReturnType != nil && fn.ReturnType.Name() != "()" {
		fn.Body.SetSource(fn.ID())
	}

	// Bring the parameters back into scope for the body.
	ei.scope.NewScope()
	for _, param := range fn.Params {
		if param.Name.HasID() {
			ei.scope.DefineLocal(param.Name.Value, param.Name.ID())
		}
	}

	ei.visitBlock(fn.Body)

	ei.scope.Pop()
}

func (ei *ExprIdentifier) visitBlock(block *ast.Block) {
	ei.current.Increment()
	block.SetID(ei.current)

	// A consumed block hands its consumption down to a trailing
	// if-block or do-block, which yields the block's value.
	if block.HasSource() && len(block.Statements) > 0 {
		switch last := block.Statements[len(block.Statements)-1].(type) {
		case *ast.IfBlock:
			last.SetSource(block.ID())
		case *ast.DoBlock:
			last.Block.SetSource(block.ID())
		}
	}

	ei.current.Push()
	ei.scope.NewScope()
	for _, stmt := range block.Statements {
		ei.visitStatement(stmt)
	}
	ei.scope.Pop()
	ei.current.Pop()
}

func (ei *ExprIdentifier) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		ei.visitExpression(s.Expression)
	case *ast.ReturnStatement:
		if s.Value != nil {
			ei.visitExpression(s.Value)
		}
	case *ast.VarDeclaration:
		ei.visitDeclaration(s)
	case *ast.DoBlock:
		ei.visitBlock(s.Block)
	case *ast.IfBlock:
		ei.visitIfBlock(s)
	}
}

func (ei *ExprIdentifier) visitIfBlock(ifBlock *ast.IfBlock) {
	ei.current.Increment()
	ifBlock.SetID(ei.current)

	// Arms of a consumed if-block are themselves consumed by it.
	valued := ifBlock.HasSource()
	for _, cond := range ifBlock.Conditionals {
		ei.visitExpression(cond.Condition)
		if valued {
			cond.Block.SetSource(ifBlock.ID())
		}
		ei.visitBlock(cond.Block)
	}
	if ifBlock.Else != nil {
		if valued {
			ifBlock.Else.SetSource(ifBlock.ID())
		}
		ei.visitBlock(ifBlock.Else)
	}
}

func (ei *ExprIdentifier) visitDeclaration(decl *ast.VarDeclaration) {
	ei.visitExpression(decl.Value)

	name := decl.Name.Value
	if prev, ok := ei.scope.Get(name); ok {
		// Checking every frame rejects shadowing outright; checking
		// only the local frame would permit it.
		ei.errors.Errorf(decl.Name.Token, ei.origins.refs(prev),
			"variable %s is already declared", name)
		return
	}
	ei.current.Increment()
	ei.scope.DefineLocal(name, ei.current)
	ei.origins.record(ei.current, decl.Name.Token)
	decl.Name.SetID(ei.current)
}

func (ei *ExprIdentifier) visitExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		ei.visitVarRef(e)
	case *ast.BooleanLiteral, *ast.NumberLiteral, *ast.UnitLiteral:
		// Literals carry no names.
	case *ast.UnaryExpression:
		ei.visitExpression(e.Operand)
	case *ast.BinaryExpression:
		ei.visitExpression(e.Left)
		ei.visitExpression(e.Right)
	case *ast.IfExpression:
		ei.visitExpression(e.Condition)
		ei.visitExpression(e.Consequence)
		ei.visitExpression(e.Alternative)
	case *ast.AssignExpression:
		ei.visitAssignment(e)
	case *ast.CallExpression:
		ei.visitCall(e)
	}
}

func (ei *ExprIdentifier) visitVarRef(ident *ast.Identifier) {
	if id, ok := ei.scope.Get(ident.Value); ok {
		ident.SetID(id)
		return
	}
	ei.errors.Errorf(ident.Token, nil, "unknown reference %s", ident.Value)
}

func (ei *ExprIdentifier) visitAssignment(assign *ast.AssignExpression) {
	ei.visitExpression(assign.Value)

	if id, ok := ei.scope.Get(assign.Target.Value); ok {
		assign.Target.SetID(id)
		return
	}
	ei.errors.Errorf(assign.Target.Token, nil,
		"unknown variable %s", assign.Target.Value)
}

func (ei *ExprIdentifier) visitCall(call *ast.CallExpression) {
	fnID, known := ei.scope.Get(call.Function.Value)
	if known {
		call.Function.SetID(fnID)
	} else {
		ei.errors.Errorf(call.Function.Token, nil,
			"unknown function %s", call.Function.Value)
	}

	// Argument expressions are visited even when the callee or a
	// parameter name fails to resolve, so independent errors inside
	// them surface together.
	for _, arg := range call.Arguments {
		if known {
			key := call.Function.Value + "::" + arg.Name.Value
			if paramID, ok := ei.scope.Get(key); ok {
				arg.Name.SetID(paramID)
			} else {
				ei.errors.Errorf(arg.Name.Token, nil,
					"unknown parameter %s of %s", arg.Name.Value, call.Function.Value)
			}
		}
		ei.visitExpression(arg.Value)
	}
}
