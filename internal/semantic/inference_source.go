package semantic

// InferenceSource labels a constraint edge in the type graph with the
// language rule that produced it. Sources exist for diagnostics: when
// inference fails, the path of sources explains why the solver believed
// what it believed.
type InferenceSource int

const (
	// SourceFnSignature ties a function variable to its signature type.
	SourceFnSignature InferenceSource = iota
	// SourceFnReturnType ties a function's implicit result to its
	// declared return type.
	SourceFnReturnType
	// SourceFnParameter ties a parameter variable to its declared type.
	SourceFnParameter
	// SourceCallArgument ties an argument expression to a call site.
	SourceCallArgument
	// SourceCallReturnType ties a call's result to the callee's
	// declared return type.
	SourceCallReturnType
	// SourceExplicitDecl ties a variable to its written annotation.
	SourceExplicitDecl
	// SourceDeclaration ties a variable to its initializer.
	SourceDeclaration
	// SourceLiteralValue ties an expression to a literal's type.
	SourceLiteralValue
	// SourceIfConditionBool requires a conditional to be bool.
	SourceIfConditionBool
	// SourceIfBranchesSame requires conditional branches to agree.
	SourceIfBranchesSame
	// SourceExplicitReturn ties a return expression to the function
	// return type.
	SourceExplicitReturn
	// SourceImplicitReturn ties a valued block to its last expression.
	SourceImplicitReturn
	// SourceAssignment ties an rvalue to the assigned variable.
	SourceAssignment
	// SourceNumericOperator requires an operand or result to be float.
	SourceNumericOperator
	// SourceBooleanOperator requires a result to be bool.
	SourceBooleanOperator
	// SourceEqualityOperator requires operands of == and != to agree.
	SourceEqualityOperator
	// SourceInferred caches a solver result for later queries.
	SourceInferred
)

var inferenceSourceNames = [...]string{
	SourceFnSignature:      "FnSignature",
	SourceFnReturnType:     "FnReturnType",
	SourceFnParameter:      "FnParameter",
	SourceCallArgument:     "CallArgument",
	SourceCallReturnType:   "CallReturnType",
	SourceExplicitDecl:     "ExplicitDecl",
	SourceDeclaration:      "Declaration",
	SourceLiteralValue:     "LiteralValue",
	SourceIfConditionBool:  "IfConditionBool",
	SourceIfBranchesSame:   "IfBranchesSame",
	SourceExplicitReturn:   "ExplicitReturn",
	SourceImplicitReturn:   "ImplicitReturn",
	SourceAssignment:       "Assignment",
	SourceNumericOperator:  "NumericOperator",
	SourceBooleanOperator:  "BooleanOperator",
	SourceEqualityOperator: "EqualityOperator",
	SourceInferred:         "Inferred",
}

// String returns the source's name.
func (s InferenceSource) String() string {
	if int(s) < len(inferenceSourceNames) {
		return inferenceSourceNames[s]
	}
	return "Unknown"
}
