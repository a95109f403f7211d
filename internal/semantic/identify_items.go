package semantic

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// originTable remembers the declaring token for every assigned id so
// redeclaration diagnostics can point back at the original site.
type originTable map[string]lexer.Token

func (o originTable) record(id ast.ScopedId, tok lexer.Token) {
	o[id.Key()] = tok
}

func (o originTable) refs(id ast.ScopedId) []lexer.Token {
	if tok, ok := o[id.Key()]; ok {
		return []lexer.Token{tok}
	}
	return nil
}

// ItemIdentifier assigns ScopedIds to top-level items and their
// parameters. Each function gets the next id at the unit's top level;
// its parameters get fresh ids one scope down. Parameters are also
// bound in the global scope under the qualified key "Fn::param" so the
// expression pass can resolve named call arguments.
type ItemIdentifier struct {
	errors  *Collector
	scope   *ScopeBuilder
	origins originTable
	current ast.ScopedId
}

// NewItemIdentifier creates the pass. The starting id continues the
// sequence the type scope seeded, keeping item ids clear of type ids.
func NewItemIdentifier(errors *Collector, scope *ScopeBuilder, origins originTable, start ast.ScopedId) *ItemIdentifier {
	return &ItemIdentifier{
		errors:  errors,
		scope:   scope,
		origins: origins,
		current: start.Clone(),
	}
}

// VisitUnit identifies every item in the unit. The top-level scope
// frame is left in place for the passes that follow.
func (ii *ItemIdentifier) VisitUnit(unit *ast.Unit) {
	ii.scope.NewScope()
	for _, item := range unit.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			ii.visitFunction(fn)
		}
	}
}

func (ii *ItemIdentifier) visitFunction(fn *ast.FunctionDecl) {
	name := fn.Name.Value
	if prev, ok := ii.scope.Get(name); ok {
		ii.errors.Errorf(fn.Name.Token, ii.origins.refs(prev),
			"function %s is already declared", name)
		return
	}

	fnID := ii.current.Clone()
	ii.scope.DefineLocal(name, fnID)
	ii.origins.record(fnID, fn.Name.Token)
	fn.SetID(fnID)

	// Parameters live one scope down from the function itself.
	ii.current.Push()
	ii.scope.NewScope()

	for _, param := range fn.Params {
		pname := param.Name.Value
		if prev, ok := ii.scope.Get(pname); ok {
			ii.errors.Errorf(param.Name.Token, ii.origins.refs(prev),
				"parameter %s of function %s is already declared", pname, name)
			// A duplicate aborts the rest of this parameter list.
			break
		}
		ii.scope.DefineLocal(pname, ii.current)
		ii.scope.DefineGlobal(name+"::"+pname, ii.current)
		ii.origins.record(ii.current, param.Name.Token)
		param.Name.SetID(ii.current)
		ii.current.Increment()
	}

	ii.scope.Pop()
	ii.current.Pop()
	ii.current.Increment()
}
