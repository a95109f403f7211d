package semantic

import "github.com/rill-lang/rill/internal/ast"

// ScopeBuilder maps names to ScopedIds across a stack of lexical
// scopes, plus a flat set of every id ever defined for existence
// queries.
//
// The builder itself enforces no shadowing policy; callers choose by
// querying Get (no shadowing anywhere) or GetLocal (shadowing allowed
// across frames) before defining.
type ScopeBuilder struct {
	scopes  []map[string]ast.ScopedId
	defined map[string]struct{}
}

// NewScopeBuilder creates a builder with no scopes. Callers must push
// a scope with NewScope before defining anything.
func NewScopeBuilder() *ScopeBuilder {
	return &ScopeBuilder{defined: make(map[string]struct{})}
}

// NewScope pushes a fresh scope frame.
func (sb *ScopeBuilder) NewScope() {
	sb.scopes = append(sb.scopes, make(map[string]ast.ScopedId))
}

// Pop removes the topmost scope frame and returns it.
func (sb *ScopeBuilder) Pop() map[string]ast.ScopedId {
	if len(sb.scopes) == 0 {
		return nil
	}
	top := sb.scopes[len(sb.scopes)-1]
	sb.scopes = sb.scopes[:len(sb.scopes)-1]
	return top
}

// Depth returns the number of scope frames.
func (sb *ScopeBuilder) Depth() int { return len(sb.scopes) }

// DefineLocal inserts the key into the topmost frame.
func (sb *ScopeBuilder) DefineLocal(key string, id ast.ScopedId) {
	sb.defined[id.Key()] = struct{}{}
	sb.scopes[len(sb.scopes)-1][key] = id.Clone()
}

// DefineGlobal inserts the key into the bottom frame.
func (sb *ScopeBuilder) DefineGlobal(key string, id ast.ScopedId) {
	sb.defined[id.Key()] = struct{}{}
	sb.scopes[0][key] = id.Clone()
}

// Get searches from the innermost frame outward and returns the first
// binding for the key.
func (sb *ScopeBuilder) Get(key string) (ast.ScopedId, bool) {
	for i := len(sb.scopes) - 1; i >= 0; i-- {
		if id, ok := sb.scopes[i][key]; ok {
			return id, true
		}
	}
	return ast.ScopedId{}, false
}

// GetLocal queries only the topmost frame.
func (sb *ScopeBuilder) GetLocal(key string) (ast.ScopedId, bool) {
	if len(sb.scopes) == 0 {
		return ast.ScopedId{}, false
	}
	id, ok := sb.scopes[len(sb.scopes)-1][key]
	return id, ok
}

// GetInScope searches only the frames strictly below the given level,
// from the highest of those outward.
func (sb *ScopeBuilder) GetInScope(key string, level int) (ast.ScopedId, bool) {
	if level > len(sb.scopes) {
		level = len(sb.scopes)
	}
	for i := level - 1; i >= 0; i-- {
		if id, ok := sb.scopes[i][key]; ok {
			return id, true
		}
	}
	return ast.ScopedId{}, false
}

// ContainsID reports whether the id has ever been defined in any
// frame, including frames that have since been popped.
func (sb *ScopeBuilder) ContainsID(id ast.ScopedId) bool {
	_, ok := sb.defined[id.Key()]
	return ok
}
