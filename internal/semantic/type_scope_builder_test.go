package semantic

import (
	"testing"

	"github.com/rill-lang/rill/internal/types"
)

func TestPrimitivesSeeded(t *testing.T) {
	tsb := NewTypeScopeBuilder()

	// `()`, `bool`, `float` at consecutive ids from the first
	// non-default id.
	tests := []struct {
		name string
		id   int
	}{
		{"()", 1},
		{"bool", 2},
		{"float", 3},
	}
	for _, tt := range tests {
		id, ok := tsb.NamedTypeID(tt.name)
		if !ok {
			t.Fatalf("%s not seeded", tt.name)
		}
		if !id.Equals(sid(tt.id)) {
			t.Errorf("%s: got id %s, want %d", tt.name, id, tt.id)
		}
		typ, ok := tsb.TypeOf(id)
		if !ok || typ.String() != tt.name {
			t.Errorf("%s: TypeOf returned %v (%v)", tt.name, typ, ok)
		}
	}
}

func TestUnknownTypeName(t *testing.T) {
	tsb := NewTypeScopeBuilder()
	if _, ok := tsb.NamedTypeID("int"); ok {
		t.Error("int should not resolve")
	}
	if _, ok := tsb.NamedType("string"); ok {
		t.Error("string should not resolve")
	}
}

func TestAddTypeByID(t *testing.T) {
	tsb := NewTypeScopeBuilder()
	fnID := tsb.FirstItemID()
	sig := &types.FunctionType{
		Params:     []types.Param{{Name: "x", Type: types.FLOAT}},
		ReturnType: types.FLOAT,
	}
	tsb.AddType(fnID, sig)

	got, ok := tsb.TypeOf(fnID)
	if !ok || !got.Equals(sig) {
		t.Errorf("got %v (%v), want %s", got, ok, sig)
	}

	// Registered by id only: no name entry appears.
	if _, ok := tsb.NamedTypeID(sig.String()); ok {
		t.Error("function types should not be referenceable by name")
	}
}

func TestFirstItemIDClearOfPrimitives(t *testing.T) {
	tsb := NewTypeScopeBuilder()
	first := tsb.FirstItemID()
	if !first.Equals(sid(4)) {
		t.Errorf("got %s, want 4", first)
	}
	if _, ok := tsb.TypeOf(first); ok {
		t.Error("first item id should not be occupied")
	}
}
