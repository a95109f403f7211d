// Package types defines the concrete type algebra of rill.
//
// The lattice is finite and closed: named primitive types and function
// types built from them. There are no inference variables here; a value
// of Type is always fully resolved.
package types

import "strings"

// Type is a fully resolved rill type.
type Type interface {
	// String returns the source-level spelling of the type.
	String() string

	// Equals reports structural equality. For function types,
	// parameter names are part of the identity.
	Equals(other Type) bool
}

// NamedType is a primitive type referenced by name.
type NamedType struct {
	Name string
}

func (nt *NamedType) String() string { return nt.Name }

func (nt *NamedType) Equals(other Type) bool {
	o, ok := other.(*NamedType)
	return ok && nt.Name == o.Name
}

// Param is one named function parameter.
type Param struct {
	Name string
	Type Type
}

// FunctionType is the signature of a function: ordered named
// parameters and a return type.
type FunctionType struct {
	Params     []Param
	ReturnType Type
}

func (ft *FunctionType) String() string {
	params := make([]string, len(ft.Params))
	for i, p := range ft.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}
	return "(" + strings.Join(params, ", ") + ") -> " + ft.ReturnType.String()
}

func (ft *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(ft.Params) != len(o.Params) {
		return false
	}
	for i, p := range ft.Params {
		if p.Name != o.Params[i].Name || !p.Type.Equals(o.Params[i].Type) {
			return false
		}
	}
	return ft.ReturnType.Equals(o.ReturnType)
}

// Primitive types, seeded into every type scope in this order.
var (
	UNIT  = &NamedType{Name: "()"}
	BOOL  = &NamedType{Name: "bool"}
	FLOAT = &NamedType{Name: "float"}
)

// PrimitiveNames lists the seeded primitives in their canonical order.
var PrimitiveNames = []string{"()", "bool", "float"}

// Primitive returns the seeded primitive with the given name, or nil.
func Primitive(name string) *NamedType {
	switch name {
	case "()":
		return UNIT
	case "bool":
		return BOOL
	case "float":
		return FLOAT
	}
	return nil
}
