// Package types defines the semantic types of Tiger programs.
//
// Identity is nominal: Int, String, Nil, and Unit are process-wide singletons,
// while every record and array declaration mints a fresh ID, so two
// structurally identical declarations are distinct types. Name is the
// recursion knot: type declarations first enter an unbound Name into the
// environment and bind it later, which is what lets a batch of consecutive
// type declarations refer to each other.
package types

import (
	"fmt"
	"strings"
)

// Type is a semantic Tiger type.
type Type interface {
	typeNode()
	String() string
}

type IntType struct{}
type StringType struct{}
type NilType struct{}
type UnitType struct{}

// Singletons shared across the whole program.
var (
	Int    = &IntType{}
	String = &StringType{}
	Nil    = &NilType{}
	Unit   = &UnitType{}
)

// Field is one record field: name and type, in declaration order.
type Field struct {
	Name string
	Type Type
}

// RecordType has reference semantics and a unique ID per declaration.
type RecordType struct {
	ID     uint32
	Fields []Field
}

// FieldIndex returns the declaration-order index of name, or -1.
func (t *RecordType) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// ArrayType has a unique ID per declaration.
type ArrayType struct {
	ID   uint32
	Elem Type
}

// NameType is an alias cell. Binding is nil until the declaration batch's
// body phase fills it in; it is bound at most once.
type NameType struct {
	Sym     string
	Binding Type
}

// Bind fills in the alias target. Binding twice is a compiler bug.
func (t *NameType) Bind(target Type) {
	if t.Binding != nil {
		panic(fmt.Sprintf("types: alias %q bound twice", t.Sym))
	}
	t.Binding = target
}

func (*IntType) typeNode()    {}
func (*StringType) typeNode() {}
func (*NilType) typeNode()    {}
func (*UnitType) typeNode()   {}
func (*RecordType) typeNode() {}
func (*ArrayType) typeNode()  {}
func (*NameType) typeNode()   {}

func (*IntType) String() string    { return "int" }
func (*StringType) String() string { return "string" }
func (*NilType) String() string    { return "nil" }
func (*UnitType) String() string   { return "unit" }

func (t *RecordType) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, f := range t.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		if _, ok := f.Type.(*RecordType); ok {
			// Avoid infinite recursion through recursive records.
			sb.WriteString("...")
		} else {
			sb.WriteString(f.Type.String())
		}
	}
	sb.WriteString("}")
	return sb.String()
}

func (t *ArrayType) String() string {
	return "array of " + t.Elem.String()
}

func (t *NameType) String() string {
	return t.Sym
}
