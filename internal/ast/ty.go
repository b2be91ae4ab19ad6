package ast

import (
	"tiger/internal/source"
)

// NameTy references a named type.
type NameTy struct {
	Name string
	Sp   source.Span
}

// RecordTy is { name: type, ... } with fields in declaration order.
type RecordTy struct {
	Fields []*Field
	Sp     source.Span
}

// ArrayTy is array of elem.
type ArrayTy struct {
	Elem string
	Sp   source.Span
}

func (t *NameTy) Span() source.Span   { return t.Sp }
func (t *RecordTy) Span() source.Span { return t.Sp }
func (t *ArrayTy) Span() source.Span  { return t.Sp }

func (*NameTy) tyNode()   {}
func (*RecordTy) tyNode() {}
func (*ArrayTy) tyNode()  {}
