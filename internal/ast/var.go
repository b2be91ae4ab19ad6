package ast

import (
	"tiger/internal/source"
)

// SimpleVar is a bare identifier l-value.
type SimpleVar struct {
	Name string
	Sp   source.Span
}

// FieldVar selects a record field: base.field.
type FieldVar struct {
	Base  Var
	Field string
	Sp    source.Span
}

// SubscriptVar indexes an array: base[index].
type SubscriptVar struct {
	Base  Var
	Index Expr
	Sp    source.Span
}

func (v *SimpleVar) Span() source.Span    { return v.Sp }
func (v *FieldVar) Span() source.Span     { return v.Sp }
func (v *SubscriptVar) Span() source.Span { return v.Sp }

func (*SimpleVar) varNode()    {}
func (*FieldVar) varNode()     {}
func (*SubscriptVar) varNode() {}
