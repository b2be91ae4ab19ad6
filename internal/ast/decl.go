package ast

import (
	"tiger/internal/source"
)

// TypeDecl binds a name to a syntactic type.
type TypeDecl struct {
	Name string
	Ty   Ty
	Sp   source.Span
}

// VarDecl declares a variable with an optional type annotation.
// TypeName is empty when the type is inferred from Init.
// Escape is written by the escape pass.
type VarDecl struct {
	Name     string
	TypeName string
	TypeSp   source.Span
	Init     Expr
	Escape   bool
	Sp       source.Span
}

// FuncDecl declares a function. Result is empty for procedures.
type FuncDecl struct {
	Name     string
	Params   []*Field
	Result   string
	ResultSp source.Span
	Body     Expr
	Sp       source.Span
}

func (d *TypeDecl) Span() source.Span { return d.Sp }
func (d *VarDecl) Span() source.Span  { return d.Sp }
func (d *FuncDecl) Span() source.Span { return d.Sp }

func (*TypeDecl) declNode() {}
func (*VarDecl) declNode()  {}
func (*FuncDecl) declNode() {}
