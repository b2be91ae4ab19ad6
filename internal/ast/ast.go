// Package ast defines the Tiger syntax tree produced by the parser.
//
// Nodes are immutable after parsing with one exception: the Escape bits on
// VarDecl, Field, and ForExpr, which the escape pass writes once. Every later
// traversal is read-only.
package ast

import (
	"tiger/internal/source"
)

// Node is anything with a source location.
type Node interface {
	Span() source.Span
}

// Expr is a Tiger expression.
type Expr interface {
	Node
	exprNode()
}

// Var is an l-value. Its leftmost node is always a SimpleVar.
type Var interface {
	Node
	varNode()
}

// Decl is a declaration inside a let.
type Decl interface {
	Node
	declNode()
}

// Ty is a syntactic type on the right side of a type declaration.
type Ty interface {
	Node
	tyNode()
}

// Field is a function parameter or a record-type field: name plus type name.
// For parameters, Escape is written by the escape pass.
type Field struct {
	Name     string
	TypeName string
	Escape   bool
	Sp       source.Span
}

func (f *Field) Span() source.Span { return f.Sp }
