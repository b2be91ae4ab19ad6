package translate

import (
	"tiger/internal/frame"
	"tiger/internal/ir"
	"tiger/internal/temp"
)

// Fragment is one unit of translator output: a procedure body or a string
// literal. The back-end consumes the fragment list.
type Fragment interface {
	fragment()
}

// ProcFragment is one function body (or the program body) with its frame.
type ProcFragment struct {
	Body  ir.Stm
	Frame frame.Frame
}

// StringFragment is a string literal bound to a fresh label.
type StringFragment struct {
	Label temp.Label
	Value string
}

func (*ProcFragment) fragment()   {}
func (*StringFragment) fragment() {}
