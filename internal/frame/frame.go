// Package frame models activation records behind a dialect-independent
// interface. Two dialects exist: amd64 and mips32. The translator only sees
// Frame, Access, and Factory; the constants live with the dialect.
package frame

import (
	"fmt"

	"tiger/internal/ir"
	"tiger/internal/temp"
)

// Access says where a name lives relative to its frame: a stack slot at a
// fixed offset from the frame pointer, or an abstract register.
type Access interface {
	// Expr builds the IR that reads the access, given the frame pointer of
	// the owning frame as seen from the use site.
	Expr(fp ir.Expr) ir.Expr
}

// InFrame is a stack slot at Offset bytes from the frame pointer.
type InFrame struct {
	Offset int64
}

func (a InFrame) Expr(fp ir.Expr) ir.Expr {
	return &ir.MemExpr{
		Addr: &ir.BinOpExpr{
			Op:    ir.Plus,
			Left:  fp,
			Right: &ir.ConstExpr{Value: a.Offset},
		},
	}
}

// InReg is an abstract register. It is independent of any frame pointer.
type InReg struct {
	Temp temp.Temp
}

func (a InReg) Expr(ir.Expr) ir.Expr {
	return &ir.TempExpr{Temp: a.Temp}
}

// Frame describes one activation record. The first formal is always the
// static link and always escapes.
type Frame interface {
	// Name is the entry label.
	Name() temp.Label
	// Formals lists the accesses of the formal parameters, static link first.
	Formals() []Access
	// AllocLocal reserves a slot for a local: a frame slot when escape is
	// set, a fresh register otherwise.
	AllocLocal(escape bool) Access
	// WordSize is the dialect word in bytes.
	WordSize() int64
	// FP is the frame-pointer temp of the dialect.
	FP() temp.Temp
	// RV is the return-value temp of the dialect.
	RV() temp.Temp
}

// Factory builds frames of one dialect.
type Factory interface {
	NewFrame(name temp.Label, formalEscapes []bool) Frame
	WordSize() int64
}

// New selects a dialect by name.
func New(dialect string, tf *temp.Factory) (Factory, error) {
	switch dialect {
	case "amd64", "":
		return NewAMD64Factory(tf), nil
	case "mips32":
		return NewMIPS32Factory(tf), nil
	default:
		return nil, fmt.Errorf("unknown frame dialect %q", dialect)
	}
}

// ExternalCall builds a call to a runtime symbol by name.
func ExternalCall(name string, args []ir.Expr) ir.Expr {
	return &ir.CallExpr{
		Func: &ir.NameExpr{Label: temp.NamedLabel(name)},
		Args: args,
	}
}
