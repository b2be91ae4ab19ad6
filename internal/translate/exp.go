package translate

import (
	"tiger/internal/ir"
	"tiger/internal/temp"
)

// exp is the polymorphic result of translating one expression. It has three
// views: a value (ex), a statement with no value (nx), or a conditional (cx)
// that still needs its true and false destinations.
type exp interface {
	translated()
}

// ex wraps an IR expression.
type ex struct {
	expr ir.Expr
}

// nx wraps a statement with no value, such as a while body.
type nx struct {
	stm ir.Stm
}

// cx wraps a continuation from (true, false) labels to a branching
// statement; relational and logical expressions translate to this.
type cx struct {
	gen func(t, f temp.Label) ir.Stm
}

func (ex) translated() {}
func (nx) translated() {}
func (cx) translated() {}

// unEx views any wrapper as a value. A conditional materializes through a
// fresh temp that is 1 on the true path and 0 on the false path.
func (tr *translator) unEx(x exp) ir.Expr {
	switch x := x.(type) {
	case ex:
		return x.expr
	case nx:
		return &ir.ESeqExpr{Stm: x.stm, Expr: &ir.ConstExpr{Value: 0}}
	case cx:
		r := tr.temps.NewTemp()
		t := tr.temps.NewLabel()
		f := tr.temps.NewLabel()
		return &ir.ESeqExpr{
			Stm: ir.Seq(
				&ir.MoveStm{Dst: &ir.TempExpr{Temp: r}, Src: &ir.ConstExpr{Value: 1}},
				x.gen(t, f),
				&ir.LabelStm{Label: f},
				&ir.MoveStm{Dst: &ir.TempExpr{Temp: r}, Src: &ir.ConstExpr{Value: 0}},
				&ir.LabelStm{Label: t},
			),
			Expr: &ir.TempExpr{Temp: r},
		}
	}
	panic("translate: unknown exp view")
}

// unNx views any wrapper as a statement, discarding the value.
func (tr *translator) unNx(x exp) ir.Stm {
	switch x := x.(type) {
	case ex:
		return &ir.ExpStm{Expr: x.expr}
	case nx:
		return x.stm
	case cx:
		t := tr.temps.NewLabel()
		f := tr.temps.NewLabel()
		return ir.Seq(
			x.gen(t, f),
			&ir.LabelStm{Label: t},
			&ir.LabelStm{Label: f},
		)
	}
	panic("translate: unknown exp view")
}

// unCx views any wrapper as a conditional. Constant 0 and 1 shortcut to an
// unconditional jump; a statement view here is a compiler fault that the
// semantic analyzer rules out.
func (tr *translator) unCx(x exp) func(t, f temp.Label) ir.Stm {
	switch x := x.(type) {
	case ex:
		if c, isConst := x.expr.(*ir.ConstExpr); isConst {
			if c.Value == 0 {
				return func(_, f temp.Label) ir.Stm { return ir.Jump(f) }
			}
			return func(t, _ temp.Label) ir.Stm { return ir.Jump(t) }
		}
		return func(t, f temp.Label) ir.Stm {
			return &ir.CJumpStm{
				Op:    ir.Ne,
				Left:  x.expr,
				Right: &ir.ConstExpr{Value: 0},
				True:  t,
				False: f,
			}
		}
	case nx:
		panic("translate: a no-value expression has no conditional view")
	case cx:
		return x.gen
	}
	panic("translate: unknown exp view")
}
