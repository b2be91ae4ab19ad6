// Package translate lowers the type-checked AST into tree-IR fragments over
// the abstract frame model. It allocates frame slots according to the escape
// bits, threads static links through nested functions, and emits one proc
// fragment per function plus one for the program body (last), with string
// fragments in first-encounter order.
package translate

import (
	"tiger/internal/ast"
	"tiger/internal/frame"
	"tiger/internal/ir"
	"tiger/internal/sema"
	"tiger/internal/symbols"
	"tiger/internal/temp"
)

// Options configures a translation run. FieldIndex is the side table the
// semantic analyzer produced for record field accesses.
type Options struct {
	Frames     frame.Factory
	Temps      *temp.Factory
	FieldIndex map[*ast.FieldVar]int
}

// binding is an IR-environment entry for a name.
type binding interface {
	irBinding()
}

// varBinding locates a variable: its level and frame access.
type varBinding struct {
	access Access
}

// funBinding locates a function: the level of its body and its entry label.
// Builtins live at the outermost level and take no static link.
type funBinding struct {
	level *Level
	label temp.Label
}

func (*varBinding) irBinding() {}
func (*funBinding) irBinding() {}

type translator struct {
	frames     frame.Factory
	temps      *temp.Factory
	fieldIndex map[*ast.FieldVar]int

	current   *Level
	venv      *symbols.Table[binding]
	breaks    []temp.Label
	fragments []Fragment
}

// Translate lowers prog and returns the fragment list. The program-body
// fragment is appended last.
func Translate(prog ast.Expr, opts Options) []Fragment {
	tr := &translator{
		frames:     opts.Frames,
		temps:      opts.Temps,
		fieldIndex: opts.FieldIndex,
		venv:       symbols.NewTable[binding](),
	}
	tr.current = outermost(tr.frames)
	for _, name := range sema.Builtins() {
		tr.venv.Enter(name, &funBinding{level: tr.current, label: temp.NamedLabel(name)})
	}

	body := &ir.MoveStm{
		Dst: &ir.TempExpr{Temp: tr.current.frame.RV()},
		Src: tr.unEx(tr.expr(prog)),
	}
	tr.fragments = append(tr.fragments, &ProcFragment{Body: body, Frame: tr.current.frame})
	return tr.fragments
}

func (tr *translator) wordSize() int64 {
	return tr.frames.WordSize()
}

func (tr *translator) expr(e ast.Expr) exp {
	switch e := e.(type) {
	case *ast.IntExpr:
		return ex{&ir.ConstExpr{Value: e.Value}}
	case *ast.NilExpr:
		return ex{&ir.ConstExpr{Value: 0}}
	case *ast.StringExpr:
		label := tr.temps.NewLabel()
		tr.fragments = append(tr.fragments, &StringFragment{Label: label, Value: e.Value})
		return ex{&ir.NameExpr{Label: label}}
	case *ast.VarExpr:
		return tr.variable(e.Var)
	case *ast.CallExpr:
		return tr.call(e)
	case *ast.OpExpr:
		return tr.op(e)
	case *ast.RecordExpr:
		return tr.record(e)
	case *ast.ArrayExpr:
		return ex{frame.ExternalCall("initArray", []ir.Expr{
			tr.unEx(tr.expr(e.Size)),
			tr.unEx(tr.expr(e.Init)),
		})}
	case *ast.AssignExpr:
		dst := tr.unEx(tr.variable(e.Var))
		src := tr.unEx(tr.expr(e.Value))
		return nx{&ir.MoveStm{Dst: dst, Src: src}}
	case *ast.IfExpr:
		return tr.ifExpr(e)
	case *ast.WhileExpr:
		return tr.while(e)
	case *ast.ForExpr:
		return tr.forExpr(e)
	case *ast.BreakExpr:
		if len(tr.breaks) == 0 {
			// Guarded by the semantic analyzer; emit a no-op.
			return nx{&ir.ExpStm{Expr: &ir.ConstExpr{Value: 0}}}
		}
		return nx{ir.Jump(tr.breaks[len(tr.breaks)-1])}
	case *ast.SeqExpr:
		return tr.seq(e.Exprs)
	case *ast.LetExpr:
		return tr.let(e)
	}
	panic("translate: unhandled expression")
}

func (tr *translator) variable(v ast.Var) exp {
	switch v := v.(type) {
	case *ast.SimpleVar:
		entry, found := tr.venv.Look(v.Name)
		if !found {
			panic("translate: unbound variable " + v.Name)
		}
		vb := entry.(*varBinding)
		fp := framePointer(tr.current, vb.access.level)
		return ex{vb.access.access.Expr(fp)}
	case *ast.FieldVar:
		base := tr.unEx(tr.variable(v.Base))
		idx, found := tr.fieldIndex[v]
		if !found {
			panic("translate: missing field index for " + v.Field)
		}
		return ex{&ir.MemExpr{
			Addr: &ir.BinOpExpr{
				Op:    ir.Plus,
				Left:  base,
				Right: &ir.ConstExpr{Value: int64(idx) * tr.wordSize()},
			},
		}}
	case *ast.SubscriptVar:
		base := tr.unEx(tr.variable(v.Base))
		index := tr.unEx(tr.expr(v.Index))
		return ex{&ir.MemExpr{
			Addr: &ir.BinOpExpr{
				Op:   ir.Plus,
				Left: base,
				Right: &ir.BinOpExpr{
					Op:    ir.Mul,
					Left:  index,
					Right: &ir.ConstExpr{Value: tr.wordSize()},
				},
			},
		}}
	}
	panic("translate: unhandled l-value")
}

func (tr *translator) call(e *ast.CallExpr) exp {
	entry, found := tr.venv.Look(e.Func)
	if !found {
		panic("translate: unbound function " + e.Func)
	}
	fb := entry.(*funBinding)
	var args []ir.Expr
	if fb.level.parent != nil {
		// The hidden first argument is the frame pointer of the level the
		// callee is declared in, reached from the call site.
		args = append(args, framePointer(tr.current, fb.level.parent))
	}
	for _, arg := range e.Args {
		args = append(args, tr.unEx(tr.expr(arg)))
	}
	return ex{&ir.CallExpr{
		Func: &ir.NameExpr{Label: fb.label},
		Args: args,
	}}
}

var arithOps = map[ast.Op]ir.BinOp{
	ast.OpPlus:   ir.Plus,
	ast.OpMinus:  ir.Minus,
	ast.OpTimes:  ir.Mul,
	ast.OpDivide: ir.Div,
}

var relOps = map[ast.Op]ir.RelOp{
	ast.OpEq:  ir.Eq,
	ast.OpNeq: ir.Ne,
	ast.OpLt:  ir.Lt,
	ast.OpLe:  ir.Le,
	ast.OpGt:  ir.Gt,
	ast.OpGe:  ir.Ge,
}

func (tr *translator) op(e *ast.OpExpr) exp {
	switch {
	case e.Op.IsArith():
		return ex{&ir.BinOpExpr{
			Op:    arithOps[e.Op],
			Left:  tr.unEx(tr.expr(e.Left)),
			Right: tr.unEx(tr.expr(e.Right)),
		}}
	case e.Op.IsComparison():
		left := tr.unEx(tr.expr(e.Left))
		right := tr.unEx(tr.expr(e.Right))
		relop := relOps[e.Op]
		return cx{func(t, f temp.Label) ir.Stm {
			return &ir.CJumpStm{Op: relop, Left: left, Right: right, True: t, False: f}
		}}
	case e.Op == ast.OpAnd:
		left := tr.unCx(tr.expr(e.Left))
		right := tr.unCx(tr.expr(e.Right))
		return cx{func(t, f temp.Label) ir.Stm {
			mid := tr.temps.NewLabel()
			return ir.Seq(
				left(mid, f),
				&ir.LabelStm{Label: mid},
				right(t, f),
			)
		}}
	default: // OpOr
		left := tr.unCx(tr.expr(e.Left))
		right := tr.unCx(tr.expr(e.Right))
		return cx{func(t, f temp.Label) ir.Stm {
			mid := tr.temps.NewLabel()
			return ir.Seq(
				left(t, mid),
				&ir.LabelStm{Label: mid},
				right(t, f),
			)
		}}
	}
}

// record allocates through the runtime and initializes every field in
// declaration order.
func (tr *translator) record(e *ast.RecordExpr) exp {
	w := tr.wordSize()
	r := tr.temps.NewTemp()
	stms := []ir.Stm{
		&ir.MoveStm{
			Dst: &ir.TempExpr{Temp: r},
			Src: frame.ExternalCall("allocRecord", []ir.Expr{
				&ir.ConstExpr{Value: int64(len(e.Fields)) * w},
			}),
		},
	}
	for i, f := range e.Fields {
		stms = append(stms, &ir.MoveStm{
			Dst: &ir.MemExpr{
				Addr: &ir.BinOpExpr{
					Op:    ir.Plus,
					Left:  &ir.TempExpr{Temp: r},
					Right: &ir.ConstExpr{Value: int64(i) * w},
				},
			},
			Src: tr.unEx(tr.expr(f.Value)),
		})
	}
	return ex{&ir.ESeqExpr{Stm: ir.Seq(stms...), Expr: &ir.TempExpr{Temp: r}}}
}

func (tr *translator) ifExpr(e *ast.IfExpr) exp {
	cond := tr.unCx(tr.expr(e.Cond))
	t := tr.temps.NewLabel()
	f := tr.temps.NewLabel()
	if e.Else == nil {
		return nx{ir.Seq(
			cond(t, f),
			&ir.LabelStm{Label: t},
			tr.unNx(tr.expr(e.Then)),
			&ir.LabelStm{Label: f},
		)}
	}
	join := tr.temps.NewLabel()
	r := tr.temps.NewTemp()
	return ex{&ir.ESeqExpr{
		Stm: ir.Seq(
			cond(t, f),
			&ir.LabelStm{Label: t},
			&ir.MoveStm{Dst: &ir.TempExpr{Temp: r}, Src: tr.unEx(tr.expr(e.Then))},
			ir.Jump(join),
			&ir.LabelStm{Label: f},
			&ir.MoveStm{Dst: &ir.TempExpr{Temp: r}, Src: tr.unEx(tr.expr(e.Else))},
			ir.Jump(join),
			&ir.LabelStm{Label: join},
		),
		Expr: &ir.TempExpr{Temp: r},
	}}
}

func (tr *translator) while(e *ast.WhileExpr) exp {
	test := tr.temps.NewLabel()
	body := tr.temps.NewLabel()
	done := tr.temps.NewLabel()
	cond := tr.unCx(tr.expr(e.Cond))

	tr.breaks = append(tr.breaks, done)
	bodyStm := tr.unNx(tr.expr(e.Body))
	tr.breaks = tr.breaks[:len(tr.breaks)-1]

	return nx{ir.Seq(
		&ir.LabelStm{Label: test},
		cond(body, done),
		&ir.LabelStm{Label: body},
		bodyStm,
		ir.Jump(test),
		&ir.LabelStm{Label: done},
	)}
}

// forExpr lowers the counted loop. The initial LE test and the separate LT
// test before the increment keep hi = MAX_INT from overflowing the index.
func (tr *translator) forExpr(e *ast.ForExpr) exp {
	lo := tr.unEx(tr.expr(e.Lo))
	hi := tr.unEx(tr.expr(e.Hi))

	access := tr.current.allocLocal(e.Escape)
	fp := framePointer(tr.current, tr.current)
	idx := access.access.Expr(fp)
	limit := tr.temps.NewTemp()

	body := tr.temps.NewLabel()
	incr := tr.temps.NewLabel()
	done := tr.temps.NewLabel()

	tr.venv.BeginScope()
	tr.venv.Enter(e.Name, &varBinding{access: access})
	tr.breaks = append(tr.breaks, done)
	bodyStm := tr.unNx(tr.expr(e.Body))
	tr.breaks = tr.breaks[:len(tr.breaks)-1]
	tr.venv.EndScope()

	return nx{ir.Seq(
		&ir.MoveStm{Dst: idx, Src: lo},
		&ir.MoveStm{Dst: &ir.TempExpr{Temp: limit}, Src: hi},
		&ir.CJumpStm{Op: ir.Le, Left: idx, Right: &ir.TempExpr{Temp: limit}, True: body, False: done},
		&ir.LabelStm{Label: body},
		bodyStm,
		&ir.CJumpStm{Op: ir.Lt, Left: idx, Right: &ir.TempExpr{Temp: limit}, True: incr, False: done},
		&ir.LabelStm{Label: incr},
		&ir.MoveStm{
			Dst: idx,
			Src: &ir.BinOpExpr{Op: ir.Plus, Left: idx, Right: &ir.ConstExpr{Value: 1}},
		},
		ir.Jump(body),
		&ir.LabelStm{Label: done},
	)}
}

func (tr *translator) seq(exprs []ast.Expr) exp {
	if len(exprs) == 0 {
		return ex{&ir.ConstExpr{Value: 0}}
	}
	var stms []ir.Stm
	for _, e := range exprs[:len(exprs)-1] {
		stms = append(stms, tr.unNx(tr.expr(e)))
	}
	last := tr.unEx(tr.expr(exprs[len(exprs)-1]))
	if len(stms) == 0 {
		return ex{last}
	}
	return ex{&ir.ESeqExpr{Stm: ir.Seq(stms...), Expr: last}}
}

func (tr *translator) let(e *ast.LetExpr) exp {
	tr.venv.BeginScope()
	defer tr.venv.EndScope()

	var stms []ir.Stm
	for i := 0; i < len(e.Decls); {
		switch d := e.Decls[i].(type) {
		case *ast.VarDecl:
			stms = append(stms, tr.varDecl(d))
			i++
		case *ast.TypeDecl:
			// Types have no run-time representation.
			i++
		case *ast.FuncDecl:
			// A run of function declarations shares one header pass so the
			// bodies can call each other.
			batch := []*ast.FuncDecl{d}
			j := i + 1
			for j < len(e.Decls) {
				fd, isFunc := e.Decls[j].(*ast.FuncDecl)
				if !isFunc {
					break
				}
				batch = append(batch, fd)
				j++
			}
			tr.funcBatch(batch)
			i = j
		}
	}

	bodyExp := tr.seq(e.Body)
	if len(stms) == 0 {
		return bodyExp
	}
	return ex{&ir.ESeqExpr{Stm: ir.Seq(stms...), Expr: tr.unEx(bodyExp)}}
}

func (tr *translator) varDecl(d *ast.VarDecl) ir.Stm {
	init := tr.unEx(tr.expr(d.Init))
	access := tr.current.allocLocal(d.Escape)
	tr.venv.Enter(d.Name, &varBinding{access: access})
	fp := framePointer(tr.current, tr.current)
	return &ir.MoveStm{Dst: access.access.Expr(fp), Src: init}
}

func (tr *translator) funcBatch(batch []*ast.FuncDecl) {
	levels := make([]*Level, len(batch))
	for i, d := range batch {
		label := temp.NamedLabel(d.Name)
		escapes := make([]bool, len(d.Params))
		for j, p := range d.Params {
			escapes[j] = p.Escape
		}
		levels[i] = newLevel(tr.current, label, escapes, tr.frames)
		tr.venv.Enter(d.Name, &funBinding{level: levels[i], label: label})
	}
	for i, d := range batch {
		tr.funcBody(d, levels[i])
	}
}

// funcBody translates one function into a proc fragment. The formals after
// the static link are bound to the source parameters; the body either moves
// its value into the return-value temp or runs for effect only.
func (tr *translator) funcBody(d *ast.FuncDecl, level *Level) {
	saved := tr.current
	tr.current = level
	tr.venv.BeginScope()
	defer func() {
		tr.venv.EndScope()
		tr.current = saved
	}()

	formals := level.frame.Formals()
	for i, p := range d.Params {
		tr.venv.Enter(p.Name, &varBinding{
			access: Access{level: level, access: formals[i+1]},
		})
	}

	body := tr.expr(d.Body)
	var stm ir.Stm
	if d.Result != "" {
		stm = &ir.MoveStm{
			Dst: &ir.TempExpr{Temp: level.frame.RV()},
			Src: tr.unEx(body),
		}
	} else {
		stm = tr.unNx(body)
	}
	tr.fragments = append(tr.fragments, &ProcFragment{Body: stm, Frame: level.frame})
}
