package ir

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a readable rendering of the statement to w. The format is
// advisory and meant for tests and --emit-ir output.
func Print(w io.Writer, s Stm) {
	p := &printer{w: w}
	p.stm(s, 0)
	fmt.Fprintln(w)
}

// Format renders a statement to a string.
func Format(s Stm) string {
	var sb strings.Builder
	Print(&sb, s)
	return sb.String()
}

// FormatExpr renders an expression to a string.
func FormatExpr(e Expr) string {
	var sb strings.Builder
	p := &printer{w: &sb}
	p.expr(e, 0)
	return sb.String()
}

type printer struct {
	w io.Writer
}

func (p *printer) indent(depth int) {
	fmt.Fprint(p.w, strings.Repeat("  ", depth))
}

func (p *printer) stm(s Stm, depth int) {
	p.indent(depth)
	switch s := s.(type) {
	case *SeqStm:
		fmt.Fprint(p.w, "SEQ(\n")
		p.stm(s.First, depth+1)
		fmt.Fprint(p.w, ",\n")
		p.stm(s.Second, depth+1)
		fmt.Fprint(p.w, ")")
	case *LabelStm:
		fmt.Fprintf(p.w, "LABEL %s", s.Label)
	case *JumpStm:
		fmt.Fprint(p.w, "JUMP(\n")
		p.expr(s.Target, depth+1)
		fmt.Fprint(p.w, ")")
	case *CJumpStm:
		fmt.Fprintf(p.w, "CJUMP(%s,\n", s.Op)
		p.expr(s.Left, depth+1)
		fmt.Fprint(p.w, ",\n")
		p.expr(s.Right, depth+1)
		fmt.Fprintf(p.w, ",\n")
		p.indent(depth + 1)
		fmt.Fprintf(p.w, "%s, %s)", s.True, s.False)
	case *MoveStm:
		fmt.Fprint(p.w, "MOVE(\n")
		p.expr(s.Dst, depth+1)
		fmt.Fprint(p.w, ",\n")
		p.expr(s.Src, depth+1)
		fmt.Fprint(p.w, ")")
	case *ExpStm:
		fmt.Fprint(p.w, "EXP(\n")
		p.expr(s.Expr, depth+1)
		fmt.Fprint(p.w, ")")
	default:
		fmt.Fprintf(p.w, "?stm %T", s)
	}
}

func (p *printer) expr(e Expr, depth int) {
	p.indent(depth)
	switch e := e.(type) {
	case *BinOpExpr:
		fmt.Fprintf(p.w, "BINOP(%s,\n", e.Op)
		p.expr(e.Left, depth+1)
		fmt.Fprint(p.w, ",\n")
		p.expr(e.Right, depth+1)
		fmt.Fprint(p.w, ")")
	case *MemExpr:
		fmt.Fprint(p.w, "MEM(\n")
		p.expr(e.Addr, depth+1)
		fmt.Fprint(p.w, ")")
	case *TempExpr:
		fmt.Fprintf(p.w, "TEMP %s", e.Temp)
	case *ESeqExpr:
		fmt.Fprint(p.w, "ESEQ(\n")
		p.stm(e.Stm, depth+1)
		fmt.Fprint(p.w, ",\n")
		p.expr(e.Expr, depth+1)
		fmt.Fprint(p.w, ")")
	case *NameExpr:
		fmt.Fprintf(p.w, "NAME %s", e.Label)
	case *ConstExpr:
		fmt.Fprintf(p.w, "CONST %d", e.Value)
	case *CallExpr:
		fmt.Fprint(p.w, "CALL(\n")
		p.expr(e.Func, depth+1)
		for _, arg := range e.Args {
			fmt.Fprint(p.w, ",\n")
			p.expr(arg, depth+1)
		}
		fmt.Fprint(p.w, ")")
	default:
		fmt.Fprintf(p.w, "?expr %T", e)
	}
}
