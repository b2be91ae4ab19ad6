package parser

import (
	"testing"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/lexer"
	"tiger/internal/source"
)

func parse(t *testing.T, src string) (ast.Expr, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.tig", []byte(src))
	bag := diag.NewBag(16)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	expr, ok := ParseProgram(lx, Options{Reporter: rep})
	return expr, bag, ok
}

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, bag, ok := parse(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	return expr
}

func TestParseLeftAssociativeArithmetic(t *testing.T) {
	expr := mustParse(t, "1 - 2 - 3")
	op, ok := expr.(*ast.OpExpr)
	if !ok || op.Op != ast.OpMinus {
		t.Fatalf("expected minus at root, got %T", expr)
	}
	left, ok := op.Left.(*ast.OpExpr)
	if !ok || left.Op != ast.OpMinus {
		t.Fatalf("expected (1-2) as left operand, got %T", op.Left)
	}
	if right, ok := op.Right.(*ast.IntExpr); !ok || right.Value != 3 {
		t.Fatalf("expected 3 as right operand")
	}
}

func TestParsePrecedence(t *testing.T) {
	expr := mustParse(t, "1 + 2 * 3 = 7 & 1")
	amp, ok := expr.(*ast.OpExpr)
	if !ok || amp.Op != ast.OpAnd {
		t.Fatalf("expected & at root, got %v", expr)
	}
	cmp, ok := amp.Left.(*ast.OpExpr)
	if !ok || cmp.Op != ast.OpEq {
		t.Fatalf("expected = under &, got %v", amp.Left)
	}
	plus, ok := cmp.Left.(*ast.OpExpr)
	if !ok || plus.Op != ast.OpPlus {
		t.Fatalf("expected + under =, got %v", cmp.Left)
	}
	if mul, ok := plus.Right.(*ast.OpExpr); !ok || mul.Op != ast.OpTimes {
		t.Fatalf("expected * under +, got %v", plus.Right)
	}
}

func TestParseUnaryMinusAsZeroMinus(t *testing.T) {
	expr := mustParse(t, "-x")
	op, ok := expr.(*ast.OpExpr)
	if !ok || op.Op != ast.OpMinus {
		t.Fatalf("expected minus, got %T", expr)
	}
	zero, ok := op.Left.(*ast.IntExpr)
	if !ok || zero.Value != 0 {
		t.Fatalf("expected 0 as left operand of unary minus")
	}
}

func TestParseArrayVsSubscript(t *testing.T) {
	arr := mustParse(t, "intarr [10] of 0")
	if _, ok := arr.(*ast.ArrayExpr); !ok {
		t.Fatalf("expected array literal, got %T", arr)
	}

	sub := mustParse(t, "row[10]")
	ve, ok := sub.(*ast.VarExpr)
	if !ok {
		t.Fatalf("expected var expr, got %T", sub)
	}
	sv, ok := ve.Var.(*ast.SubscriptVar)
	if !ok {
		t.Fatalf("expected subscript, got %T", ve.Var)
	}
	base, ok := sv.Base.(*ast.SimpleVar)
	if !ok || base.Name != "row" {
		t.Fatalf("expected simple base, got %T", sv.Base)
	}
}

func TestParseChainedLValue(t *testing.T) {
	expr := mustParse(t, "a.b[1].c := 2")
	assign, ok := expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected assignment, got %T", expr)
	}
	fv, ok := assign.Var.(*ast.FieldVar)
	if !ok || fv.Field != "c" {
		t.Fatalf("expected .c at top of l-value, got %T", assign.Var)
	}
	sv, ok := fv.Base.(*ast.SubscriptVar)
	if !ok {
		t.Fatalf("expected subscript under .c, got %T", fv.Base)
	}
	inner, ok := sv.Base.(*ast.FieldVar)
	if !ok || inner.Field != "b" {
		t.Fatalf("expected .b under subscript, got %T", sv.Base)
	}
	if root, ok := inner.Base.(*ast.SimpleVar); !ok || root.Name != "a" {
		t.Fatalf("expected simple root, got %T", inner.Base)
	}
}

func TestParseEmptyParensIsUnit(t *testing.T) {
	expr := mustParse(t, "()")
	seq, ok := expr.(*ast.SeqExpr)
	if !ok || len(seq.Exprs) != 0 {
		t.Fatalf("expected empty sequence, got %T", expr)
	}
}

func TestParseRecordLiteral(t *testing.T) {
	expr := mustParse(t, `point {x=1, y=2}`)
	rec, ok := expr.(*ast.RecordExpr)
	if !ok || rec.TypeName != "point" {
		t.Fatalf("expected record literal, got %T", expr)
	}
	if len(rec.Fields) != 2 || rec.Fields[0].Name != "x" || rec.Fields[1].Name != "y" {
		t.Fatalf("unexpected fields: %v", rec.Fields)
	}
}

func TestParseLetWithDecls(t *testing.T) {
	expr := mustParse(t, `
let
  type list = {head: int, tail: list}
  type grid = array of int
  var x : int := 5
  function add(a: int, b: int): int = a + b
in
  add(x, 1);
  x
end`)
	let, ok := expr.(*ast.LetExpr)
	if !ok {
		t.Fatalf("expected let, got %T", expr)
	}
	if len(let.Decls) != 4 {
		t.Fatalf("expected 4 declarations, got %d", len(let.Decls))
	}
	if _, ok := let.Decls[0].(*ast.TypeDecl); !ok {
		t.Fatalf("expected type decl first")
	}
	td := let.Decls[1].(*ast.TypeDecl)
	if _, ok := td.Ty.(*ast.ArrayTy); !ok {
		t.Fatalf("expected array type, got %T", td.Ty)
	}
	vd, ok := let.Decls[2].(*ast.VarDecl)
	if !ok || vd.TypeName != "int" {
		t.Fatalf("expected annotated var decl")
	}
	fd, ok := let.Decls[3].(*ast.FuncDecl)
	if !ok || fd.Result != "int" || len(fd.Params) != 2 {
		t.Fatalf("unexpected function decl: %+v", fd)
	}
	if len(let.Body) != 2 {
		t.Fatalf("expected 2 body expressions, got %d", len(let.Body))
	}
}

func TestParseIfWhileFor(t *testing.T) {
	expr := mustParse(t, "if 1 then 2 else 3")
	iff, ok := expr.(*ast.IfExpr)
	if !ok || iff.Else == nil {
		t.Fatalf("expected if with else")
	}

	expr = mustParse(t, "while 1 do break")
	wh, ok := expr.(*ast.WhileExpr)
	if !ok {
		t.Fatalf("expected while, got %T", expr)
	}
	if _, ok := wh.Body.(*ast.BreakExpr); !ok {
		t.Fatalf("expected break body")
	}

	expr = mustParse(t, "for i := 1 to 10 do ()")
	fo, ok := expr.(*ast.ForExpr)
	if !ok || fo.Name != "i" {
		t.Fatalf("expected for, got %T", expr)
	}
}

func TestParseErrorReportsAndFails(t *testing.T) {
	_, bag, ok := parse(t, "let var := 5 in 0 end")
	if ok {
		t.Fatalf("expected failure")
	}
	first, found := bag.First()
	if !found || first.Code != diag.SynExpectToken {
		t.Fatalf("expected expect-token error, got %v", bag.Items())
	}
}

func TestParseTrailingInputFails(t *testing.T) {
	_, bag, ok := parse(t, "1 2")
	if ok {
		t.Fatalf("expected failure for trailing input")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
}

func TestParseNegativeLiteralInArith(t *testing.T) {
	expr := mustParse(t, "2 * -3")
	mul := expr.(*ast.OpExpr)
	if mul.Op != ast.OpTimes {
		t.Fatalf("expected * at root")
	}
	neg, ok := mul.Right.(*ast.OpExpr)
	if !ok || neg.Op != ast.OpMinus {
		t.Fatalf("expected unary minus as right operand")
	}
}
