package escape

import (
	"testing"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/lexer"
	"tiger/internal/parser"
	"tiger/internal/source"
)

func analyzed(t *testing.T, src string) ast.Expr {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.tig", []byte(src))
	bag := diag.NewBag(16)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	expr, ok := parser.ParseProgram(lx, parser.Options{Reporter: rep})
	if !ok {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	Analyze(expr)
	return expr
}

func firstVarDecl(t *testing.T, e ast.Expr) *ast.VarDecl {
	t.Helper()
	let, ok := e.(*ast.LetExpr)
	if !ok {
		t.Fatalf("expected let at top level")
	}
	for _, d := range let.Decls {
		if vd, ok := d.(*ast.VarDecl); ok {
			return vd
		}
	}
	t.Fatalf("no var decl found")
	return nil
}

func TestLocalOnlyUseDoesNotEscape(t *testing.T) {
	e := analyzed(t, "let var x := 5 in x + x end")
	if firstVarDecl(t, e).Escape {
		t.Fatalf("x used only at its own depth must not escape")
	}
}

func TestUseFromNestedFunctionEscapes(t *testing.T) {
	e := analyzed(t, "let var x := 5 function f(): int = x in f() end")
	if !firstVarDecl(t, e).Escape {
		t.Fatalf("x referenced from nested function must escape")
	}
}

func TestWriteFromNestedFunctionEscapes(t *testing.T) {
	e := analyzed(t, "let var x := 5 function f() = x := 1 in f() end")
	if !firstVarDecl(t, e).Escape {
		t.Fatalf("x written from nested function must escape")
	}
}

func TestDeeplyNestedUseEscapes(t *testing.T) {
	e := analyzed(t, `
let
  var x := 5
  function f() =
    let function g(): int = x
    in g(); ()
    end
in f() end`)
	if !firstVarDecl(t, e).Escape {
		t.Fatalf("x referenced two levels down must escape")
	}
}

func TestParamEscape(t *testing.T) {
	e := analyzed(t, `
let
  function f(a: int, b: int): int =
    let function g(): int = a
    in g() + b
    end
in f(1, 2) end`)
	let := e.(*ast.LetExpr)
	fd := let.Decls[0].(*ast.FuncDecl)
	if !fd.Params[0].Escape {
		t.Fatalf("parameter a referenced from nested g must escape")
	}
	if fd.Params[1].Escape {
		t.Fatalf("parameter b used only locally must not escape")
	}
}

func TestForIndexEscape(t *testing.T) {
	e := analyzed(t, `
let function h() =
  for i := 1 to 10 do
    let function peek(): int = i
    in peek(); ()
    end
in h() end`)
	let := e.(*ast.LetExpr)
	fd := let.Decls[0].(*ast.FuncDecl)
	fo := fd.Body.(*ast.ForExpr)
	if !fo.Escape {
		t.Fatalf("loop index referenced from nested function must escape")
	}

	e2 := analyzed(t, "for i := 1 to 10 do (i; ())")
	if e2.(*ast.ForExpr).Escape {
		t.Fatalf("loop index used only in its own body must not escape")
	}
}

func TestShadowingKeepsOuterBitClean(t *testing.T) {
	e := analyzed(t, `
let
  var x := 1
  function f(): int = let var x := 2 in x end
in f() end`)
	if firstVarDecl(t, e).Escape {
		t.Fatalf("outer x is shadowed inside f and must not escape")
	}
}

func TestBaseOfFieldAccessEscapes(t *testing.T) {
	e := analyzed(t, `
let
  type point = {x: int}
  var p := point {x=1}
  function f(): int = p.x
in f() end`)
	if !firstVarDecl(t, e).Escape {
		t.Fatalf("record base variable accessed from nested function must escape")
	}
}
