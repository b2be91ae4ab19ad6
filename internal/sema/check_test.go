package sema

import (
	"strings"
	"testing"

	"tiger/internal/diag"
	"tiger/internal/lexer"
	"tiger/internal/parser"
	"tiger/internal/source"
	"tiger/internal/types"
)

func check(t *testing.T, src string) (*Result, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.tig", []byte(src))
	bag := diag.NewBag(16)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	prog, ok := parser.ParseProgram(lx, parser.Options{Reporter: rep})
	if !ok {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	res, ok := Check(prog, Options{Reporter: rep})
	return res, bag, ok
}

func mustCheck(t *testing.T, src string) *Result {
	t.Helper()
	res, bag, ok := check(t, src)
	if !ok {
		t.Fatalf("check failed: %v", bag.Items())
	}
	return res
}

func mustFail(t *testing.T, src string, code diag.Code) diag.Diagnostic {
	t.Helper()
	_, bag, ok := check(t, src)
	if ok {
		t.Fatalf("expected semantic error for %q", src)
	}
	errs := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			errs++
		}
	}
	if errs != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", errs, bag.Items())
	}
	first, _ := bag.First()
	if first.Code != code {
		t.Fatalf("expected code %v, got %v (%s)", code, first.Code, first.Message)
	}
	return first
}

func TestProgramTypes(t *testing.T) {
	cases := []struct {
		src  string
		want types.Type
	}{
		{"42", types.Int},
		{`"hello"`, types.String},
		{"()", types.Unit},
		{"let var x := 5 in x end", types.Int},
		{"let var x := 5 function f():int = x in f() end", types.Int},
		{"(1; \"s\")", types.String},
		{"if 1 then 2 else 3", types.Int},
		{"while 1 do break", types.Unit},
		{"for i := 1 to 10 do ()", types.Unit},
		{`let function f(x:int):int = x + 1 in f(41) end`, types.Int},
	}
	for _, tc := range cases {
		res := mustCheck(t, tc.src)
		if !types.Equal(res.Type, tc.want) {
			t.Fatalf("%q: expected %s, got %s", tc.src, tc.want, res.Type)
		}
	}
}

func TestUndefinedNames(t *testing.T) {
	mustFail(t, "x", diag.SemaUndefinedVariable)
	mustFail(t, "f(1)", diag.SemaUndefinedFunction)
	mustFail(t, "let var x : nosuch := 1 in x end", diag.SemaUndefinedType)
}

func TestWrongNamespace(t *testing.T) {
	mustFail(t, "let function f() = () in f + 1 end", diag.SemaNotAVariable)
	mustFail(t, "let var x := 1 in x(2) end", diag.SemaNotAFunction)
}

func TestOperatorTyping(t *testing.T) {
	mustFail(t, `1 + "s"`, diag.SemaOperandMismatch)
	mustFail(t, `"a" & 1`, diag.SemaOperandMismatch)
	mustFail(t, `1 = "s"`, diag.SemaOperandMismatch)
	mustCheck(t, `"a" = "b"`)
	mustCheck(t, "1 < 2 & 3 > 2 | 0")
}

func TestCallTyping(t *testing.T) {
	mustFail(t, `let function f(x:int):int = x in f("s") end`, diag.SemaArgumentMismatch)
	mustFail(t, `let function f(x:int):int = x in f(1, 2) end`, diag.SemaArityMismatch)
	mustFail(t, `let function f(x:int):int = "s" in f(1) end`, diag.SemaReturnMismatch)
}

func TestIfWhileForRules(t *testing.T) {
	mustFail(t, `if 1 then "a" else 2`, diag.SemaBranchMismatch)
	mustFail(t, `if "s" then () else ()`, diag.SemaConditionNotInt)
	mustFail(t, "if 1 then 2", diag.SemaBodyNotUnit)
	mustFail(t, "while 1 do 2", diag.SemaBodyNotUnit)
	mustFail(t, `for i := "a" to 10 do ()`, diag.SemaBoundNotInt)
	mustFail(t, "for i := 1 to 10 do i := 5", diag.SemaAssignToLoopVar)
	mustFail(t, "break", diag.SemaBreakOutsideLoop)
	mustCheck(t, "while 1 do break")
}

func TestBreakDoesNotCrossFunctions(t *testing.T) {
	mustFail(t, "while 1 do let function f() = break in f() end", diag.SemaBreakOutsideLoop)
}

func TestRecordTyping(t *testing.T) {
	mustCheck(t, `let type p = {x:int, y:int} var a := p{x=1, y=2} in a.x end`)
	mustFail(t, `let type p = {x:int, y:int} var a := p{y=2, x=1} in a.x end`, diag.SemaFieldMismatch)
	mustFail(t, `let type p = {x:int} var a := p{x="s"} in a.x end`, diag.SemaFieldMismatch)
	mustFail(t, `let type p = {x:int} var a := p{x=1} in a.zz end`, diag.SemaNoSuchField)
	mustFail(t, `let var a := 1 in a.x end`, diag.SemaNotARecord)
	mustFail(t, `let type p = {x:int} var a := p{x=1} in a[0] end`, diag.SemaNotAnArray)
}

func TestArrayTyping(t *testing.T) {
	mustCheck(t, `let type arr = array of int var a := arr[10] of 0 in a[3] end`)
	mustFail(t, `let type arr = array of int var a := arr["s"] of 0 in 0 end`, diag.SemaBoundNotInt)
	mustFail(t, `let type arr = array of int var a := arr[10] of "s" in 0 end`, diag.SemaInitializerMismatch)
	mustFail(t, `let type arr = array of int var a := arr[10] of 0 in a["s"] end`, diag.SemaIndexNotInt)
}

func TestNominalDistinctness(t *testing.T) {
	mustFail(t, `
let
  type a = array of int
  type b = array of int
  var x : a := a[1] of 0
  var y : b := b[1] of 0
in x := y end`, diag.SemaAssignMismatch)
}

func TestAliasToInt(t *testing.T) {
	mustCheck(t, "let type a = int var x : a := 5 in x + 1 end")
}

func TestRecursiveRecord(t *testing.T) {
	res := mustCheck(t, `
let
  type list = {head: int, tail: list}
  var l : list := list{head=1, tail=nil}
in l.tail end`)
	rec, ok := types.Actual(res.Type).(*types.RecordType)
	if !ok {
		t.Fatalf("expected record type for l.tail, got %s", res.Type)
	}
	if types.Actual(rec.Fields[1].Type) != types.Type(rec) {
		t.Fatalf("tail field must resolve to the list record itself")
	}
}

func TestMutuallyRecursiveTypes(t *testing.T) {
	res := mustCheck(t, `
let
  type tree = {key:int, children:treelist}
  type treelist = {head:tree, tail:treelist}
  var t := tree{key=0, children=nil}
in t end`)
	tree, ok := types.Actual(res.Type).(*types.RecordType)
	if !ok {
		t.Fatalf("expected record, got %s", res.Type)
	}
	treelist, ok := types.Actual(tree.Fields[1].Type).(*types.RecordType)
	if !ok {
		t.Fatalf("children must resolve to a record")
	}
	head := types.Actual(treelist.Fields[0].Type)
	if head != types.Type(tree) {
		t.Fatalf("treelist head must resolve to the tree record")
	}
}

func TestTypeCycleRejected(t *testing.T) {
	d := mustFail(t, "let type a = b type b = a in 0 end", diag.SemaTypeCycle)
	if !strings.Contains(d.Message, "a") || !strings.Contains(d.Message, "b") {
		t.Fatalf("cycle message must mention both names: %q", d.Message)
	}
	if !strings.Contains(d.Message, "cycle") {
		t.Fatalf("message must mention the cycle: %q", d.Message)
	}
}

func TestDuplicateNamesInBatch(t *testing.T) {
	mustFail(t, "let type a = int type a = string in 0 end", diag.SemaDuplicateName)
	mustFail(t, "let function f() = () function f() = () in 0 end", diag.SemaDuplicateName)
}

func TestVarSeparatesBatches(t *testing.T) {
	// The var between the two type runs splits them: a cannot see c, which is
	// declared in the later batch.
	_, _, ok := check(t, `
let
  type a = c
  var x := 1
  type c = int
in 0 end`)
	if ok {
		t.Fatalf("forward reference across a var boundary must fail")
	}
}

func TestMutuallyRecursiveFunctions(t *testing.T) {
	mustCheck(t, `
let
  function even(n:int):int = if n = 0 then 1 else odd(n - 1)
  function odd(n:int):int = if n = 0 then 0 else even(n - 1)
in even(10) end`)
}

func TestNilRules(t *testing.T) {
	mustFail(t, "let var x := nil in 0 end", diag.SemaNilNeedsRecordType)
	mustCheck(t, `let type p = {x:int} var a : p := nil in 0 end`)
	mustCheck(t, `let type p = {x:int} var a : p := nil in a = nil end`)
	mustFail(t, "nil = nil", diag.SemaOperandMismatch)
}

func TestShadowingAcrossLets(t *testing.T) {
	mustCheck(t, `
let var x := 1 in
  let var x := "s" in size(x) end + x
end`)
}

func TestFieldIndexSideTable(t *testing.T) {
	res := mustCheck(t, `let type p = {x:int, y:int} var a := p{x=1, y=2} in a.y end`)
	found := false
	for fv, idx := range res.FieldIndex {
		if fv.Field == "y" {
			found = true
			if idx != 1 {
				t.Fatalf("field y must have index 1, got %d", idx)
			}
		}
	}
	if !found {
		t.Fatalf("expected an index entry for field y")
	}
	_ = res
}

func TestBuiltinsAvailable(t *testing.T) {
	mustCheck(t, `(print("hi"); printi(1); flush(); exit(0))`)
	mustCheck(t, `concat(getchar(), chr(ord("a")))`)
	mustCheck(t, `size(substring("abc", 0, not(0)))`)
}
