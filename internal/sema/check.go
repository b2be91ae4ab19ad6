// Package sema type-checks the Tiger AST: it binds names in the two scoped
// namespaces, enforces the typing rules of every construct, and processes
// declaration batches so consecutive type or function declarations may be
// mutually recursive.
//
// The first error is fatal: the checker reports one diagnostic and abandons
// the traversal. Scopes opened before the abort are unwound by deferred
// EndScope calls.
package sema

import (
	"fmt"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/source"
	"tiger/internal/symbols"
	"tiger/internal/types"
)

// Options configures a check run.
type Options struct {
	Reporter diag.Reporter
}

// Result carries what later stages need: the program type and the record
// field indices resolved for every field access, keyed by node identity.
type Result struct {
	Type       types.Type
	FieldIndex map[*ast.FieldVar]int
}

type checker struct {
	tenv      *symbols.Table[types.Type]
	venv      *symbols.Table[binding]
	ctx       *types.Context
	rep       diag.Reporter
	loopDepth int
	fieldIdx  map[*ast.FieldVar]int
}

// abort unwinds the checker after the first error.
type abort struct{}

// Check validates prog and returns its result, or ok=false after reporting
// the first semantic error.
func Check(prog ast.Expr, opts Options) (res *Result, ok bool) {
	c := &checker{
		tenv:     baseTypeEnv(),
		venv:     baseValueEnv(),
		ctx:      types.NewContext(),
		rep:      opts.Reporter,
		fieldIdx: make(map[*ast.FieldVar]int),
	}
	if c.rep == nil {
		c.rep = diag.NopReporter{}
	}
	defer func() {
		if r := recover(); r != nil {
			if _, isAbort := r.(abort); !isAbort {
				panic(r)
			}
			res, ok = nil, false
		}
	}()
	t := c.expr(prog)
	return &Result{Type: t, FieldIndex: c.fieldIdx}, true
}

func (c *checker) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.Error(c.rep, code, span, fmt.Sprintf(format, args...))
	panic(abort{})
}

func (c *checker) expr(e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.IntExpr:
		return types.Int
	case *ast.StringExpr:
		return types.String
	case *ast.NilExpr:
		return types.Nil
	case *ast.VarExpr:
		return c.variable(e.Var)
	case *ast.CallExpr:
		return c.call(e)
	case *ast.OpExpr:
		return c.op(e)
	case *ast.RecordExpr:
		return c.record(e)
	case *ast.ArrayExpr:
		return c.array(e)
	case *ast.AssignExpr:
		return c.assign(e)
	case *ast.IfExpr:
		return c.ifExpr(e)
	case *ast.WhileExpr:
		return c.while(e)
	case *ast.ForExpr:
		return c.forExpr(e)
	case *ast.BreakExpr:
		if c.loopDepth == 0 {
			c.errorf(diag.SemaBreakOutsideLoop, e.Sp, "break outside of a loop")
		}
		return types.Unit
	case *ast.SeqExpr:
		result := types.Type(types.Unit)
		for _, sub := range e.Exprs {
			result = c.expr(sub)
		}
		return result
	case *ast.LetExpr:
		return c.let(e)
	default:
		c.errorf(diag.TransInternal, e.Span(), "unhandled expression %T", e)
		return nil
	}
}

func (c *checker) variable(v ast.Var) types.Type {
	switch v := v.(type) {
	case *ast.SimpleVar:
		entry, found := c.venv.Look(v.Name)
		if !found {
			c.errorf(diag.SemaUndefinedVariable, v.Sp, "undefined variable %q", v.Name)
		}
		ve, isVar := entry.(*VarEntry)
		if !isVar {
			c.errorf(diag.SemaNotAVariable, v.Sp, "%q is a function, not a variable", v.Name)
		}
		return ve.Type
	case *ast.FieldVar:
		baseT := c.variable(v.Base)
		rec, isRec := types.Actual(baseT).(*types.RecordType)
		if !isRec {
			c.errorf(diag.SemaNotARecord, v.Sp, "field access on non-record type %s", baseT)
		}
		idx := rec.FieldIndex(v.Field)
		if idx < 0 {
			c.errorf(diag.SemaNoSuchField, v.Sp, "record has no field %q", v.Field)
		}
		c.fieldIdx[v] = idx
		return rec.Fields[idx].Type
	case *ast.SubscriptVar:
		baseT := c.variable(v.Base)
		arr, isArr := types.Actual(baseT).(*types.ArrayType)
		if !isArr {
			c.errorf(diag.SemaNotAnArray, v.Sp, "subscript on non-array type %s", baseT)
		}
		if !types.Equal(c.expr(v.Index), types.Int) {
			c.errorf(diag.SemaIndexNotInt, v.Index.Span(), "array index must be int")
		}
		return arr.Elem
	default:
		c.errorf(diag.TransInternal, v.Span(), "unhandled l-value %T", v)
		return nil
	}
}

func (c *checker) call(e *ast.CallExpr) types.Type {
	entry, found := c.venv.Look(e.Func)
	if !found {
		c.errorf(diag.SemaUndefinedFunction, e.Sp, "undefined function %q", e.Func)
	}
	fn, isFun := entry.(*FunEntry)
	if !isFun {
		c.errorf(diag.SemaNotAFunction, e.Sp, "%q is a variable, not a function", e.Func)
	}
	if len(e.Args) != len(fn.Params) {
		c.errorf(diag.SemaArityMismatch, e.Sp, "%q expects %d arguments, got %d",
			e.Func, len(fn.Params), len(e.Args))
	}
	for i, arg := range e.Args {
		argT := c.expr(arg)
		if !types.AssignableTo(fn.Params[i], argT) {
			c.errorf(diag.SemaArgumentMismatch, arg.Span(),
				"argument %d of %q: expected %s, got %s", i+1, e.Func, fn.Params[i], argT)
		}
	}
	return fn.Result
}

func (c *checker) op(e *ast.OpExpr) types.Type {
	left := c.expr(e.Left)
	right := c.expr(e.Right)
	switch {
	case e.Op.IsArith() || e.Op.IsLogical():
		if !types.Equal(left, types.Int) {
			c.errorf(diag.SemaOperandMismatch, e.Left.Span(), "operator %s needs int operands, got %s", e.Op, left)
		}
		if !types.Equal(right, types.Int) {
			c.errorf(diag.SemaOperandMismatch, e.Right.Span(), "operator %s needs int operands, got %s", e.Op, right)
		}
	default:
		if !types.Equal(left, right) {
			c.errorf(diag.SemaOperandMismatch, e.Sp,
				"operator %s needs operands of the same type, got %s and %s", e.Op, left, right)
		}
	}
	return types.Int
}

func (c *checker) record(e *ast.RecordExpr) types.Type {
	t, found := c.tenv.Look(e.TypeName)
	if !found {
		c.errorf(diag.SemaUndefinedType, e.Sp, "undefined type %q", e.TypeName)
	}
	rec, isRec := types.Actual(t).(*types.RecordType)
	if !isRec {
		c.errorf(diag.SemaNotARecord, e.Sp, "type %q is not a record", e.TypeName)
	}
	if len(e.Fields) != len(rec.Fields) {
		c.errorf(diag.SemaFieldMismatch, e.Sp, "record %q has %d fields, got %d",
			e.TypeName, len(rec.Fields), len(e.Fields))
	}
	// Field initializers must appear in declaration order.
	for i, init := range e.Fields {
		want := rec.Fields[i]
		if init.Name != want.Name {
			c.errorf(diag.SemaFieldMismatch, init.Sp,
				"expected field %q at position %d, got %q", want.Name, i+1, init.Name)
		}
		valT := c.expr(init.Value)
		if !types.AssignableTo(want.Type, valT) {
			c.errorf(diag.SemaFieldMismatch, init.Value.Span(),
				"field %q expects %s, got %s", want.Name, want.Type, valT)
		}
	}
	return t
}

func (c *checker) array(e *ast.ArrayExpr) types.Type {
	t, found := c.tenv.Look(e.TypeName)
	if !found {
		c.errorf(diag.SemaUndefinedType, e.Sp, "undefined type %q", e.TypeName)
	}
	arr, isArr := types.Actual(t).(*types.ArrayType)
	if !isArr {
		c.errorf(diag.SemaNotAnArray, e.Sp, "type %q is not an array", e.TypeName)
	}
	if !types.Equal(c.expr(e.Size), types.Int) {
		c.errorf(diag.SemaBoundNotInt, e.Size.Span(), "array size must be int")
	}
	initT := c.expr(e.Init)
	if !types.AssignableTo(arr.Elem, initT) {
		c.errorf(diag.SemaInitializerMismatch, e.Init.Span(),
			"array initializer: expected %s, got %s", arr.Elem, initT)
	}
	return t
}

func (c *checker) assign(e *ast.AssignExpr) types.Type {
	if sv, isSimple := e.Var.(*ast.SimpleVar); isSimple {
		if entry, found := c.venv.Look(sv.Name); found {
			if ve, isVar := entry.(*VarEntry); isVar && ve.ReadOnly {
				c.errorf(diag.SemaAssignToLoopVar, e.Sp, "loop index %q may not be assigned", sv.Name)
			}
		}
	}
	targetT := c.variable(e.Var)
	valT := c.expr(e.Value)
	if !types.AssignableTo(targetT, valT) {
		c.errorf(diag.SemaAssignMismatch, e.Sp, "cannot assign %s to %s", valT, targetT)
	}
	return types.Unit
}

func (c *checker) ifExpr(e *ast.IfExpr) types.Type {
	if !types.Equal(c.expr(e.Cond), types.Int) {
		c.errorf(diag.SemaConditionNotInt, e.Cond.Span(), "if condition must be int")
	}
	thenT := c.expr(e.Then)
	if e.Else == nil {
		if !types.Equal(thenT, types.Unit) {
			c.errorf(diag.SemaBodyNotUnit, e.Then.Span(), "if-then must produce no value")
		}
		return types.Unit
	}
	elseT := c.expr(e.Else)
	if !types.Equal(thenT, elseT) {
		c.errorf(diag.SemaBranchMismatch, e.Sp,
			"branches of if have different types: %s and %s", thenT, elseT)
	}
	// nil then-branch takes its type from the else side.
	if _, thenNil := types.Actual(thenT).(*types.NilType); thenNil {
		return elseT
	}
	return thenT
}

func (c *checker) while(e *ast.WhileExpr) types.Type {
	if !types.Equal(c.expr(e.Cond), types.Int) {
		c.errorf(diag.SemaConditionNotInt, e.Cond.Span(), "while condition must be int")
	}
	c.loopDepth++
	defer func() { c.loopDepth-- }()
	if !types.Equal(c.expr(e.Body), types.Unit) {
		c.errorf(diag.SemaBodyNotUnit, e.Body.Span(), "while body must produce no value")
	}
	return types.Unit
}

func (c *checker) forExpr(e *ast.ForExpr) types.Type {
	if !types.Equal(c.expr(e.Lo), types.Int) {
		c.errorf(diag.SemaBoundNotInt, e.Lo.Span(), "for bound must be int")
	}
	if !types.Equal(c.expr(e.Hi), types.Int) {
		c.errorf(diag.SemaBoundNotInt, e.Hi.Span(), "for bound must be int")
	}
	c.venv.BeginScope()
	defer c.venv.EndScope()
	c.venv.Enter(e.Name, &VarEntry{Type: types.Int, ReadOnly: true})
	c.loopDepth++
	defer func() { c.loopDepth-- }()
	if !types.Equal(c.expr(e.Body), types.Unit) {
		c.errorf(diag.SemaBodyNotUnit, e.Body.Span(), "for body must produce no value")
	}
	return types.Unit
}

func (c *checker) let(e *ast.LetExpr) types.Type {
	c.tenv.BeginScope()
	c.venv.BeginScope()
	defer c.tenv.EndScope()
	defer c.venv.EndScope()
	c.decls(e.Decls)
	result := types.Type(types.Unit)
	for _, sub := range e.Body {
		result = c.expr(sub)
	}
	return result
}
