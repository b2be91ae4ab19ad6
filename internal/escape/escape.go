// Package escape marks declarations whose variables are referenced from a
// strictly deeper function-nesting level. Such variables must live in the
// frame rather than a register, because nested functions reach them through
// the static link.
//
// The pass mutates the Escape bits on VarDecl, Field, and ForExpr nodes in
// place; it is the only post-parse AST mutation in the pipeline.
package escape

import (
	"tiger/internal/ast"
	"tiger/internal/symbols"
)

// binding records where a name was declared and which escape bit it owns.
type binding struct {
	depth  int
	escape *bool
}

type analyzer struct {
	env   *symbols.Table[binding]
	depth int
}

// Analyze walks the program and sets escape bits. Undefined names are
// ignored here; the semantic analyzer reports them.
func Analyze(prog ast.Expr) {
	a := &analyzer{env: symbols.NewTable[binding]()}
	a.expr(prog)
}

func (a *analyzer) declare(name string, escape *bool) {
	*escape = false
	a.env.Enter(name, binding{depth: a.depth, escape: escape})
}

func (a *analyzer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.IntExpr, *ast.StringExpr, *ast.NilExpr, *ast.BreakExpr:
	case *ast.VarExpr:
		a.variable(e.Var)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			a.expr(arg)
		}
	case *ast.OpExpr:
		a.expr(e.Left)
		a.expr(e.Right)
	case *ast.RecordExpr:
		for _, f := range e.Fields {
			a.expr(f.Value)
		}
	case *ast.ArrayExpr:
		a.expr(e.Size)
		a.expr(e.Init)
	case *ast.AssignExpr:
		// A write is still an access: the target variable is visited.
		a.variable(e.Var)
		a.expr(e.Value)
	case *ast.IfExpr:
		a.expr(e.Cond)
		a.expr(e.Then)
		if e.Else != nil {
			a.expr(e.Else)
		}
	case *ast.WhileExpr:
		a.expr(e.Cond)
		a.expr(e.Body)
	case *ast.ForExpr:
		a.expr(e.Lo)
		a.expr(e.Hi)
		a.env.BeginScope()
		a.declare(e.Name, &e.Escape)
		a.expr(e.Body)
		a.env.EndScope()
	case *ast.SeqExpr:
		for _, sub := range e.Exprs {
			a.expr(sub)
		}
	case *ast.LetExpr:
		// let opens a scope but does not change the nesting depth.
		a.env.BeginScope()
		for _, d := range e.Decls {
			a.decl(d)
		}
		for _, sub := range e.Body {
			a.expr(sub)
		}
		a.env.EndScope()
	}
}

func (a *analyzer) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.TypeDecl:
	case *ast.VarDecl:
		a.expr(d.Init)
		a.declare(d.Name, &d.Escape)
	case *ast.FuncDecl:
		a.depth++
		a.env.BeginScope()
		for _, p := range d.Params {
			a.declare(p.Name, &p.Escape)
		}
		a.expr(d.Body)
		a.env.EndScope()
		a.depth--
	}
}

func (a *analyzer) variable(v ast.Var) {
	switch v := v.(type) {
	case *ast.SimpleVar:
		if b, ok := a.env.Look(v.Name); ok && a.depth > b.depth {
			*b.escape = true
		}
	case *ast.FieldVar:
		// Selecting a field accesses the base variable, not the field.
		a.variable(v.Base)
	case *ast.SubscriptVar:
		a.variable(v.Base)
		a.expr(v.Index)
	}
}
