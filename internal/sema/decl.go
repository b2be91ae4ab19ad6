package sema

import (
	"strings"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/types"
)

// decls processes a let's declaration list in batches: maximal consecutive
// runs of type declarations and of function declarations are each processed
// in two phases so their members may be mutually recursive. A variable
// declaration is always its own batch and ends any open run.
func (c *checker) decls(decls []ast.Decl) {
	for i := 0; i < len(decls); {
		switch decls[i].(type) {
		case *ast.TypeDecl:
			j := i
			for j < len(decls) {
				if _, isType := decls[j].(*ast.TypeDecl); !isType {
					break
				}
				j++
			}
			batch := make([]*ast.TypeDecl, 0, j-i)
			for _, d := range decls[i:j] {
				batch = append(batch, d.(*ast.TypeDecl))
			}
			c.typeBatch(batch)
			i = j
		case *ast.FuncDecl:
			j := i
			for j < len(decls) {
				if _, isFunc := decls[j].(*ast.FuncDecl); !isFunc {
					break
				}
				j++
			}
			batch := make([]*ast.FuncDecl, 0, j-i)
			for _, d := range decls[i:j] {
				batch = append(batch, d.(*ast.FuncDecl))
			}
			c.funcBatch(batch)
			i = j
		case *ast.VarDecl:
			c.varDecl(decls[i].(*ast.VarDecl))
			i++
		}
	}
}

// typeBatch runs the two-phase type declaration protocol: first enter an
// unbound alias per name, then translate and bind each body, then reject
// non-productive alias cycles.
func (c *checker) typeBatch(batch []*ast.TypeDecl) {
	aliases := make([]*types.NameType, len(batch))
	for i, d := range batch {
		if containsName(batch[:i], d.Name) {
			c.errorf(diag.SemaDuplicateName, d.Sp, "type %q declared twice in the same batch", d.Name)
		}
		aliases[i] = c.ctx.NewName(d.Name)
		c.tenv.Enter(d.Name, aliases[i])
	}
	for i, d := range batch {
		aliases[i].Bind(c.transTy(d.Ty))
	}
	c.cycleCheck(batch, aliases)
}

func containsName(batch []*ast.TypeDecl, name string) bool {
	for _, d := range batch {
		if d.Name == name {
			return true
		}
	}
	return false
}

// cycleCheck rejects alias chains that never reach a non-alias, such as
// type a = b with type b = a. A cycle through a record or array layer is
// productive and fine.
func (c *checker) cycleCheck(batch []*ast.TypeDecl, aliases []*types.NameType) {
	for i, start := range aliases {
		seen := map[*types.NameType]bool{start: true}
		chain := []string{start.Sym}
		t := start.Binding
		for {
			alias, isAlias := t.(*types.NameType)
			if !isAlias {
				break
			}
			if seen[alias] {
				chain = append(chain, alias.Sym)
				c.errorf(diag.SemaTypeCycle, batch[i].Sp,
					"non-productive type cycle: %s", strings.Join(chain, " -> "))
			}
			seen[alias] = true
			chain = append(chain, alias.Sym)
			t = alias.Binding
		}
	}
}

// transTy translates a syntactic type into a semantic one. Name lookups see
// the aliases entered by the current batch's header phase, which is what
// makes recursive records work.
func (c *checker) transTy(t ast.Ty) types.Type {
	switch t := t.(type) {
	case *ast.NameTy:
		bound, found := c.tenv.Look(t.Name)
		if !found {
			c.errorf(diag.SemaUndefinedType, t.Sp, "undefined type %q", t.Name)
		}
		return bound
	case *ast.RecordTy:
		fields := make([]types.Field, 0, len(t.Fields))
		for _, f := range t.Fields {
			ft, found := c.tenv.Look(f.TypeName)
			if !found {
				c.errorf(diag.SemaUndefinedType, f.Sp, "undefined type %q", f.TypeName)
			}
			fields = append(fields, types.Field{Name: f.Name, Type: ft})
		}
		return c.ctx.NewRecord(fields)
	case *ast.ArrayTy:
		elem, found := c.tenv.Look(t.Elem)
		if !found {
			c.errorf(diag.SemaUndefinedType, t.Sp, "undefined type %q", t.Elem)
		}
		return c.ctx.NewArray(elem)
	default:
		c.errorf(diag.TransInternal, t.Span(), "unhandled type %T", t)
		return nil
	}
}

// funcBatch runs the two-phase function declaration protocol: enter every
// header first, then check each body against its own header.
func (c *checker) funcBatch(batch []*ast.FuncDecl) {
	entries := make([]*FunEntry, len(batch))
	for i, d := range batch {
		for _, prev := range batch[:i] {
			if prev.Name == d.Name {
				c.errorf(diag.SemaDuplicateName, d.Sp, "function %q declared twice in the same batch", d.Name)
			}
		}
		params := make([]types.Type, 0, len(d.Params))
		for _, p := range d.Params {
			pt, found := c.tenv.Look(p.TypeName)
			if !found {
				c.errorf(diag.SemaUndefinedType, p.Sp, "undefined type %q", p.TypeName)
			}
			params = append(params, pt)
		}
		result := types.Type(types.Unit)
		if d.Result != "" {
			rt, found := c.tenv.Look(d.Result)
			if !found {
				c.errorf(diag.SemaUndefinedType, d.ResultSp, "undefined type %q", d.Result)
			}
			result = rt
		}
		entries[i] = &FunEntry{Params: params, Result: result}
		c.venv.Enter(d.Name, entries[i])
	}
	for i, d := range batch {
		c.funcBody(d, entries[i])
	}
}

func (c *checker) funcBody(d *ast.FuncDecl, entry *FunEntry) {
	c.venv.BeginScope()
	defer c.venv.EndScope()
	for i, p := range d.Params {
		c.venv.Enter(p.Name, &VarEntry{Type: entry.Params[i]})
	}
	// break does not cross a function boundary.
	savedDepth := c.loopDepth
	c.loopDepth = 0
	defer func() { c.loopDepth = savedDepth }()

	bodyT := c.expr(d.Body)
	if !types.Equal(entry.Result, types.Unit) {
		if !types.AssignableTo(entry.Result, bodyT) {
			c.errorf(diag.SemaReturnMismatch, d.Body.Span(),
				"function %q must return %s, body has type %s", d.Name, entry.Result, bodyT)
		}
	}
	// A procedure discards its body's value.
}

// varDecl is always a singleton batch; variables never participate in
// mutual recursion.
func (c *checker) varDecl(d *ast.VarDecl) {
	initT := c.expr(d.Init)
	declared := initT
	if d.TypeName != "" {
		t, found := c.tenv.Look(d.TypeName)
		if !found {
			c.errorf(diag.SemaUndefinedType, d.TypeSp, "undefined type %q", d.TypeName)
		}
		if !types.AssignableTo(t, initT) {
			c.errorf(diag.SemaInitializerMismatch, d.Init.Span(),
				"cannot initialize %q of type %s with %s", d.Name, t, initT)
		}
		declared = t
	} else if _, isNil := types.Actual(initT).(*types.NilType); isNil {
		c.errorf(diag.SemaNilNeedsRecordType, d.Sp,
			"nil initializer for %q needs an explicit record type", d.Name)
	}
	c.venv.Enter(d.Name, &VarEntry{Type: declared})
}
