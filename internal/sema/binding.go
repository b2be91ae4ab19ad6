package sema

import (
	"tiger/internal/types"
)

// binding is a value-namespace entry: a variable or a function. Variables and
// functions share one namespace and shadow each other.
type binding interface {
	valueBinding()
}

// VarEntry binds a variable. ReadOnly marks for-loop indices.
type VarEntry struct {
	Type     types.Type
	ReadOnly bool
}

// FunEntry binds a function or builtin.
type FunEntry struct {
	Params []types.Type
	Result types.Type
}

func (*VarEntry) valueBinding() {}
func (*FunEntry) valueBinding() {}
