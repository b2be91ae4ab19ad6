package sema

import (
	"tiger/internal/symbols"
	"tiger/internal/types"
)

// baseTypeEnv seeds the type namespace with the primitive types.
func baseTypeEnv() *symbols.Table[types.Type] {
	tenv := symbols.NewTable[types.Type]()
	tenv.Enter("int", types.Int)
	tenv.Enter("string", types.String)
	return tenv
}

// baseValueEnv seeds the value namespace with the runtime builtins. The
// translator emits calls to these by symbol name.
func baseValueEnv() *symbols.Table[binding] {
	venv := symbols.NewTable[binding]()
	enter := func(name string, params []types.Type, result types.Type) {
		venv.Enter(name, &FunEntry{Params: params, Result: result})
	}
	enter("print", []types.Type{types.String}, types.Unit)
	enter("printi", []types.Type{types.Int}, types.Unit)
	enter("flush", nil, types.Unit)
	enter("getchar", nil, types.String)
	enter("ord", []types.Type{types.String}, types.Int)
	enter("chr", []types.Type{types.Int}, types.String)
	enter("size", []types.Type{types.String}, types.Int)
	enter("substring", []types.Type{types.String, types.Int, types.Int}, types.String)
	enter("concat", []types.Type{types.String, types.String}, types.String)
	enter("not", []types.Type{types.Int}, types.Int)
	enter("exit", []types.Type{types.Int}, types.Unit)
	return venv
}

// Builtins lists the runtime symbols in the value prelude.
func Builtins() []string {
	return []string{
		"print", "printi", "flush", "getchar", "ord", "chr",
		"size", "substring", "concat", "not", "exit",
	}
}
