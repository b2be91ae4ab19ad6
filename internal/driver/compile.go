// Package driver runs the compilation pipeline: lex, parse, escape, check,
// translate. Stages run strictly in order and the pipeline stops after the
// first stage that reports an error.
package driver

import (
	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/escape"
	"tiger/internal/frame"
	"tiger/internal/lexer"
	"tiger/internal/parser"
	"tiger/internal/sema"
	"tiger/internal/source"
	"tiger/internal/temp"
	"tiger/internal/translate"
	"tiger/internal/types"
)

// Options configures one compilation.
type Options struct {
	// Dialect selects the frame layout: "amd64" (default) or "mips32".
	Dialect string
	// MaxDiagnostics caps the diagnostic bag.
	MaxDiagnostics int
	// StopAfter optionally ends the pipeline early: "parse" or "check".
	StopAfter string
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// Result is the outcome of compiling one file.
type Result struct {
	Path      string
	FS        *source.FileSet
	FileID    source.FileID
	Bag       *diag.Bag
	Prog      ast.Expr
	Type      types.Type
	Fragments []translate.Fragment
}

// Ok reports whether the pipeline ran to its requested end without errors.
func (r *Result) Ok() bool {
	return !r.Bag.HasErrors()
}

// Compile runs the pipeline over one file already loaded into fs.
func Compile(fs *source.FileSet, id source.FileID, opts Options) *Result {
	res := &Result{
		Path:   fs.Get(id).Path,
		FS:     fs,
		FileID: id,
		Bag:    diag.NewBag(opts.maxDiagnostics()),
	}
	rep := &diag.BagReporter{Bag: res.Bag}

	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	prog, ok := parser.ParseProgram(lx, parser.Options{Reporter: rep})
	if !ok || res.Bag.HasErrors() {
		return res
	}
	res.Prog = prog
	if opts.StopAfter == "parse" {
		return res
	}

	escape.Analyze(prog)
	semaRes, ok := sema.Check(prog, sema.Options{Reporter: rep})
	if !ok {
		return res
	}
	res.Type = semaRes.Type
	if opts.StopAfter == "check" {
		return res
	}

	tf := temp.NewFactory()
	frames, err := frame.New(opts.Dialect, tf)
	if err != nil {
		diag.Error(rep, diag.TransInternal, source.Span{File: id}, err.Error())
		return res
	}
	res.Fragments = translate.Translate(prog, translate.Options{
		Frames:     frames,
		Temps:      tf,
		FieldIndex: semaRes.FieldIndex,
	})
	return res
}

// CompileFile loads path into a fresh FileSet and compiles it.
func CompileFile(path string, opts Options) (*source.FileSet, *Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, Compile(fs, id, opts), nil
}
