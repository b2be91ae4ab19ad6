package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tiger/internal/source"
	"tiger/internal/translate"
	"tiger/internal/types"
)

func compileSrc(t *testing.T, src string, opts Options) *Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.tig", []byte(src))
	return Compile(fs, id, opts)
}

func TestCompileWellTyped(t *testing.T) {
	res := compileSrc(t, "let var x := 5 in x end", Options{})
	if !res.Ok() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if !types.Equal(res.Type, types.Int) {
		t.Fatalf("expected program type int, got %s", res.Type)
	}
	if len(res.Fragments) != 1 {
		t.Fatalf("expected one fragment, got %d", len(res.Fragments))
	}
}

func TestCompileStopsAfterLexError(t *testing.T) {
	res := compileSrc(t, "let var x := # in x end", Options{})
	if res.Ok() {
		t.Fatalf("expected errors")
	}
	if res.Fragments != nil {
		t.Fatalf("no fragments after an error")
	}
}

func TestCompileStopsAfterSemaError(t *testing.T) {
	res := compileSrc(t, "undefined_one", Options{})
	if res.Ok() || res.Fragments != nil {
		t.Fatalf("semantic error must stop the pipeline")
	}
	first, ok := res.Bag.First()
	if !ok || first.Code.Phase() != "sema" {
		t.Fatalf("expected a sema diagnostic, got %v", res.Bag.Items())
	}
}

func TestCompileMIPSDialect(t *testing.T) {
	res := compileSrc(t, "42", Options{Dialect: "mips32"})
	if !res.Ok() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	proc := res.Fragments[0].(*translate.ProcFragment)
	if proc.Frame.WordSize() != 4 {
		t.Fatalf("mips32 frames use 4-byte words")
	}
}

func TestStopAfterCheck(t *testing.T) {
	res := compileSrc(t, "42", Options{StopAfter: "check"})
	if !res.Ok() || res.Fragments != nil {
		t.Fatalf("check-only run must not translate")
	}
	if res.Type == nil {
		t.Fatalf("check-only run still types the program")
	}
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tig"), "1 + 2")
	writeFile(t, filepath.Join(dir, "b.tig"), `"oops" + 1`)
	writeFile(t, filepath.Join(dir, "sub", "c.tig"), "let var x := 3 in x end")

	results, err := CompileDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("CompileDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// Sorted order: a.tig, b.tig, sub/c.tig.
	if !results[0].Ok() || results[1].Ok() || !results[2].Ok() {
		t.Fatalf("unexpected outcomes: %v %v %v", results[0].Ok(), results[1].Ok(), results[2].Ok())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	fs := source.NewFileSet()
	id := fs.Add("x.tig", []byte("42"))
	key := fs.Get(id).Hash

	if _, ok := cache.Get(key); ok {
		t.Fatalf("expected a miss before Put")
	}
	if err := cache.Put(key, &DiskPayload{Path: "x.tig", ProcCount: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok := cache.Get(key)
	if !ok || got.ProcCount != 1 || got.Path != "x.tig" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := cache.Get(key); ok {
		t.Fatalf("expected a miss after Clear")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
