package lexer

import (
	"testing"

	"tiger/internal/diag"
	"tiger/internal/source"
	"tiger/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.tig", []byte(src))
	bag := diag.NewBag(16)
	lx := New(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})
	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexSimpleLet(t *testing.T) {
	toks, bag := lexAll(t, "let var x := 5 in x end")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwLet, token.KwVar, token.Ident, token.Assign, token.IntLit,
		token.KwIn, token.Ident, token.KwEnd,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLexOperators(t *testing.T) {
	toks, bag := lexAll(t, "<> <= >= := < > = & |")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors")
	}
	want := []token.Kind{
		token.NotEq, token.LtEq, token.GtEq, token.Assign,
		token.Lt, token.Gt, token.Eq, token.Amp, token.Pipe,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLexNestedComment(t *testing.T) {
	toks, bag := lexAll(t, "1 /* outer /* inner */ still comment */ 2")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(toks) != 2 || toks[0].Text != "1" || toks[1].Text != "2" {
		t.Fatalf("expected two integer tokens, got %v", toks)
	}
}

func TestLexUnterminatedComment(t *testing.T) {
	_, bag := lexAll(t, "/* never closed")
	first, ok := bag.First()
	if !ok || first.Code != diag.LexUnterminatedComment {
		t.Fatalf("expected unterminated comment error, got %v", bag.Items())
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, bag := lexAll(t, `"a\tb\n\"q\"\065"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(toks) != 1 {
		t.Fatalf("expected one token, got %v", toks)
	}
	if toks[0].Text != "a\tb\n\"q\"A" {
		t.Fatalf("bad decode: %q", toks[0].Text)
	}
}

func TestLexStringElision(t *testing.T) {
	toks, bag := lexAll(t, "\"ab\\ \n \\cd\"")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if toks[0].Text != "abcd" {
		t.Fatalf("expected elided string, got %q", toks[0].Text)
	}
}

func TestLexControlEscape(t *testing.T) {
	toks, bag := lexAll(t, `"\^I"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if toks[0].Text != "\t" {
		t.Fatalf("expected TAB from \\^I, got %q", toks[0].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, "\"abc\n")
	first, ok := bag.First()
	if !ok || first.Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string error, got %v", bag.Items())
	}
}

func TestLexUnknownChar(t *testing.T) {
	_, bag := lexAll(t, "x # y")
	first, ok := bag.First()
	if !ok || first.Code != diag.LexUnknownChar {
		t.Fatalf("expected unknown char error, got %v", bag.Items())
	}
}

func TestLexSpans(t *testing.T) {
	toks, _ := lexAll(t, "ab + 12")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Fatalf("bad span for ident: %v", toks[0].Span)
	}
	if toks[2].Span.Start != 5 || toks[2].Span.End != 7 {
		t.Fatalf("bad span for int: %v", toks[2].Span)
	}
}
