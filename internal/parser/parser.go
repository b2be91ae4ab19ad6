// Package parser builds the Tiger AST from the token stream.
//
// A program is a single expression. The parser stops at the first syntax
// error; there is no recovery.
package parser

import (
	"fmt"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/lexer"
	"tiger/internal/source"
	"tiger/internal/token"
)

// Options configures a Parser.
type Options struct {
	Reporter diag.Reporter
}

// Parser holds the parse state for one file.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastSpan source.Span
}

// ParseProgram parses a whole program: one expression followed by EOF.
func ParseProgram(lx *lexer.Lexer, opts Options) (ast.Expr, bool) {
	p := &Parser{lx: lx, opts: opts, lastSpan: lx.EmptySpan()}
	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.at(token.EOF) {
		p.errorf(diag.SynUnexpectedToken, p.peek().Span, "expected end of file, found %s", p.describe(p.peek()))
		return nil, false
	}
	return expr, true
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// bump consumes and returns the current token.
func (p *Parser) bump() token.Token {
	t := p.lx.Next()
	p.lastSpan = t.Span
	return t
}

// expect consumes a token of kind k or reports an error.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	p.errorf(diag.SynExpectToken, p.peek().Span, "expected %s, found %s", k, p.describe(p.peek()))
	return token.Token{}, false
}

func (p *Parser) describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case token.IntLit, token.StringLit:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return fmt.Sprintf("%q", t.Kind.String())
	}
}

func (p *Parser) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.Error(p.reporter(), code, span, fmt.Sprintf(format, args...))
}

func (p *Parser) reporter() diag.Reporter {
	if p.opts.Reporter == nil {
		return diag.NopReporter{}
	}
	return p.opts.Reporter
}
