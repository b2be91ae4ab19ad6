// Package lexer turns Tiger source text into a token stream.
package lexer

import (
	"tiger/internal/diag"
	"tiger/internal/source"
	"tiger/internal/token"
)

// Lexer produces significant tokens for one file. Whitespace and comments
// (which nest) are skipped. After EOF it keeps returning EOF.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
	failed bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Failed reports whether any lexical error was emitted.
func (lx *Lexer) Failed() bool {
	return lx.failed
}

// Peek returns the next significant token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		t := lx.scan()
		lx.look = &t
	}
	return *lx.look
}

// Next returns and consumes the next significant token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		t := *lx.look
		lx.look = nil
		return t
	}
	return lx.scan()
}

// EmptySpan is a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.cursor.Span(lx.cursor.Off)
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}
	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// skipTrivia consumes whitespace and nested block comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f':
			lx.cursor.Bump()
		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			lx.skipComment()
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() {
	start := lx.cursor.Off
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	depth := 1
	for depth > 0 {
		if lx.cursor.EOF() {
			lx.report(diag.LexUnterminatedComment, lx.cursor.Span(start), "unterminated comment")
			return
		}
		ch := lx.cursor.Peek()
		if ch == '/' && lx.cursor.PeekAt(1) == '*' {
			depth++
			lx.cursor.Bump()
			lx.cursor.Bump()
		} else if ch == '*' && lx.cursor.PeekAt(1) == '/' {
			depth--
			lx.cursor.Bump()
			lx.cursor.Bump()
		} else {
			lx.cursor.Bump()
		}
	}
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	lx.failed = true
	diag.Error(lx.opts.reporter(), code, span, msg)
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
