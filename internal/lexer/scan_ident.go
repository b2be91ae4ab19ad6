package lexer

import (
	"tiger/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.cursor.Span(start),
		Text: text,
	}
}
