package lexer

import (
	"strconv"

	"tiger/internal/diag"
	"tiger/internal/token"
)

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	span := lx.cursor.Span(start)
	if _, err := strconv.ParseInt(text, 10, 64); err != nil {
		lx.report(diag.LexIntOutOfRange, span, "integer literal out of range: "+text)
	}
	return token.Token{Kind: token.IntLit, Span: span, Text: text}
}
