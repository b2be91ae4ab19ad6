package token

import "fmt"

// Kind enumerates every Tiger token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLit
	StringLit

	// Keywords
	KwArray
	KwBreak
	KwDo
	KwElse
	KwEnd
	KwFor
	KwFunction
	KwIf
	KwIn
	KwLet
	KwNil
	KwOf
	KwThen
	KwTo
	KwType
	KwVar
	KwWhile

	// Punctuation and operators
	Comma
	Colon
	Semicolon
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Dot
	Plus
	Minus
	Star
	Slash
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	Amp
	Pipe
	Assign
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case StringLit:
		return "string literal"
	case KwArray:
		return "array"
	case KwBreak:
		return "break"
	case KwDo:
		return "do"
	case KwElse:
		return "else"
	case KwEnd:
		return "end"
	case KwFor:
		return "for"
	case KwFunction:
		return "function"
	case KwIf:
		return "if"
	case KwIn:
		return "in"
	case KwLet:
		return "let"
	case KwNil:
		return "nil"
	case KwOf:
		return "of"
	case KwThen:
		return "then"
	case KwTo:
		return "to"
	case KwType:
		return "type"
	case KwVar:
		return "var"
	case KwWhile:
		return "while"
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case Dot:
		return "."
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Eq:
		return "="
	case NotEq:
		return "<>"
	case Lt:
		return "<"
	case LtEq:
		return "<="
	case Gt:
		return ">"
	case GtEq:
		return ">="
	case Amp:
		return "&"
	case Pipe:
		return "|"
	case Assign:
		return ":="
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}
