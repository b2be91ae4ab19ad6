package token

var keywords = map[string]Kind{
	"array":    KwArray,
	"break":    KwBreak,
	"do":       KwDo,
	"else":     KwElse,
	"end":      KwEnd,
	"for":      KwFor,
	"function": KwFunction,
	"if":       KwIf,
	"in":       KwIn,
	"let":      KwLet,
	"nil":      KwNil,
	"of":       KwOf,
	"then":     KwThen,
	"to":       KwTo,
	"type":     KwType,
	"var":      KwVar,
	"while":    KwWhile,
}

// LookupKeyword maps an identifier spelling to its keyword kind, or Ident.
func LookupKeyword(name string) Kind {
	if k, ok := keywords[name]; ok {
		return k
	}
	return Ident
}
