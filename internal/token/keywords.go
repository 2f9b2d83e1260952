package token

var keywords = map[string]struct{}{
	"if":            {},
	"else":          {},
	"for":           {},
	"while":         {},
	"repeat":        {},
	"function":      {},
	"return":        {},
	"next":          {},
	"break":         {},
	"in":            {},
	"TRUE":          {},
	"FALSE":         {},
	"NULL":          {},
	"NA":            {},
	"NA_integer_":   {},
	"NA_real_":      {},
	"NA_character_": {},
	"NA_complex_":   {},
	"Inf":           {},
	"NaN":           {},
}

// control keywords open a header followed by a parenthesised condition.
var headerKeywords = map[string]struct{}{
	"if":       {},
	"for":      {},
	"while":    {},
	"switch":   {},
	"function": {},
}

// IsKeyword reports whether ident is reserved. Регистрозависимо.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// IsHeaderWord reports whether a parenthesised header follows name
// (if, for, while, switch, function). switch is a regular function in the
// language but is styled like a control statement.
func IsHeaderWord(name string) bool {
	_, ok := headerKeywords[name]
	return ok
}
