package token

// Operators lists every fixed operator spelling, longest first, so the lexer can
// match greedily. %op% forms are scanned separately.
var Operators = []string{
	"<<-", "->>", ":::",
	"<-", "->", "::", "==", "!=", "<=", ">=", "&&", "||", "|>",
	"+", "-", "*", "/", "^", "<", ">", "!", "&", "|", "~", "?", "=", ":", "$", "@",
	Lambda,
}

// Lambda is the shorthand for function: \(x) x + 1.
const Lambda = `\`

// Punctuations lists bracket, comma and semicolon spellings, longest first.
var Punctuations = []string{"[[", "]]", "(", ")", "{", "}", "[", "]", ",", ";"}

// IsSpecialOperator reports whether op is a user-defined %op% operator.
func IsSpecialOperator(op string) bool {
	return len(op) >= 2 && op[0] == '%' && op[len(op)-1] == '%'
}

// CanBeUnary reports whether op has a prefix form.
func CanBeUnary(op string) bool {
	switch op {
	case "-", "+", "!", "~", "?":
		return true
	}
	return false
}
