package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks an unterminated or unrecognised span.
	Invalid Kind = iota
	// EOF marks the end of the source input; its span is empty.
	EOF
	// Identifier is a name, including backtick-quoted names.
	Identifier
	// Keyword is a reserved word (if, function, TRUE, ...).
	Keyword
	// Number is a numeric literal.
	Number
	// String is a quoted string literal.
	String
	// Operator is an infix, prefix or accessor operator.
	Operator
	// Punctuation covers brackets, commas and semicolons.
	Punctuation
	// Comment is a '#' line comment or a /* */ block comment.
	Comment
	// Whitespace is a run of spaces, tabs, form feeds or lone carriage returns.
	Whitespace
	// Newline is a single '\n'.
	Newline
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Identifier:  "identifier",
	Keyword:     "keyword",
	Number:      "number",
	String:      "string",
	Operator:    "operator",
	Punctuation: "punctuation",
	Comment:     "comment",
	Whitespace:  "whitespace",
	Newline:     "newline",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsLayout reports whether the kind carries no code: whitespace, newlines, comments.
func (k Kind) IsLayout() bool {
	return k == Whitespace || k == Newline || k == Comment
}
