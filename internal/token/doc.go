// Package token defines lexical token kinds for the scripts stylint checks.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Whitespace, newlines and comments are tokens, not trivia: concatenating
//     Text over a token stream reproduces the scanned input byte-for-byte.
//   - Keywords are recognised case-sensitively (TRUE is a keyword, True is an
//     identifier).
//   - Operators and punctuation share the coarse kinds Operator/Punctuation;
//     the concrete symbol is Token.Text.
package token
