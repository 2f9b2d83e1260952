package lexer

import (
	"stylint/internal/token"
)

// scanString сканирует "..." или '...' с escape-последовательностями.
// Строка может занимать несколько строк; незакрытая съедает вход до EOF.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for {
		if lx.cursor.EOF() {
			lx.fail(start, "unterminated string")
			return lx.make(token.Invalid, start)
		}
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case quote:
			return lx.make(token.String, start)
		}
	}
}

func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.make(token.Whitespace, start)
}

// '#' до конца строки, сам '\n' не входит
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.make(token.Comment, start)
}

func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2) // /*
	for {
		if lx.cursor.EOF() {
			lx.fail(start, "unterminated block comment")
			return lx.make(token.Invalid, start)
		}
		if lx.cursor.HasPrefix("*/") {
			lx.cursor.Advance(2)
			return lx.make(token.Comment, start)
		}
		lx.cursor.Bump()
	}
}
