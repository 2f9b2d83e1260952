package lexer

import (
	"stylint/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет таблицу ключевых слов.
// Ключевые слова регистрозависимые. Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if r < utf8RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			// не буква: символ вне грамматики, съедаем руну целиком
			if sz == 0 {
				lx.cursor.Bump()
			} else {
				lx.bumpRune()
			}
			lx.fail(start, "unknown character")
			return lx.make(token.Invalid, start)
		}
		lx.bumpRune()
	}
	// общий хвост: ASCII и Unicode вперемешку (naïve.x1)
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.make(token.Identifier, start)
	if token.IsKeyword(tok.Text) {
		tok.Kind = token.Keyword
	}
	return tok
}

// scanQuotedName сканирует `имя в обратных кавычках`. Перевод строки внутри допустим.
func (lx *Lexer) scanQuotedName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // `
	for {
		if lx.cursor.EOF() {
			lx.fail(start, "unterminated quoted name")
			return lx.make(token.Invalid, start)
		}
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '`':
			return lx.make(token.Identifier, start)
		}
	}
}
