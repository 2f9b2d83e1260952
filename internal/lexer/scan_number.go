package lexer

import (
	"stylint/internal/token"
)

// scanNumber: 42, 3.14, .5, 1e-3, 0x1F, 10L, 2i.
// Суффикс L или i допускается один раз в конце.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') && isHex(lx.cursor.PeekAt(2)) {
		lx.cursor.Advance(2)
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.eatNumberSuffix()
		return lx.make(token.Number, start)
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		// экспонента только если за e реально идут цифры: иначе "1e" это 1 и e
		n := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			lx.cursor.Advance(n)
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}
	lx.eatNumberSuffix()
	return lx.make(token.Number, start)
}

func (lx *Lexer) eatNumberSuffix() {
	if !lx.cursor.Eat('L') {
		lx.cursor.Eat('i')
	}
}
