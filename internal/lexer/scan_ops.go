package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"stylint/internal/token"
)

// scanOperatorOrPunct — жадный матч по таблицам token.Operators и token.Punctuations
// (обе отсортированы от длинных к коротким). Скобки обрабатываются отдельно.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	if tok, ok := lx.scanBracket(); ok {
		return tok
	}
	for _, op := range token.Operators {
		if lx.cursor.HasPrefix(op) {
			lx.cursor.Advance(opLen(op))
			return lx.make(token.Operator, start)
		}
	}
	for _, p := range token.Punctuations {
		if lx.cursor.HasPrefix(p) {
			lx.cursor.Advance(opLen(p))
			return lx.make(token.Punctuation, start)
		}
	}

	lx.cursor.Bump()
	lx.fail(start, "unknown character")
	return lx.make(token.Invalid, start)
}

// scanBracket ведёт стек открытых скобок: "]]" — один токен, только если
// самая внутренняя открытая скобка "[[". Так a[b[1]] даёт "]" "]".
func (lx *Lexer) scanBracket() (token.Token, bool) {
	start := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case '(', '{':
		lx.brackets = append(lx.brackets, lx.cursor.Bump())
	case '[':
		if lx.cursor.HasPrefix("[[") {
			lx.cursor.Advance(2)
			lx.brackets = append(lx.brackets, 'D')
		} else {
			lx.brackets = append(lx.brackets, lx.cursor.Bump())
		}
	case ')', '}':
		lx.popBracket()
		lx.cursor.Bump()
	case ']':
		if lx.topBracket() == 'D' && lx.cursor.HasPrefix("]]") {
			lx.cursor.Advance(2)
		} else {
			lx.cursor.Bump()
		}
		lx.popBracket()
	default:
		return token.Token{}, false
	}
	return lx.make(token.Punctuation, start), true
}

func (lx *Lexer) topBracket() byte {
	if len(lx.brackets) == 0 {
		return 0
	}
	return lx.brackets[len(lx.brackets)-1]
}

// несбалансированные закрывающие скобки игнорируются: это не дело токенизатора
func (lx *Lexer) popBracket() {
	if len(lx.brackets) > 0 {
		lx.brackets = lx.brackets[:len(lx.brackets)-1]
	}
}

// scanSpecialOperator сканирует %op% (%in%, %>%, %%). Закрывающий '%' обязан
// быть на той же строке, иначе одиночный '%' — неизвестный символ.
func (lx *Lexer) scanSpecialOperator() token.Token {
	start := lx.cursor.Mark()
	for n := uint32(1); ; n++ {
		switch lx.cursor.PeekAt(n) {
		case '%':
			lx.cursor.Advance(n + 1)
			return lx.make(token.Operator, start)
		case '\n', 0:
			lx.cursor.Bump()
			lx.fail(start, "unknown character")
			return lx.make(token.Invalid, start)
		}
	}
}

func opLen(s string) uint32 {
	n, err := safecast.Conv[uint32](len(s))
	if err != nil {
		panic(fmt.Errorf("operator length overflow: %w", err))
	}
	return n
}
