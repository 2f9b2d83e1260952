package lexer

import (
	"iter"

	"stylint/internal/source"
	"stylint/internal/token"
)

// Lexer — ленивый сканер: каждый байт входа попадает ровно в один токен,
// включая пробелы, переводы строк и комментарии.
type Lexer struct {
	file      *source.File
	cursor    Cursor
	opts      Options
	line      uint32 // 1-based строка текущей позиции
	lineStart uint32 // смещение начала текущей строки
	errs      ScanErrors
	brackets  []byte // стек открытых скобок; 'D' означает "[["
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		line:   1,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	line, col := lx.line, lx.cursor.Off-lx.lineStart+1
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Line: line, Column: col}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '\n':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		tok = lx.make(token.Newline, start)

	case isSpace(ch):
		tok = lx.scanWhitespace()

	case ch == '#':
		tok = lx.scanLineComment()

	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		tok = lx.scanBlockComment()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		tok = lx.scanQuotedName()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		// ".5" — число, ".x" — идентификатор
		tok = lx.scanNumber()

	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case ch == '%':
		tok = lx.scanSpecialOperator()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Line, tok.Column = line, col
	lx.advanceLines(tok)
	return tok
}

// Reset перематывает лексер к началу файла.
func (lx *Lexer) Reset() {
	lx.cursor = NewCursor(lx.file)
	lx.line = 1
	lx.lineStart = 0
	lx.errs = nil
	lx.brackets = lx.brackets[:0]
}

// All resets the lexer and yields every token up to and including EOF.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		lx.Reset()
		for {
			tok := lx.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// Errors returns the scan errors seen since the last Reset.
func (lx *Lexer) Errors() ScanErrors {
	return lx.errs
}

// Scan tokenizes the whole file. The returned slice always ends with EOF and
// covers the input even when err is a non-nil ScanErrors.
func Scan(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for tok := range lx.All() {
		toks = append(toks, tok)
	}
	if errs := lx.Errors(); len(errs) > 0 {
		return toks, errs
	}
	return toks, nil
}

func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) advanceLines(tok token.Token) {
	for i := tok.Span.Start; i < tok.Span.End; i++ {
		if lx.file.Content[i] == '\n' {
			lx.line++
			lx.lineStart = i + 1
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
