package lexer

// Reporter — тонкий интерфейс, чтобы не тянуть форматирование сюда.
// Лексер только вызывает его; превращение в нарушения делает внешний слой.
type Reporter interface {
	Report(err *ScanError)
}

type Options struct {
	Reporter Reporter // может быть nil — ошибки всё равно копятся в Lexer.Errors
}

func (lx *Lexer) fail(start Mark, msg string) {
	err := &ScanError{
		Path:   lx.file.Path,
		Span:   lx.cursor.SpanFrom(start),
		Line:   lx.line,
		Column: uint32(start) - lx.lineStart + 1,
		Msg:    msg,
	}
	lx.errs = append(lx.errs, err)
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(err)
	}
}
