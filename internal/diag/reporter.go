package diag

// Reporter — минимальный контракт получения нарушений от лексера и правил.
// Реализация по умолчанию: BagReporter (кладёт в Bag).
type Reporter interface {
	Report(v Violation)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(v Violation) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(v)
}
