package diag

import (
	"slices"
)

// Bag collects violations of one file, optionally capped.
type Bag struct {
	items     []Violation
	max       int
	truncated bool
}

// NewBag returns a bag holding at most max violations; max <= 0 means no limit.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add добавляет нарушение, учитывая лимит.
// Возвращает false, если нарушение не добавлено (достигнут лимит).
func (b *Bag) Add(v Violation) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.truncated = true
		return false
	}
	b.items = append(b.items, v)
	return true
}

// Truncated reports whether Add ever dropped a violation.
func (b *Bag) Truncated() bool {
	return b.truncated
}

// HasErrors возвращает true, если есть хотя бы одно нарушение с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice нарушений.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Violation {
	return b.items
}

// Sort сортирует по (line, column, rule id, message) для детерминированного вывода.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Violation) int {
		switch {
		case Less(x, y):
			return -1
		case Less(y, x):
			return 1
		}
		return 0
	})
}
