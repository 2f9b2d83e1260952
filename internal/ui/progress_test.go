package ui

import (
	"strings"
	"testing"

	"stylint/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("linting", []string{"a.R", "b.R", "c.R"}, events).(*progressModel)

	for _, ev := range []driver.Event{
		{File: "a.R", Status: driver.StatusWorking},
		{File: "a.R", Status: driver.StatusDone, Cached: true},
		{File: "b.R", Status: driver.StatusError},
		{File: "unknown.R", Status: driver.StatusDone},
	} {
		m.applyEvent(ev)
	}

	if got := m.finished(); got != 2 {
		t.Fatalf("finished = %d, want 2", got)
	}
	view := m.View()
	for _, want := range []string{"linting 2/3", "1 cached", "1 failed", "cached", "error", "queued"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("linting", []string{"a.R"}, events).(*progressModel)

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("got %T, want doneMsg", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil || !m.done {
		t.Fatal("model should finish and quit")
	}
	if !strings.HasPrefix(stripANSI(m.View()), "done:") {
		t.Errorf("view = %q", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.R", 20, "short.R"},
		{"very/long/path/name.R", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"длинное_имя.R", 8, "длинн..."},
		{"данные.R", 0, "данные.R"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			esc = false
		case !esc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestFinished(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("linting", []string{"a.R"}, events)
	if Finished(m) {
		t.Fatal("fresh model is not finished")
	}
	m.Update(doneMsg{})
	if !Finished(m) {
		t.Fatal("model should be finished after doneMsg")
	}
}
