package lexer

import (
	"testing"

	"stylint/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("c.R", []byte("ab/*")))
	c := NewCursor(f)
	if c.Peek() != 'a' || c.PeekAt(1) != 'b' || c.PeekAt(10) != 0 {
		t.Fatal("peek mismatch")
	}
	m := c.Mark()
	c.Bump()
	if !c.Eat('b') || c.Eat('x') {
		t.Fatal("Eat mismatch")
	}
	if !c.HasPrefix("/*") || c.HasPrefix("/*x") {
		t.Fatal("HasPrefix mismatch")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Advance(100)
	if !c.EOF() || c.Bump() != 0 {
		t.Fatal("Advance must clamp to EOF")
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatal("Reset mismatch")
	}
}
