package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"stylint/internal/diag"
	"stylint/internal/source"
)

func sampleEntry() *Entry {
	return &Entry{Violations: []diag.Violation{{
		RuleID:   "case",
		Severity: diag.SevError,
		Message:  `identifier "myVar" uses characters outside [a-z0-9_]; use "my_var"`,
		Span:     source.Span{File: 3, Start: 0, End: 5},
		Line:     1,
		Column:   1,
	}}}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCache(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	key := NewKey([32]byte{1}, "fp", "1.0.0")
	if _, ok := c.Get(key); ok {
		t.Fatal("empty cache should miss")
	}
	c.Put(key, sampleEntry())
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit")
	}
	want := sampleEntry()
	want.Schema = cacheSchemaVersion
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(key); ok {
		t.Fatal("DropAll should clear entries")
	}
}

func TestDiskCacheRejectsStaleAndCorrupt(t *testing.T) {
	c, err := OpenDiskCache(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	stale := NewKey([32]byte{2}, "fp", "v")
	data, err := msgpack.Marshal(&Entry{Schema: cacheSchemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	writeRaw(t, c.pathFor(stale), data)
	if _, ok := c.Get(stale); ok {
		t.Error("stale schema should miss")
	}

	corrupt := NewKey([32]byte{3}, "fp", "v")
	writeRaw(t, c.pathFor(corrupt), []byte{0xc1, 0xff, 0x00})
	if _, ok := c.Get(corrupt); ok {
		t.Error("corrupt entry should miss")
	}
}

func writeRaw(t *testing.T, p string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestKeyDependsOnEveryPart(t *testing.T) {
	base := NewKey([32]byte{1}, "fp", "v1")
	for name, k := range map[string]Key{
		"content":     NewKey([32]byte{2}, "fp", "v1"),
		"fingerprint": NewKey([32]byte{1}, "fp2", "v1"),
		"version":     NewKey([32]byte{1}, "fp", "v2"),
		"boundary":    NewKey([32]byte{1}, "fpv", "1"),
	} {
		if k == base {
			t.Errorf("%s change must change the key", name)
		}
	}
}

func TestMemoryCacheEvicts(t *testing.T) {
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		c.Put(NewKey([32]byte{byte(i)}, "", ""), sampleEntry())
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Get(NewKey([32]byte{0}, "", "")); ok {
		t.Error("oldest entry should be evicted")
	}
}

func TestTieredBackfills(t *testing.T) {
	fast, err := NewMemoryCache(8)
	if err != nil {
		t.Fatal(err)
	}
	slow, err := OpenDiskCache(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	key := NewKey([32]byte{9}, "fp", "v")
	slow.Put(key, sampleEntry())

	tiers := Tiered{fast, slow}
	if _, ok := tiers.Get(key); !ok {
		t.Fatal("expected hit from disk tier")
	}
	if _, ok := fast.Get(key); !ok {
		t.Error("hit should back-fill the memory tier")
	}
}

func TestCachedRunMatchesColdRun(t *testing.T) {
	_, files := manyFiles(t, 12)
	disk, err := OpenDiskCache(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	mem, err := NewMemoryCache(64)
	if err != nil {
		t.Fatal(err)
	}

	cold := renderAll(t, newLinter(t), files, 4)
	cached := newLinter(t, WithCache(Tiered{mem, disk}))
	first := renderAll(t, cached, files, 4)
	if mem.Len() != len(files) {
		t.Fatalf("memory cache has %d entries, want %d", mem.Len(), len(files))
	}
	second := renderAll(t, cached, files, 4)
	// свежий процесс: только диск
	fromDisk := renderAll(t, newLinter(t, WithCache(disk)), files, 4)

	for name, out := range map[string]string{"first": first, "second": second, "disk": fromDisk} {
		if out != cold {
			t.Errorf("%s cached run differs from cold run:\n%s", name, cmp.Diff(cold, out))
		}
	}
}

func TestCacheHitReportsCached(t *testing.T) {
	mem, err := NewMemoryCache(4)
	if err != nil {
		t.Fatal(err)
	}
	l := newLinter(t, WithCache(mem))
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("a.R", []byte("myVar <- 1\n")))

	_, hit := l.lint("a.R", f)
	if hit {
		t.Fatal("first lint should miss")
	}
	g := fs.Get(fs.AddVirtual("b.R", []byte("myVar <- 1\n")))
	rep, hit := l.lint("b.R", g)
	if !hit {
		t.Fatal("same content should hit")
	}
	if rep.Path != "b.R" {
		t.Errorf("path = %q, want b.R", rep.Path)
	}
	for _, v := range rep.Violations {
		if v.Span.File != g.ID {
			t.Errorf("span not rebased: %v", v.Span)
		}
	}
}
