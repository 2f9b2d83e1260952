package driver

import (
	"os"
	"path/filepath"
	"testing"

	"stylint/internal/config"
)

// writeTree creates files under a temp dir and returns its root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newLinter(t *testing.T, opts ...LinterOption) *Linter {
	t.Helper()
	l, err := NewLinter(config.Default(), opts...)
	if err != nil {
		t.Fatalf("NewLinter: %v", err)
	}
	return l
}
