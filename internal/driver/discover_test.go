package driver

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stylint/internal/config"
)

func TestDiscoverWalksAndFilters(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.R":                "x <- 1\n",
		"a.r":                "x <- 1\n",
		"notes.txt":          "hi\n",
		"sub/c.R":            "x <- 1\n",
		"sub/.Rprofile":      "x <- 1\n",
		"renv/library/d.R":   "x <- 1\n",
		".git/hooks/e.R":     "x <- 1\n",
		"packrat/lib/f.R":    "x <- 1\n",
		"sub/deep/packrat.R": "x <- 1\n",
	})

	got, err := Discover([]string{root}, config.Default())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.r"),
		filepath.Join(root, "b.R"),
		filepath.Join(root, "sub", ".Rprofile"),
		filepath.Join(root, "sub", "c.R"),
		filepath.Join(root, "sub", "deep", "packrat.R"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discover mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverKeepsExplicitFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"script": "x <- 1\n", "a.R": "y <- 2\n"})
	script := filepath.Join(root, "script")
	missing := filepath.Join(root, "missing.R")

	got, err := Discover([]string{script, missing, root, script}, config.Default())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{filepath.Join(root, "a.R"), missing, script}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discover mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverEmpty(t *testing.T) {
	root := writeTree(t, map[string]string{"README.md": "# hi\n"})
	_, err := Discover([]string{root}, config.Default())
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("err = %v, want ErrNoInput", err)
	}
	_, err = Discover(nil, config.Default())
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("err = %v, want ErrNoInput", err)
	}
}
