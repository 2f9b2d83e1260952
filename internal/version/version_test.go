package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func plain(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestVersion_DefaultIsPlain(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
	for _, r := range Version {
		if r == '\x1b' {
			t.Fatalf("Version must not contain escape codes: %q", Version)
		}
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	plain(t)
	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		withVersion(t, tt.version, "", "")
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	plain(t)
	tests := []struct {
		commit, date string
		want         string
	}{
		{"", "", "stylint 1.0.0"},
		{"abc123", "", "stylint 1.0.0 (abc123)"},
		{"abc123", "2024-01-15", "stylint 1.0.0 (abc123) built 2024-01-15"},
	}
	for _, tt := range tests {
		withVersion(t, "1.0.0", tt.commit, tt.date)
		if got := String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
