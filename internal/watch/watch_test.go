package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stylint/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newRecorder() *recorder { return &recorder{ch: make(chan struct{}, 16)} }

func (r *recorder) handle(_ context.Context, paths []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, paths)
	r.mu.Unlock()
	r.ch <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for re-lint")
	}
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func start(t *testing.T, roots []string, r *recorder) {
	t.Helper()
	w, err := New(roots, config.Default(), r.handle, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
}

func write(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestWatchRelintsModifiedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.R")
	write(t, target, "x <- 1\n")

	r := newRecorder()
	start(t, []string{dir}, r)

	write(t, target, "myVar <- 1\n")
	r.wait(t)
	calls := r.snapshot()
	require.NotEmpty(t, calls)
	assert.Equal(t, []string{target}, calls[0])
}

func TestWatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.R")
	write(t, target, "x <- 1\n")

	r := newRecorder()
	start(t, []string{dir}, r)

	for i := range 5 {
		write(t, target, "x <- "+string(rune('1'+i))+"\n")
	}
	r.wait(t)
	// ещё немного ждём: второго вызова быть не должно
	time.Sleep(300 * time.Millisecond)
	assert.Len(t, r.snapshot(), 1)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "renv"), 0o755))
	write(t, filepath.Join(dir, "a.R"), "x <- 1\n")

	r := newRecorder()
	start(t, []string{dir}, r)

	write(t, filepath.Join(dir, "notes.txt"), "hi\n")
	write(t, filepath.Join(dir, "renv", "lib.R"), "x <- 1\n")
	write(t, filepath.Join(dir, "a.R"), "y <- 2\n")
	r.wait(t)
	assert.Equal(t, [][]string{{filepath.Join(dir, "a.R")}}, r.snapshot())
}

func TestWatchPicksUpNewDirectories(t *testing.T) {
	dir := t.TempDir()
	r := newRecorder()
	start(t, []string{dir}, r)

	sub := filepath.Join(dir, "analysis")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// даём watcher'у время добавить новую директорию
	time.Sleep(200 * time.Millisecond)
	target := filepath.Join(sub, "model.R")
	write(t, target, "fit <- lm(y ~ x)\n")
	r.wait(t)
	assert.Contains(t, r.snapshot()[0], target)
}

func TestWatchExplicitFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "script")
	write(t, target, "x <- 1\n")
	other := filepath.Join(dir, "other.R")
	write(t, other, "x <- 1\n")

	r := newRecorder()
	start(t, []string{target}, r)

	write(t, other, "y <- 1\n")
	write(t, target, "y <- 1\n")
	r.wait(t)
	assert.Equal(t, [][]string{{target}}, r.snapshot())
}

func TestNewMissingRoot(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope")}, config.Default(), newRecorder().handle)
	require.Error(t, err)
}
