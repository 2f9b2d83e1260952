// Package watch re-lints files as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"stylint/internal/config"
)

// DefaultDebounce is how long a path must stay quiet before it is re-linted.
const DefaultDebounce = 300 * time.Millisecond

// Handler receives the sorted set of settled paths. It runs on the watcher
// goroutine; an error is logged and watching continues.
type Handler func(ctx context.Context, paths []string) error

// Watcher watches input files and directories with fsnotify. Directories are
// watched recursively, new subdirectories are picked up as they appear.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	settings *config.Settings
	dirs     []string            // корни-директории
	files    map[string]struct{} // явно указанные файлы
	pending  map[string]time.Time
	debounce time.Duration
	logger   *zap.Logger
	onChange Handler
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger; the default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New registers watches for roots. Changes made after New returns are seen by
// Run.
func New(roots []string, s *config.Settings, onChange Handler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		settings: s,
		files:    make(map[string]struct{}),
		pending:  make(map[string]time.Time),
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		onChange: onChange,
	}
	for _, o := range opts {
		o(w)
	}

	for _, root := range roots {
		root = filepath.Clean(root)
		info, err := os.Stat(root)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", root, err)
		}
		if !info.IsDir() {
			w.files[root] = struct{}{}
			// саму директорию: редакторы часто пишут через rename
			err = w.fsw.Add(filepath.Dir(root))
		} else {
			w.dirs = append(w.dirs, root)
			err = w.addTree(root)
		}
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.excluded(root, p) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		w.logger.Debug("watching", zap.String("dir", p))
		return nil
	})
}

// Run processes events until ctx is done, then releases the fsnotify watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("watch close", zap.Error(err))
		}
	}()

	ticker := time.NewTicker(max(w.debounce/3, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if root, ok := w.rootOf(path); ok && !w.excluded(root, path) {
				if err := w.addTree(path); err != nil {
					w.logger.Warn("watch new dir", zap.String("dir", path), zap.Error(err))
				}
			}
			return
		}
	case event.Has(fsnotify.Write), event.Has(fsnotify.Rename):
	default:
		// Remove и Chmod: линтовать нечего
		return
	}
	if !w.relevant(path) {
		return
	}
	w.logger.Debug("change", zap.String("path", path), zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// flush hands settled paths to the handler.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	// rename-from события оставляют пути, которых уже нет
	settled = slices.DeleteFunc(settled, func(p string) bool {
		_, err := os.Stat(p)
		return errors.Is(err, fs.ErrNotExist)
	})
	if len(settled) == 0 {
		return
	}
	slices.Sort(settled)
	if err := w.onChange(ctx, settled); err != nil {
		w.logger.Warn("re-lint failed", zap.Strings("paths", settled), zap.Error(err))
	}
}

func (w *Watcher) relevant(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	root, ok := w.rootOf(path)
	if !ok {
		return false
	}
	return w.settings.Included(path) && !w.excluded(root, path)
}

func (w *Watcher) rootOf(path string) (string, bool) {
	for _, root := range w.dirs {
		if rel, err := filepath.Rel(root, path); err == nil && rel != ".." && !startsWithDotDot(rel) {
			return root, true
		}
	}
	return "", false
}

func (w *Watcher) excluded(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return w.settings.Excluded(rel)
}

func startsWithDotDot(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
