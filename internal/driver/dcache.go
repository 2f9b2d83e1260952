package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// DiskCache хранит результаты линтинга по Key на диске (msgpack).
// Thread-safe for concurrent access. Ошибки чтения/записи не фатальны:
// кэш просто промахивается, причина уходит в лог.
type DiskCache struct {
	mu     sync.RWMutex
	dir    string
	logger *zap.Logger
}

// DefaultCacheDir returns $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache initializes a disk cache rooted at dir.
func OpenDiskCache(dir string, logger *zap.Logger) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiskCache{dir: dir, logger: logger}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Key) string {
	hexKey := key.String()
	// подкаталог по первому байту, чтобы не складывать всё в одну директорию
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an entry; the file appears atomically.
func (c *DiskCache) Put(key Key, e *Entry) {
	if c == nil || e == nil {
		return
	}
	if err := c.put(key, e); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key.String()), zap.Error(err))
	}
}

func (c *DiskCache) put(key Key, e *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			c.logger.Debug("temp file cleanup", zap.String("path", tmp), zap.Error(rmErr))
		}
	}()

	payload := *e
	payload.Schema = cacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads an entry. Stale schemas and undecodable files are misses.
func (c *DiskCache) Get(key Key) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("cache read failed", zap.String("key", key.String()), zap.Error(err))
		}
		return nil, false
	}
	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", key.String()), zap.Error(err))
		return nil, false
	}
	if e.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &e, true
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}
