package driver

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"stylint/internal/diag"
)

// cacheSchemaVersion — увеличивать при изменении формата Entry.
const cacheSchemaVersion uint16 = 1

// Key identifies a cached result: content hash, settings fingerprint and
// tool version.
type Key [32]byte

// NewKey derives the cache key for a file.
func NewKey(content [32]byte, fingerprint, toolVersion string) Key {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(toolVersion))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// Entry is the cached part of a report. The path is not stored: identical
// content under another name hits the same entry.
type Entry struct {
	Schema     uint16
	Violations []diag.Violation
}

// Cache stores lint results by key. Implementations are safe for concurrent use.
type Cache interface {
	Get(key Key) (*Entry, bool)
	Put(key Key, e *Entry)
}

// MemoryCache is an in-process LRU, used in front of the disk cache in watch
// mode where the same files are re-linted repeatedly.
type MemoryCache struct {
	lru *lru.Cache[Key, *Entry]
}

// NewMemoryCache returns an LRU holding up to size entries.
func NewMemoryCache(size int) (*MemoryCache, error) {
	c, err := lru.New[Key, *Entry](max(size, 1))
	if err != nil {
		return nil, err
	}
	return &MemoryCache{lru: c}, nil
}

func (c *MemoryCache) Get(key Key) (*Entry, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Put(key Key, e *Entry) {
	c.lru.Add(key, e)
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int { return c.lru.Len() }

// Tiered checks caches in order and back-fills the faster tiers on a hit.
type Tiered []Cache

func (t Tiered) Get(key Key) (*Entry, bool) {
	for i, c := range t {
		if e, ok := c.Get(key); ok {
			for _, faster := range t[:i] {
				faster.Put(key, e)
			}
			return e, true
		}
	}
	return nil, false
}

func (t Tiered) Put(key Key, e *Entry) {
	for _, c := range t {
		c.Put(key, e)
	}
}
