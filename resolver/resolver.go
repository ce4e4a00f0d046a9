// Package resolver turns stored image paths into short-lived URLs a client can display.
package resolver

import (
	"context"
	"maps"
	"sync"

	"github.com/raushankrgupta/glow-studio/utils"
	"github.com/rs/zerolog"
)

// Signer issues a temporary URL for a private object path
type Signer interface {
	GetPresignedURL(ctx context.Context, path string) (string, error)
}

// Ref pairs a look or product id with the stored path of its image
type Ref struct {
	ID   string
	Path string
}

// Cache maps ids to displayable URLs. Entries are never evicted or refreshed; an id
// is only resolved the first time it is seen.
type Cache struct {
	signer Signer
	log    zerolog.Logger

	mu      sync.Mutex
	entries map[string]string
}

func NewCache(signer Signer, log zerolog.Logger) *Cache {
	return &Cache{
		signer:  signer,
		log:     log,
		entries: make(map[string]string),
	}
}

// Resolve fills the cache for every ref whose id is not cached yet. Refs with an empty path are
// skipped, embeddable refs are stored verbatim, and the rest are signed one at a time. A signing
// failure leaves that id unresolved. It returns a copy of the cache and whether anything was added.
func (c *Cache) Resolve(ctx context.Context, refs []Ref) (map[string]string, bool) {
	updated := false
	for _, ref := range refs {
		if ref.ID == "" || ref.Path == "" || c.has(ref.ID) {
			continue
		}

		if utils.IsEmbeddable(ref.Path) {
			updated = c.store(ref.ID, ref.Path) || updated
			continue
		}

		if c.signer == nil {
			continue
		}
		url, err := c.signer.GetPresignedURL(ctx, ref.Path)
		if err != nil || url == "" {
			c.log.Warn().Err(err).Str("id", ref.ID).Str("path", ref.Path).Msg("failed to sign image path")
			continue
		}
		updated = c.store(ref.ID, url) || updated
	}
	return c.Snapshot(), updated
}

// Put records a URL obtained elsewhere, such as the one returned by an upload
func (c *Cache) Put(id, url string) {
	if id == "" || url == "" {
		return
	}
	c.store(id, url)
}

// Get returns the cached URL for id
func (c *Cache) Get(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	url, ok := c.entries[id]
	return url, ok
}

// Snapshot returns a copy of the cache
func (c *Cache) Snapshot() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.entries)
}

func (c *Cache) has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// store keeps an existing entry intact and reports whether id was new
func (c *Cache) store(id, url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; ok {
		return false
	}
	c.entries[id] = url
	return true
}
