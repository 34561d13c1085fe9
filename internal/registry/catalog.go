package registry

import (
	"sync"

	"github.com/dshills/engcheck/internal/logger"
	"github.com/dshills/engcheck/internal/schema"
)

// Catalog holds the process-wide registry. It is constructed once at startup
// and passed to consumers. The first call to Standards loads the source;
// Reload replaces the contents only when the new load succeeds, so readers
// always see a complete registry.
type Catalog struct {
	path string

	mu        sync.RWMutex
	loaded    bool
	standards []schema.Standard
	hash      string
}

// NewCatalog returns a Catalog backed by the registry file at path.
// Nothing is read until Standards or Reload is called.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// Path returns the registry source location.
func (c *Catalog) Path() string { return c.path }

// Standards returns the loaded registry, loading it on first use.
// The returned slice is shared and must not be modified.
func (c *Catalog) Standards() ([]schema.Standard, error) {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.standards, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.standards, nil
	}
	if err := c.loadLocked(); err != nil {
		return nil, err
	}
	return c.standards, nil
}

// Reload re-reads the source. On failure the previously loaded registry is
// kept and the error is returned.
func (c *Catalog) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

// Hash returns the "sha256:<hex>" digest of the loaded source, or "" before
// the first successful load.
func (c *Catalog) Hash() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hash
}

func (c *Catalog) loadLocked() error {
	standards, hash, err := load(c.path)
	if err != nil {
		return err
	}
	c.standards = standards
	c.hash = hash
	c.loaded = true
	logger.ForComponent("registry").Debug("registry loaded", "path", c.path, "standards", len(standards), "hash", hash)
	return nil
}
