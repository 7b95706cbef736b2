package crawl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// Compile-time interface verification.
var _ wikicrawl.Catalog = (*Catalog)(nil)

// Catalog is the in-memory index over a durable CatalogStore.
// It is safe for concurrent use by multiple goroutines.
type Catalog struct {
	store wikicrawl.CatalogStore
	now   func() time.Time

	mu    sync.RWMutex
	index map[string]*wikicrawl.CatalogEntry
	next  int
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithClock sets the clock used to timestamp new entries.
func WithClock(now func() time.Time) CatalogOption {
	return func(c *Catalog) {
		c.now = now
	}
}

// NewCatalog creates an empty Catalog backed by store.
// Call Load to read previously persisted entries.
func NewCatalog(store wikicrawl.CatalogStore, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		store: store,
		now:   time.Now,
		index: make(map[string]*wikicrawl.CatalogEntry),
		next:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the in-memory state with the entries held by the store.
// On failure the catalog is left empty and the error is returned, so the
// caller may continue with a fresh catalog.
func (c *Catalog) Load(ctx context.Context) error {
	entries, err := c.store.LoadEntries(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[string]*wikicrawl.CatalogEntry)
	c.next = 1
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	maxSerial := 0
	for _, e := range entries {
		if _, ok := c.index[e.URL]; ok {
			continue
		}
		c.index[e.URL] = e
		maxSerial = max(maxSerial, e.Serial)
	}
	c.next = max(len(c.index), maxSerial) + 1
	return nil
}

// Contains reports whether url has been recorded.
func (c *Catalog) Contains(url string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[url]
	return ok
}

// Record appends an entry for url unless one exists. The membership check,
// the durable append and the index update happen under one lock.
func (c *Catalog) Record(ctx context.Context, title, url string) (*wikicrawl.CatalogEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.index[url]; ok {
		return nil, nil
	}

	entry := &wikicrawl.CatalogEntry{
		Serial:    c.next,
		Title:     title,
		URL:       url,
		Timestamp: c.now().UTC().Format(time.RFC3339),
	}
	if err := c.store.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("append catalog entry: %w", err)
	}

	c.index[url] = entry
	c.next++
	return entry, nil
}

// Len returns the number of recorded entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.index)
}
