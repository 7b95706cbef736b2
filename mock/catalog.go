package mock

import (
	"context"

	"github.com/fwojciec/wikicrawl"
)

var _ wikicrawl.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of wikicrawl.Catalog.
type Catalog struct {
	ContainsFn func(url string) bool
	RecordFn   func(ctx context.Context, title, url string) (*wikicrawl.CatalogEntry, error)
}

func (c *Catalog) Contains(url string) bool {
	return c.ContainsFn(url)
}

func (c *Catalog) Record(ctx context.Context, title, url string) (*wikicrawl.CatalogEntry, error) {
	return c.RecordFn(ctx, title, url)
}

var _ wikicrawl.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is a mock implementation of wikicrawl.CatalogStore.
type CatalogStore struct {
	LoadEntriesFn func(ctx context.Context) ([]*wikicrawl.CatalogEntry, error)
	AppendEntryFn func(ctx context.Context, entry *wikicrawl.CatalogEntry) error
}

func (s *CatalogStore) LoadEntries(ctx context.Context) ([]*wikicrawl.CatalogEntry, error) {
	return s.LoadEntriesFn(ctx)
}

func (s *CatalogStore) AppendEntry(ctx context.Context, entry *wikicrawl.CatalogEntry) error {
	return s.AppendEntryFn(ctx, entry)
}
