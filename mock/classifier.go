package mock

import (
	"context"

	"github.com/fwojciec/wikicrawl"
)

var _ wikicrawl.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of wikicrawl.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, entries []*wikicrawl.CatalogEntry) ([]*wikicrawl.CatalogEntry, error)
}

func (c *Classifier) Classify(ctx context.Context, entries []*wikicrawl.CatalogEntry) ([]*wikicrawl.CatalogEntry, error) {
	return c.ClassifyFn(ctx, entries)
}
