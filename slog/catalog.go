package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// Ensure LoggingCatalogStore implements wikicrawl.CatalogStore.
var _ wikicrawl.CatalogStore = (*LoggingCatalogStore)(nil)

// LoggingCatalogStore wraps a CatalogStore with debug logging.
type LoggingCatalogStore struct {
	next   wikicrawl.CatalogStore
	logger *slog.Logger
}

// NewLoggingCatalogStore creates a new LoggingCatalogStore.
func NewLoggingCatalogStore(next wikicrawl.CatalogStore, logger *slog.Logger) *LoggingCatalogStore {
	return &LoggingCatalogStore{next: next, logger: logger}
}

// LoadEntries delegates to the wrapped store and logs the operation.
func (s *LoggingCatalogStore) LoadEntries(ctx context.Context) (entries []*wikicrawl.CatalogEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load catalog",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadEntries(ctx)
}

// AppendEntry delegates to the wrapped store and logs the operation.
func (s *LoggingCatalogStore) AppendEntry(ctx context.Context, entry *wikicrawl.CatalogEntry) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("append catalog entry",
			"serial", entry.Serial,
			"url", entry.URL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AppendEntry(ctx, entry)
}
