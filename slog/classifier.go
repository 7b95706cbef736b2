package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// Ensure LoggingClassifier implements wikicrawl.Classifier.
var _ wikicrawl.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with debug logging.
type LoggingClassifier struct {
	next   wikicrawl.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next wikicrawl.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the operation.
func (c *LoggingClassifier) Classify(ctx context.Context, entries []*wikicrawl.CatalogEntry) (relevant []*wikicrawl.CatalogEntry, err error) {
	defer func(begin time.Time) {
		c.logger.Info("classify",
			"input", len(entries),
			"relevant", len(relevant),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Classify(ctx, entries)
}
