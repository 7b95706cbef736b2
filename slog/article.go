package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikicrawl"
)

// Ensure LoggingArticleStore implements wikicrawl.ArticleStore.
var _ wikicrawl.ArticleStore = (*LoggingArticleStore)(nil)

// LoggingArticleStore wraps an ArticleStore with debug logging.
type LoggingArticleStore struct {
	next   wikicrawl.ArticleStore
	logger *slog.Logger
}

// NewLoggingArticleStore creates a new LoggingArticleStore.
func NewLoggingArticleStore(next wikicrawl.ArticleStore, logger *slog.Logger) *LoggingArticleStore {
	return &LoggingArticleStore{next: next, logger: logger}
}

// SaveArticle delegates to the wrapped store and logs the operation.
func (s *LoggingArticleStore) SaveArticle(ctx context.Context, article *wikicrawl.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save article",
			"title", article.Title,
			"bytes", len(article.Text),
			"links", len(article.Links),
			"hash", article.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveArticle(ctx, article)
}
