package mock

import (
	"context"

	"github.com/fwojciec/wikicrawl"
)

var _ wikicrawl.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is a mock implementation of wikicrawl.ArticleStore.
type ArticleStore struct {
	SaveArticleFn func(ctx context.Context, article *wikicrawl.Article) error
}

func (s *ArticleStore) SaveArticle(ctx context.Context, article *wikicrawl.Article) error {
	return s.SaveArticleFn(ctx, article)
}
