package wikicrawl

import "context"

// Article is the text artifact produced for one processed page.
// It is consumed by downstream stages and never re-read by the crawler.
type Article struct {
	URL         string
	Title       string
	Text        string
	Links       []string

	// ContentHash is set by the store when the artifact is written.
	ContentHash string
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	return nil
}

// ArticleStore persists article artifacts.
type ArticleStore interface {
	SaveArticle(ctx context.Context, article *Article) error
}
