package wikicrawl

import (
	"context"
	"strings"
)

// Classifier selects the catalog entries relevant to a downstream topic.
type Classifier interface {
	// Classify returns the subset of entries judged relevant,
	// preserving input order.
	Classify(ctx context.Context, entries []*CatalogEntry) ([]*CatalogEntry, error)
}

// Ensure KeywordClassifier implements Classifier at compile time.
var _ Classifier = (*KeywordClassifier)(nil)

// KeywordClassifier keeps entries whose title or URL contains any keyword,
// compared case-insensitively.
type KeywordClassifier struct {
	keywords []string
}

// NewKeywordClassifier creates a KeywordClassifier. Blank keywords are ignored.
func NewKeywordClassifier(keywords []string) *KeywordClassifier {
	c := &KeywordClassifier{}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			c.keywords = append(c.keywords, kw)
		}
	}
	return c
}

// Keywords returns the normalized keywords.
func (c *KeywordClassifier) Keywords() []string {
	return c.keywords
}

// Classify implements Classifier.
func (c *KeywordClassifier) Classify(_ context.Context, entries []*CatalogEntry) ([]*CatalogEntry, error) {
	if len(c.keywords) == 0 {
		return nil, Errorf(EINVALID, "at least one keyword required")
	}
	var relevant []*CatalogEntry
	for _, e := range entries {
		if c.Match(e.Title, e.URL) {
			relevant = append(relevant, e)
		}
	}
	return relevant, nil
}

// Match reports whether title or url contains any keyword.
func (c *KeywordClassifier) Match(title, url string) bool {
	title = strings.ToLower(title)
	url = strings.ToLower(url)
	for _, kw := range c.keywords {
		if strings.Contains(title, kw) || strings.Contains(url, kw) {
			return true
		}
	}
	return false
}
