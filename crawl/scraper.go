package crawl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/wikicrawl"
)

// Compile-time interface verification.
var _ wikicrawl.Scraper = (*Scraper)(nil)

// Scraper fetches one article, extracts it, writes its artifact and
// records it in the catalog.
type Scraper struct {
	Fetcher   wikicrawl.Fetcher
	Extractor wikicrawl.Extractor
	Articles  wikicrawl.ArticleStore
	Catalog   wikicrawl.Catalog

	// Limiter is optional; nil means requests are not rate limited.
	Limiter wikicrawl.HostLimiter
}

// Scrape processes rawURL. Fetch, extraction and artifact failures are
// reported as skips in the result. Only a failed catalog write is returned
// as an error.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*wikicrawl.ScrapeResult, error) {
	result := &wikicrawl.ScrapeResult{URL: rawURL}

	if s.Catalog.Contains(rawURL) {
		return result, nil
	}

	if s.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			result.Err = wikicrawl.Errorf(wikicrawl.EFETCH, "invalid URL %q: %v", rawURL, err)
			return result, nil
		}
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			result.Err = wikicrawl.Errorf(wikicrawl.EFETCH, "rate limit wait for %s: %v", rawURL, err)
			return result, nil
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		result.Err = err
		return result, nil
	}

	extracted, err := s.Extractor.Extract(html)
	if err != nil {
		result.Err = err
		return result, nil
	}

	article := &wikicrawl.Article{
		URL:   rawURL,
		Title: extracted.Title,
		Text:  extracted.Text,
		Links: extracted.Links,
	}
	if err := s.Articles.SaveArticle(ctx, article); err != nil {
		result.Err = fmt.Errorf("save article %q: %w", extracted.Title, err)
		return result, nil
	}

	entry, err := s.Catalog.Record(ctx, extracted.Title, rawURL)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rawURL, err)
	}

	result.Title = extracted.Title
	result.Links = extracted.Links
	result.Bytes = len(extracted.Text)
	result.Entry = entry
	return result, nil
}
