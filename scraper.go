package wikicrawl

import "context"

// ScrapeResult is the outcome of processing a single URL.
type ScrapeResult struct {
	URL   string
	Title string

	// Links discovered on the page. Empty when the URL was skipped.
	Links []string

	// Bytes is the length of the stored article text.
	Bytes int

	// Entry is the catalog entry created for this URL. Nil when the URL was
	// skipped or another worker recorded it first.
	Entry *CatalogEntry

	// Err is the reason the URL was skipped (EFETCH, EEXTRACT, ...).
	// Skipped URLs are not catalogued and stay eligible for the next run.
	Err error
}

// Skipped reports whether the URL produced no artifact.
func (r *ScrapeResult) Skipped() bool {
	return r.Err != nil
}

// Scraper fetches, extracts, stores and catalogues one article.
type Scraper interface {
	// Scrape never returns an error for per-URL failures; those are
	// reported through ScrapeResult.Err. A non-nil error is fatal for the
	// whole run.
	Scrape(ctx context.Context, url string) (*ScrapeResult, error)
}

// HostLimiter spaces out requests to the same host.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
