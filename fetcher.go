package wikicrawl

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single GET and returns the response body.
	// Transport errors and non-2xx statuses are reported as EFETCH.
	// The context controls cancellation; implementations apply their own
	// per-request timeout.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
