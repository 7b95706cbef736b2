package mock

import (
	"context"

	"github.com/fwojciec/wikicrawl"
)

var _ wikicrawl.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of wikicrawl.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string) (*wikicrawl.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string) (*wikicrawl.ScrapeResult, error) {
	return s.ScrapeFn(ctx, url)
}

var _ wikicrawl.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of wikicrawl.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.WaitFn(ctx, host)
}
