package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/wikicrawl"
	"golang.org/x/sync/errgroup"
)

// DefaultPoolSize is the number of concurrent scrapes when Pool.Size is unset.
const DefaultPoolSize = 16

// Pool applies a Scraper to a batch of URLs with bounded concurrency.
type Pool struct {
	Scraper wikicrawl.Scraper
	Size    int
}

// RunBatch scrapes every URL and returns the links discovered per URL.
// Skipped URLs map to no links.
func (p *Pool) RunBatch(ctx context.Context, urls []string, progress ProgressFunc) (map[string][]string, error) {
	results, err := p.Run(ctx, urls, progress)
	if err != nil {
		return nil, err
	}
	links := make(map[string][]string, len(results))
	for _, r := range results {
		links[r.URL] = r.Links
	}
	return links, nil
}

// Run scrapes every URL and blocks until all complete. One URL's skip never
// affects the others; a fatal scrape error cancels the remaining work and
// is returned.
func (p *Pool) Run(ctx context.Context, urls []string, progress ProgressFunc) ([]*wikicrawl.ScrapeResult, error) {
	size := p.Size
	if size <= 0 {
		size = DefaultPoolSize
	}

	var (
		mu        sync.Mutex
		results   = make([]*wikicrawl.ScrapeResult, 0, len(urls))
		completed int
	)
	total := len(urls)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(size)

	for _, u := range urls {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := p.Scraper.Scrape(gctx, u)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			results = append(results, r)
			completed++
			if progress != nil {
				event := ProgressEvent{
					Type:      ProgressCompleted,
					Completed: completed,
					Total:     total,
					URL:       r.URL,
					Title:     r.Title,
				}
				if r.Skipped() {
					event.Type = ProgressSkipped
					event.Error = r.Err
				}
				progress(event)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
