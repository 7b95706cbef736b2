// Package crawl drives a depth-limited, level-synchronous breadth-first
// crawl of encyclopedia articles against a persistent catalog.
package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/wikicrawl"
	"github.com/google/uuid"
)

// Defaults for Crawler fields.
const (
	DefaultMaxDepth = 2
	DefaultDelay    = time.Second
)

// Crawler orchestrates the crawl: for each depth it dispatches the
// uncatalogued URLs to a bounded pool, waits for the whole batch and then
// builds the next level from the discovered links.
type Crawler struct {
	Catalog wikicrawl.Catalog
	Scraper wikicrawl.Scraper

	// Workers bounds concurrent scrapes per batch. Zero means DefaultPoolSize.
	Workers int

	// MaxDepth is the deepest level processed; seeds are depth 0.
	MaxDepth int

	// Delay is the pause between consecutive depths.
	Delay time.Duration

	// RunID identifies the run. Generated when empty.
	RunID string
}

// Result holds the outcome of a crawl.
type Result struct {
	RunID    string
	Depths   int
	Fetched  int
	Recorded int
	Skipped  int
	Bytes    int

	// Discovered approximates the distinct article links found.
	Discovered int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Depth     int
	Completed int
	Total     int
	URL       string
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressDepthStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressDepthFinished
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
// Calls are never concurrent.
type ProgressFunc func(event ProgressEvent)

// Crawl runs the crawl from seeds until MaxDepth is processed or a level
// has nothing new. Per-URL failures are counted as skips; a returned error
// means the catalog could not be written and the run was aborted.
func (c *Crawler) Crawl(ctx context.Context, seeds []string, progress ProgressFunc) (*Result, error) {
	if len(seeds) == 0 {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "at least one seed URL required")
	}
	if c.MaxDepth < 0 {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "max depth must be >= 0, got %d", c.MaxDepth)
	}

	runID := c.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	result := &Result{RunID: runID}

	emit := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	frontier := NewFrontier(c.Catalog, seeds)
	pool := &Pool{Scraper: c.Scraper, Size: c.Workers}

	for {
		depth := frontier.Depth()
		batch := frontier.Batch()
		if len(batch) == 0 {
			break
		}

		emit(ProgressEvent{Type: ProgressDepthStarted, Depth: depth, Total: len(batch)})

		results, err := pool.Run(ctx, batch, func(e ProgressEvent) {
			e.Depth = depth
			emit(e)
		})
		if err != nil {
			return result, err
		}

		result.Depths++
		result.Fetched += len(batch)
		for _, r := range results {
			if r.Skipped() {
				result.Skipped++
				continue
			}
			if r.Entry != nil {
				result.Recorded++
				result.Bytes += r.Bytes
			}
			for _, link := range r.Links {
				frontier.Push(link)
			}
		}

		emit(ProgressEvent{Type: ProgressDepthFinished, Depth: depth, Completed: len(results), Total: len(batch)})

		if depth >= c.MaxDepth || !frontier.Advance() {
			break
		}
		if err := sleep(ctx, c.Delay); err != nil {
			return result, err
		}
	}

	result.Discovered = frontier.Discovered()
	emit(ProgressEvent{Type: ProgressFinished, Completed: result.Recorded, Total: result.Fetched})
	return result, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
