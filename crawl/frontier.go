package crawl

import (
	"sort"
	"strings"
	"sync"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/bloom"
)

// Sizing of the filter counting distinct discovered links.
const (
	frontierExpectedLinks     = 1_000_000
	frontierFalsePositiveRate = 0.001
)

// Frontier holds the URL sets of a level-synchronous breadth-first crawl.
// URLs handed out by Batch are remembered for the rest of the run, so a URL
// that was skipped at one depth is not dispatched again at a later one.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	catalog wikicrawl.Catalog

	mu         sync.Mutex
	dispatched map[string]struct{}
	current    map[string]struct{}
	next       map[string]struct{}
	depth      int

	// Every link pushed during the run, kept only for counting.
	seen *bloom.Filter
}

// NewFrontier creates a Frontier at depth 0 holding the seed URLs.
func NewFrontier(catalog wikicrawl.Catalog, seeds []string) *Frontier {
	f := &Frontier{
		catalog:    catalog,
		dispatched: make(map[string]struct{}),
		current:    make(map[string]struct{}),
		next:       make(map[string]struct{}),
		seen:       bloom.NewFilter(frontierExpectedLinks, frontierFalsePositiveRate),
	}
	for _, s := range seeds {
		f.current[StripFragment(s)] = struct{}{}
	}
	return f
}

// Depth returns the depth of the current level.
func (f *Frontier) Depth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.depth
}

// Batch returns the URLs of the current level that are neither catalogued
// nor already dispatched during this run, in sorted order.
func (f *Frontier) Batch() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var batch []string
	for u := range f.current {
		if f.catalog.Contains(u) {
			continue
		}
		if _, ok := f.dispatched[u]; ok {
			continue
		}
		f.dispatched[u] = struct{}{}
		batch = append(batch, u)
	}
	sort.Strings(batch)
	return batch
}

// Push adds a discovered URL to the next level. Fragments are stripped.
func (f *Frontier) Push(url string) {
	url = StripFragment(url)
	if url == "" {
		return
	}
	f.seen.Add(url)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.next[url] = struct{}{}
}

// Discovered returns the approximate number of distinct links pushed so far,
// including catalogued ones and links beyond the last level.
func (f *Frontier) Discovered() int {
	return int(f.seen.EstimatedCount())
}

// Advance moves to the next level, dropping URLs catalogued in the
// meantime. It reports whether the new level has any candidates.
func (f *Frontier) Advance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	current := make(map[string]struct{}, len(f.next))
	for u := range f.next {
		if !f.catalog.Contains(u) {
			current[u] = struct{}{}
		}
	}
	f.current = current
	f.next = make(map[string]struct{})
	f.depth++
	return len(f.current) > 0
}

// Len returns the number of URLs in the current level.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.current)
}

// StripFragment removes a trailing #fragment from url.
func StripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
