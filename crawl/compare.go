package crawl

import "github.com/fwojciec/wikicrawl"

// Comparison summarizes the URL overlap between two catalogs.
type Comparison struct {
	Old    int
	New    int
	Common int
}

// CommonPercent returns Common as a percentage of Old, or 0 when Old is empty.
func (c Comparison) CommonPercent() float64 {
	if c.Old == 0 {
		return 0
	}
	return float64(c.Common) / float64(c.Old) * 100
}

// CompareCatalogs counts distinct URLs in each catalog and the URLs they share.
func CompareCatalogs(old, new []*wikicrawl.CatalogEntry) Comparison {
	oldURLs := urlSet(old)
	newURLs := urlSet(new)

	c := Comparison{Old: len(oldURLs), New: len(newURLs)}
	for u := range oldURLs {
		if _, ok := newURLs[u]; ok {
			c.Common++
		}
	}
	return c
}

func urlSet(entries []*wikicrawl.CatalogEntry) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e.URL] = struct{}{}
	}
	return set
}
