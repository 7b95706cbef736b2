package crawl

import "github.com/fwojciec/wikicrawl"

// MergeCatalogs concatenates catalogs, keeping the first entry seen for each
// URL, and renumbers serials from 1 in the merged order.
func MergeCatalogs(catalogs ...[]*wikicrawl.CatalogEntry) []*wikicrawl.CatalogEntry {
	seen := make(map[string]struct{})
	var merged []*wikicrawl.CatalogEntry
	for _, entries := range catalogs {
		for _, e := range entries {
			if e.URL == "" {
				continue
			}
			if _, ok := seen[e.URL]; ok {
				continue
			}
			seen[e.URL] = struct{}{}
			merged = append(merged, &wikicrawl.CatalogEntry{
				Serial:    len(merged) + 1,
				Title:     e.Title,
				URL:       e.URL,
				Timestamp: e.Timestamp,
			})
		}
	}
	return merged
}
