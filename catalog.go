package wikicrawl

import "context"

// CatalogEntry records one successfully processed article URL.
// Entries are created once and never mutated afterwards.
type CatalogEntry struct {
	Serial    int    `json:"serial"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"` // ISO-8601
}

// Validate returns an error if the entry contains invalid fields.
func (e *CatalogEntry) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "catalog entry URL required")
	}
	if e.Serial <= 0 {
		return Errorf(EINVALID, "catalog entry serial must be positive")
	}
	return nil
}

// Catalog is the deduplicated ledger of every URL ever processed.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// Contains reports whether url has been recorded.
	// The answer may be stale while a concurrent Record is in flight.
	Contains(url string) bool

	// Record appends a new entry for url unless it is already present.
	// Returns a nil entry and nil error when url was already recorded.
	// A non-nil error means the durable write failed.
	Record(ctx context.Context, title, url string) (*CatalogEntry, error)
}

// CatalogStore persists catalog entries durably.
// Callers serialize AppendEntry; implementations need not be concurrent-safe.
type CatalogStore interface {
	// LoadEntries returns all persisted entries in insertion order.
	// A store with no prior data returns an empty slice and no error.
	LoadEntries(ctx context.Context) ([]*CatalogEntry, error)

	// AppendEntry durably appends one entry.
	AppendEntry(ctx context.Context, entry *CatalogEntry) error
}
