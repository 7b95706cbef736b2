package sqlite

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/wikicrawl"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ wikicrawl.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements wikicrawl.CatalogStore using SQLite.
// Entries load in insertion order.
type CatalogStore struct {
	db *DB
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// LoadEntries returns every catalog entry in insertion order.
func (s *CatalogStore) LoadEntries(ctx context.Context) ([]*wikicrawl.CatalogEntry, error) {
	return s.FindEntries(ctx, EntryFilter{})
}

// EntryFilter narrows FindEntries. The zero value matches everything.
type EntryFilter struct {
	// Keywords keeps entries whose title or url contains any of them.
	// Matching ignores ASCII case; blank keywords are ignored.
	Keywords []string
}

// FindEntries retrieves entries matching the filter in insertion order.
func (s *CatalogStore) FindEntries(ctx context.Context, filter EntryFilter) ([]*wikicrawl.CatalogEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT serial, title, url, timestamp FROM catalog")

	var terms []string
	for _, kw := range filter.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		terms = append(terms, `(title LIKE ? ESCAPE '\' OR url LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(kw) + "%"
		args = append(args, pattern, pattern)
	}
	if len(terms) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(terms, " OR "))
	}

	query.WriteString(" ORDER BY rowid")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*wikicrawl.CatalogEntry
	for rows.Next() {
		var e wikicrawl.CatalogEntry
		if err := rows.Scan(&e.Serial, &e.Title, &e.URL, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// AppendEntry inserts one entry. A URL that is already stored is a conflict.
func (s *CatalogStore) AppendEntry(ctx context.Context, entry *wikicrawl.CatalogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog (serial, title, url, timestamp)
		VALUES (?, ?, ?, ?)
	`, entry.Serial, entry.Title, entry.URL, entry.Timestamp)
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return wikicrawl.Errorf(wikicrawl.ECONFLICT, "url already catalogued: %s", entry.URL)
	}
	return err
}

// CountEntries returns the number of stored entries.
func (s *CatalogStore) CountEntries(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog").Scan(&n)
	return n, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
