// Package csv stores the crawl catalog as a comma-separated file.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/wikicrawl"
)

// Header is the first row of every catalog file.
var Header = []string{"Serial no", "title", "url", "timestamp"}

// Ensure CatalogStore implements wikicrawl.CatalogStore at compile time.
var _ wikicrawl.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an append-only CSV catalog file.
type CatalogStore struct {
	path string
}

// NewCatalogStore creates a CatalogStore backed by the file at path.
// The file is created on first append.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Path returns the catalog file path.
func (s *CatalogStore) Path() string {
	return s.path
}

// LoadEntries reads every row of the catalog file. A missing or empty file
// yields no entries. Columns are located by header name; rows without a
// url are skipped.
func (s *CatalogStore) LoadEntries(_ context.Context) ([]*wikicrawl.CatalogEntry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadEntries(f)
}

// ReadEntries parses catalog rows from r.
func ReadEntries(r io.Reader) ([]*wikicrawl.CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "reading catalog header: %v", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	urlCol, ok := cols["url"]
	if !ok {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "catalog header has no url column")
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var entries []*wikicrawl.CatalogEntry
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "reading catalog row: %v", err)
		}
		if urlCol >= len(row) || row[urlCol] == "" {
			continue
		}
		serial, _ := strconv.Atoi(strings.TrimSpace(field(row, "serial no")))
		entries = append(entries, &wikicrawl.CatalogEntry{
			Serial:    serial,
			Title:     field(row, "title"),
			URL:       row[urlCol],
			Timestamp: field(row, "timestamp"),
		})
	}
	return entries, nil
}

// AppendEntry appends one row, writing the header first when the file is
// new or empty. The file is synced before returning.
func (s *CatalogStore) AppendEntry(_ context.Context, entry *wikicrawl.CatalogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat catalog: %w", err)
	}

	if err := writeRecords(f, info.Size() == 0, []*wikicrawl.CatalogEntry{entry}); err != nil {
		f.Close()
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync catalog: %w", err)
	}
	return f.Close()
}

// WriteCatalog writes a complete catalog file, replacing any existing one.
func WriteCatalog(path string, entries []*wikicrawl.CatalogEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteEntries(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteEntries writes the header and one row per entry to w.
func WriteEntries(w io.Writer, entries []*wikicrawl.CatalogEntry) error {
	return writeRecords(w, true, entries)
}

func writeRecords(w io.Writer, header bool, entries []*wikicrawl.CatalogEntry) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(Header); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := cw.Write(record(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(e *wikicrawl.CatalogEntry) []string {
	return []string{strconv.Itoa(e.Serial), e.Title, e.URL, e.Timestamp}
}
