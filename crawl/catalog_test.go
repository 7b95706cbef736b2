package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/crawl"
	"github.com/fwojciec/wikicrawl/csv"
	"github.com/fwojciec/wikicrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a CatalogStore that keeps entries in memory.
func memStore(initial ...*wikicrawl.CatalogEntry) (*mock.CatalogStore, *[]*wikicrawl.CatalogEntry) {
	var mu sync.Mutex
	stored := append([]*wikicrawl.CatalogEntry(nil), initial...)
	s := &mock.CatalogStore{
		LoadEntriesFn: func(_ context.Context) ([]*wikicrawl.CatalogEntry, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]*wikicrawl.CatalogEntry(nil), stored...), nil
		},
		AppendEntryFn: func(_ context.Context, e *wikicrawl.CatalogEntry) error {
			mu.Lock()
			defer mu.Unlock()
			stored = append(stored, e)
			return nil
		},
	}
	return s, &stored
}

var fixedTime = time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)

func TestCatalog_Record(t *testing.T) {
	t.Parallel()

	t.Run("appends entry with next serial and timestamp", func(t *testing.T) {
		t.Parallel()

		store, stored := memStore()
		c := crawl.NewCatalog(store, crawl.WithClock(func() time.Time { return fixedTime }))

		entry, err := c.Record(context.Background(), "Title", "https://site/wiki/Title")

		require.NoError(t, err)
		assert.Equal(t, &wikicrawl.CatalogEntry{
			Serial:    1,
			Title:     "Title",
			URL:       "https://site/wiki/Title",
			Timestamp: "2025-01-08T10:00:00Z",
		}, entry)
		assert.True(t, c.Contains("https://site/wiki/Title"))
		assert.Len(t, *stored, 1)
	})

	t.Run("is a no-op for a recorded url", func(t *testing.T) {
		t.Parallel()

		store, stored := memStore()
		c := crawl.NewCatalog(store)
		ctx := context.Background()

		_, err := c.Record(ctx, "A", "https://site/wiki/A")
		require.NoError(t, err)
		entry, err := c.Record(ctx, "A", "https://site/wiki/A")

		require.NoError(t, err)
		assert.Nil(t, entry)
		assert.Len(t, *stored, 1)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("returns store error and leaves url absent", func(t *testing.T) {
		t.Parallel()

		store := &mock.CatalogStore{
			AppendEntryFn: func(_ context.Context, _ *wikicrawl.CatalogEntry) error {
				return errors.New("disk full")
			},
		}
		c := crawl.NewCatalog(store)

		entry, err := c.Record(context.Background(), "A", "https://site/wiki/A")

		require.Error(t, err)
		assert.Nil(t, entry)
		assert.False(t, c.Contains("https://site/wiki/A"))
		assert.Zero(t, c.Len())
	})

	t.Run("serializes concurrent records of the same url", func(t *testing.T) {
		t.Parallel()

		var appends atomic.Int32
		store := &mock.CatalogStore{
			AppendEntryFn: func(_ context.Context, _ *wikicrawl.CatalogEntry) error {
				appends.Add(1)
				time.Sleep(time.Millisecond)
				return nil
			},
		}
		c := crawl.NewCatalog(store)

		var wg sync.WaitGroup
		var created atomic.Int32
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				entry, err := c.Record(context.Background(), "A", "https://site/wiki/A")
				if err == nil && entry != nil {
					created.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), created.Load())
		assert.Equal(t, int32(1), appends.Load())
	})

	t.Run("assigns unique increasing serials under concurrency", func(t *testing.T) {
		t.Parallel()

		store, stored := memStore()
		c := crawl.NewCatalog(store)

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = c.Record(context.Background(), "T", fmt.Sprintf("https://site/wiki/%d", i))
			}()
		}
		wg.Wait()

		entries := *stored
		require.Len(t, entries, 20)
		assert.Equal(t, 20, c.Len())
		for i, e := range entries {
			assert.Equal(t, i+1, e.Serial)
		}
	})
}

func TestCatalog_Load(t *testing.T) {
	t.Parallel()

	t.Run("continues serials after loaded entries", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(
			&wikicrawl.CatalogEntry{Serial: 1, Title: "A", URL: "https://site/wiki/A"},
			&wikicrawl.CatalogEntry{Serial: 2, Title: "B", URL: "https://site/wiki/B"},
		)
		c := crawl.NewCatalog(store)
		require.NoError(t, c.Load(context.Background()))

		entry, err := c.Record(context.Background(), "C", "https://site/wiki/C")

		require.NoError(t, err)
		assert.Equal(t, 3, entry.Serial)
		assert.True(t, c.Contains("https://site/wiki/A"))
	})

	t.Run("uses highest serial when serials are sparse", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(&wikicrawl.CatalogEntry{Serial: 40, Title: "A", URL: "https://site/wiki/A"})
		c := crawl.NewCatalog(store)
		require.NoError(t, c.Load(context.Background()))

		entry, err := c.Record(context.Background(), "B", "https://site/wiki/B")

		require.NoError(t, err)
		assert.Equal(t, 41, entry.Serial)
	})

	t.Run("ignores duplicate urls in stored data", func(t *testing.T) {
		t.Parallel()

		store, _ := memStore(
			&wikicrawl.CatalogEntry{Serial: 1, URL: "https://site/wiki/A"},
			&wikicrawl.CatalogEntry{Serial: 2, URL: "https://site/wiki/A"},
		)
		c := crawl.NewCatalog(store)

		require.NoError(t, c.Load(context.Background()))

		assert.Equal(t, 1, c.Len())
	})

	t.Run("failure leaves an empty usable catalog", func(t *testing.T) {
		t.Parallel()

		var appended *wikicrawl.CatalogEntry
		store := &mock.CatalogStore{
			LoadEntriesFn: func(_ context.Context) ([]*wikicrawl.CatalogEntry, error) {
				return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "corrupt")
			},
			AppendEntryFn: func(_ context.Context, e *wikicrawl.CatalogEntry) error {
				appended = e
				return nil
			},
		}
		c := crawl.NewCatalog(store)

		err := c.Load(context.Background())

		require.Error(t, err)
		assert.Equal(t, wikicrawl.EINVALID, wikicrawl.ErrorCode(err))
		assert.Zero(t, c.Len())

		_, err = c.Record(context.Background(), "A", "https://site/wiki/A")
		require.NoError(t, err)
		assert.Equal(t, 1, appended.Serial)
	})

	t.Run("round trips through the csv store across restarts", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "links.csv")
		ctx := context.Background()

		first := crawl.NewCatalog(csv.NewCatalogStore(path))
		require.NoError(t, first.Load(ctx))
		_, err := first.Record(ctx, "Title", "https://site/wiki/Title")
		require.NoError(t, err)

		second := crawl.NewCatalog(csv.NewCatalogStore(path))
		require.NoError(t, second.Load(ctx))

		assert.True(t, second.Contains("https://site/wiki/Title"))
		entry, err := second.Record(ctx, "Other", "https://site/wiki/Other")
		require.NoError(t, err)
		assert.Equal(t, 2, entry.Serial)
	})
}
