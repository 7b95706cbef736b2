package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/mock"
	wcslog "github.com/fwojciec/wikicrawl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := wcslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://en.wikipedia.org/wiki/A")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://en.wikipedia.org/wiki/A")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("network error")
			},
		}

		_, err := wcslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://en.wikipedia.org/wiki/A")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})

	t.Run("delegates close", func(t *testing.T) {
		t.Parallel()

		logger, _ := newLogger()
		closed := false
		inner := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

		require.NoError(t, wcslog.NewLoggingFetcher(inner, logger).Close())
		assert.True(t, closed)
	})
}

func TestLoggingCatalogStore(t *testing.T) {
	t.Parallel()

	t.Run("logs load with count", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.CatalogStore{
			LoadEntriesFn: func(_ context.Context) ([]*wikicrawl.CatalogEntry, error) {
				return []*wikicrawl.CatalogEntry{{Serial: 1, URL: "a"}, {Serial: 2, URL: "b"}}, nil
			},
		}

		entries, err := wcslog.NewLoggingCatalogStore(inner, logger).LoadEntries(context.Background())

		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Contains(t, buf.String(), "msg=\"load catalog\"")
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("logs append with serial and url", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.CatalogStore{
			AppendEntryFn: func(_ context.Context, _ *wikicrawl.CatalogEntry) error {
				return errors.New("disk full")
			},
		}

		err := wcslog.NewLoggingCatalogStore(inner, logger).AppendEntry(context.Background(),
			&wikicrawl.CatalogEntry{Serial: 3, URL: "https://en.wikipedia.org/wiki/A"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "serial=3")
		assert.Contains(t, output, "url=https://en.wikipedia.org/wiki/A")
		assert.Contains(t, output, "err=\"disk full\"")
	})
}

func TestLoggingArticleStore_SaveArticle(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	var saved *wikicrawl.Article
	inner := &mock.ArticleStore{
		SaveArticleFn: func(_ context.Context, a *wikicrawl.Article) error {
			saved = a
			return nil
		},
	}

	article := &wikicrawl.Article{Title: "Vedas", URL: "u", Text: "text", Links: []string{"x", "y"}}
	err := wcslog.NewLoggingArticleStore(inner, logger).SaveArticle(context.Background(), article)

	require.NoError(t, err)
	assert.Same(t, article, saved)
	output := buf.String()
	assert.Contains(t, output, "title=Vedas")
	assert.Contains(t, output, "bytes=4")
	assert.Contains(t, output, "links=2")
}

func TestLoggingClassifier_Classify(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.Classifier{
		ClassifyFn: func(_ context.Context, entries []*wikicrawl.CatalogEntry) ([]*wikicrawl.CatalogEntry, error) {
			return entries[:1], nil
		},
	}

	relevant, err := wcslog.NewLoggingClassifier(inner, logger).Classify(context.Background(),
		[]*wikicrawl.CatalogEntry{{URL: "a"}, {URL: "b"}, {URL: "c"}})

	require.NoError(t, err)
	assert.Len(t, relevant, 1)
	assert.Contains(t, buf.String(), "input=3")
	assert.Contains(t, buf.String(), "relevant=1")
}
