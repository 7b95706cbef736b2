package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/crawl"
	"github.com/fwojciec/wikicrawl/fs"
	"github.com/fwojciec/wikicrawl/goquery"
	wcslog "github.com/fwojciec/wikicrawl/slog"
	"github.com/google/uuid"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	site, err := siteOf(c.Seeds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikicrawl.ErrorMessage(err))
		return err
	}

	runID := uuid.New().String()
	logger := deps.Logger
	if logger != nil {
		logger = logger.With("run", runID)
	}

	catalogStore, closeStore, err := c.openCatalog(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: open catalog %s: %v\n", c.Catalog, err)
		return err
	}
	defer closeStore()

	var articles wikicrawl.ArticleStore = fs.NewArticleStore(c.OutputDir)
	if logger != nil {
		catalogStore = wcslog.NewLoggingCatalogStore(catalogStore, logger)
		articles = wcslog.NewLoggingArticleStore(articles, logger)
	}

	catalog := crawl.NewCatalog(catalogStore)
	if err := catalog.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: could not load catalog %s: %s; starting with an empty catalog\n", c.Catalog, describe(err))
	}

	extractor, err := goquery.NewExtractor(site)
	if err != nil {
		return err
	}

	fetcher := newFetcher(logger, c.Timeout.Duration(), c.UserAgent)
	defer fetcher.Close()

	scraper := &crawl.Scraper{
		Fetcher:   fetcher,
		Extractor: extractor,
		Articles:  articles,
		Catalog:   catalog,
		Limiter:   crawl.NewHostLimiter(c.RPS),
	}

	crawler := &crawl.Crawler{
		Catalog:  catalog,
		Scraper:  scraper,
		Workers:  c.Workers,
		MaxDepth: c.MaxDepth,
		Delay:    c.Delay.Duration(),
		RunID:    runID,
	}

	fmt.Fprintf(deps.Stdout, "Crawling %d seed(s), max depth %d, %d catalogued\n", len(c.Seeds), c.MaxDepth, catalog.Len())

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressDepthStarted:
			fmt.Fprintf(deps.Stdout, "  depth %d: %d URLs\n", event.Depth, event.Total)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", DisplayURL(event.URL, 80), describe(event.Error))
		case crawl.ProgressDepthFinished:
			if logger != nil {
				logger.Info("depth finished", "depth", event.Depth, "completed", event.Completed, "total", event.Total)
			}
		}
	}

	result, err := crawler.Crawl(deps.Ctx, c.Seeds, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s: %d levels, %d fetched, %d recorded, %d skipped (%s), ~%d distinct links seen\n",
		result.RunID, result.Depths, result.Fetched, result.Recorded, result.Skipped, FormatBytes(result.Bytes), result.Discovered)
	return nil
}

// openCatalog opens the crawl catalog. A SQLite file that cannot be opened
// is moved aside so the run starts with an empty catalog; the CSV store
// handles unreadable files on load instead.
func (c *CrawlCmd) openCatalog(deps *Dependencies) (wikicrawl.CatalogStore, func() error, error) {
	store, closeStore, err := openCatalogStore(c.Catalog)
	if err == nil || !isSQLite(c.Catalog) {
		return store, closeStore, err
	}
	if _, statErr := os.Stat(c.Catalog); statErr != nil {
		return nil, nil, err
	}

	aside := c.Catalog + ".corrupt"
	if renameErr := os.Rename(c.Catalog, aside); renameErr != nil {
		return nil, nil, err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Rename(c.Catalog+suffix, aside+suffix)
	}
	fmt.Fprintf(deps.Stderr, "warning: could not open catalog %s: %v; moved it to %s and starting with an empty catalog\n",
		c.Catalog, err, aside)

	return openCatalogStore(c.Catalog)
}
