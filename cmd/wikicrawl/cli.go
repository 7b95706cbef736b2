package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/csv"
	wchttp "github.com/fwojciec/wikicrawl/http"
	wcslog "github.com/fwojciec/wikicrawl/slog"
	"github.com/fwojciec/wikicrawl/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// Logger is set when --debug is given; services are then wrapped with
	// logging decorators.
	Logger *slog.Logger

	Classifier wikicrawl.Classifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug  bool            `help:"Log every fetch, save and catalog write to stderr" env:"WIKICRAWL_DEBUG"`
	Config kong.ConfigFlag `help:"Load flag values from a YAML file"`

	Crawl   CrawlCmd   `cmd:"" default:"withargs" help:"Crawl articles breadth-first from seed URLs (default command)"`
	Merge   MergeCmd   `cmd:"" help:"Combine catalogs, dropping duplicate URLs and renumbering"`
	Compare CompareCmd `cmd:"" help:"Report URL overlap between two catalogs"`
	Filter  FilterCmd  `cmd:"" help:"Keep catalog entries relevant to keywords or a topic"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds     []string `arg:"" name:"seed" help:"Seed article URLs, all on one site"`
	MaxDepth  int      `name:"max-depth" short:"d" default:"2" env:"WIKICRAWL_MAX_DEPTH" help:"Deepest level to crawl; seeds are depth 0"`
	Workers   int      `short:"w" default:"16" env:"WIKICRAWL_WORKERS" help:"Concurrent fetches per level"`
	Delay     Seconds  `default:"1" env:"WIKICRAWL_DELAY" help:"Pause between levels, in seconds or as a duration (1.5, 500ms)"`
	Timeout   Seconds  `default:"10" env:"WIKICRAWL_TIMEOUT" help:"Per-request timeout, in seconds or as a duration"`
	OutputDir string   `name:"output-dir" short:"o" default:"." env:"WIKICRAWL_OUTPUT_DIR" help:"Directory for article text files"`
	Catalog   string   `short:"c" default:"links.csv" env:"WIKICRAWL_CATALOG" help:"Catalog file (.csv, or .db/.sqlite for SQLite)"`
	RPS       float64  `name:"rps" default:"0" env:"WIKICRAWL_RPS" help:"Per-host requests per second within a level (0 = unlimited)"`
	UserAgent string   `name:"user-agent" env:"WIKICRAWL_USER_AGENT" help:"User-Agent header (default: a desktop browser)"`
}

// Seconds is a duration flag that also takes a bare number of seconds, so
// "2", "1.5" and "2s" are all accepted.
type Seconds time.Duration

// Decode implements kong.MapperValue.
func (s *Seconds) Decode(ctx *kong.DecodeContext) error {
	t, err := ctx.Scan.PopValue("duration")
	if err != nil {
		return err
	}
	d, err := parseSeconds(fmt.Sprint(t.Value))
	if err != nil {
		return err
	}
	*s = Seconds(d)
	return nil
}

// Duration returns s as a time.Duration.
func (s Seconds) Duration() time.Duration {
	return time.Duration(s)
}

func parseSeconds(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(f * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("expected seconds or a duration such as 1s, got %q", raw)
	}
	return d, nil
}

// MergeCmd is the "merge" subcommand.
type MergeCmd struct {
	Output      string   `short:"o" required:"" help:"Merged catalog file to write"`
	ArticlesDir []string `name:"articles-dir" short:"a" help:"Article directories to combine, in priority order (repeatable)"`
	ArticlesOut string   `name:"articles-out" help:"Directory receiving the combined articles"`
	Inputs      []string `arg:"" name:"catalog" help:"Catalogs to merge, in priority order"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Old string `arg:"" help:"Earlier catalog"`
	New string `arg:"" help:"Later catalog"`
}

// FilterCmd is the "filter" subcommand.
type FilterCmd struct {
	Catalog   string   `arg:"" help:"Catalog to filter"`
	Output    string   `short:"o" required:"" help:"Filtered catalog file to write"`
	Keywords  []string `name:"keyword" short:"k" help:"Keep entries whose title or URL contains this keyword (repeatable)"`
	LLM       bool     `name:"llm" help:"Ask Gemini which entries are relevant to --topic (needs GEMINI_API_KEY)"`
	Topic     string   `env:"WIKICRAWL_TOPIC" help:"Topic for --llm"`
	Model     string   `default:"gemini-2.5-flash" env:"WIKICRAWL_MODEL" help:"Gemini model for --llm"`
	BatchSize int      `name:"batch-size" default:"500" help:"Entries per Gemini request"`

	ArticlesDir string `name:"articles-dir" help:"Directory holding the catalog's article files"`
	CopyTo      string `name:"copy-to" help:"Copy the kept entries' article files into this directory"`
}

// Validate checks crawl options after parsing.
func (c *CrawlCmd) Validate() error {
	if c.MaxDepth < 0 {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--max-depth must be >= 0")
	}
	if c.Workers < 1 {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--workers must be >= 1")
	}
	if c.Delay < 0 {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--delay must be >= 0")
	}
	if c.Timeout <= 0 {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--timeout must be > 0")
	}
	if c.RPS < 0 {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--rps must be >= 0")
	}
	_, err := siteOf(c.Seeds)
	return err
}

// Validate checks merge options after parsing.
func (c *MergeCmd) Validate() error {
	if len(c.ArticlesDir) > 0 && c.ArticlesOut == "" {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--articles-dir requires --articles-out")
	}
	if c.ArticlesOut != "" && len(c.ArticlesDir) == 0 {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--articles-out requires --articles-dir")
	}
	return nil
}

// Validate checks filter options after parsing.
func (c *FilterCmd) Validate() error {
	if len(c.Keywords) == 0 && !c.LLM {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "give at least one --keyword or --llm")
	}
	if c.LLM && strings.TrimSpace(c.Topic) == "" {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--llm requires --topic")
	}
	if (c.ArticlesDir == "") != (c.CopyTo == "") {
		return wikicrawl.Errorf(wikicrawl.EINVALID, "--articles-dir and --copy-to go together")
	}
	return nil
}

// siteOf returns scheme://host shared by all seeds.
func siteOf(seeds []string) (string, error) {
	if len(seeds) == 0 {
		return "", wikicrawl.Errorf(wikicrawl.EINVALID, "at least one seed URL required")
	}
	var site string
	for _, s := range seeds {
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", wikicrawl.Errorf(wikicrawl.EINVALID, "seed %q must be an absolute http(s) URL", s)
		}
		origin := u.Scheme + "://" + u.Host
		if site == "" {
			site = origin
		} else if origin != site {
			return "", wikicrawl.Errorf(wikicrawl.EINVALID, "seeds must share one site: %s and %s", site, origin)
		}
	}
	return site, nil
}

// isSQLite reports whether path names a SQLite catalog.
func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// openCatalogStore opens the catalog backend for path, chosen by extension.
// The returned close function releases the backend.
func openCatalogStore(path string) (wikicrawl.CatalogStore, func() error, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
	}
	if !isSQLite(path) {
		return csv.NewCatalogStore(path), func() error { return nil }, nil
	}
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, nil, err
	}
	return sqlite.NewCatalogStore(db), db.Close, nil
}

// loadCatalogFile reads all entries of an existing catalog file.
func loadCatalogFile(ctx context.Context, path string) ([]*wikicrawl.CatalogEntry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, wikicrawl.Errorf(wikicrawl.ENOTFOUND, "catalog %s not found", path)
	}
	store, closeFn, err := openCatalogStore(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return store.LoadEntries(ctx)
}

// newFetcher builds the HTTP fetcher, wrapped for logging when enabled.
func newFetcher(logger *slog.Logger, timeout time.Duration, userAgent string) wikicrawl.Fetcher {
	opts := []wchttp.Option{wchttp.WithTimeout(timeout)}
	if userAgent != "" {
		opts = append(opts, wchttp.WithUserAgent(userAgent))
	}
	var f wikicrawl.Fetcher = wchttp.NewFetcher(opts...)
	if logger != nil {
		f = wcslog.NewLoggingFetcher(f, logger)
	}
	return f
}

// describe renders an error for a user-facing line.
func describe(err error) string {
	if wikicrawl.ErrorCode(err) == wikicrawl.EINTERNAL {
		return err.Error()
	}
	return wikicrawl.ErrorMessage(err)
}
