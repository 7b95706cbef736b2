package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/csv"
	"github.com/fwojciec/wikicrawl/fs"
	wcslog "github.com/fwojciec/wikicrawl/slog"
	"github.com/fwojciec/wikicrawl/sqlite"
)

// Run executes the filter command. Keywords narrow the catalog first; the
// LLM classifier, when enabled, judges what remains.
func (c *FilterCmd) Run(deps *Dependencies) error {
	relevant, total, err := c.matchKeywords(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	if c.LLM {
		classifier := deps.Classifier
		if classifier == nil {
			return wikicrawl.Errorf(wikicrawl.EINVALID, "no classifier configured for --llm")
		}
		if deps.Logger != nil {
			classifier = wcslog.NewLoggingClassifier(classifier, deps.Logger)
		}
		relevant, err = classifier.Classify(deps.Ctx, relevant)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
			return err
		}
	}

	if err := csv.WriteCatalog(c.Output, relevant); err != nil {
		fmt.Fprintf(deps.Stderr, "error: write %s: %v\n", c.Output, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Kept %d of %d entries in %s\n", len(relevant), total, c.Output)

	if c.CopyTo == "" {
		return nil
	}
	return c.copyArticles(deps, relevant)
}

// matchKeywords loads the catalog narrowed to the keywords, if any, and
// reports the catalog's full size. SQLite catalogs are matched in the query.
func (c *FilterCmd) matchKeywords(deps *Dependencies) ([]*wikicrawl.CatalogEntry, int, error) {
	keywords := wikicrawl.NewKeywordClassifier(c.Keywords)
	if len(c.Keywords) > 0 && len(keywords.Keywords()) == 0 {
		return nil, 0, wikicrawl.Errorf(wikicrawl.EINVALID, "at least one keyword required")
	}

	if isSQLite(c.Catalog) {
		if _, err := os.Stat(c.Catalog); err != nil {
			return nil, 0, wikicrawl.Errorf(wikicrawl.ENOTFOUND, "catalog %s not found", c.Catalog)
		}
		db := sqlite.NewDB(c.Catalog)
		if err := db.Open(); err != nil {
			return nil, 0, err
		}
		defer db.Close()

		store := sqlite.NewCatalogStore(db)
		total, err := store.CountEntries(deps.Ctx)
		if err != nil {
			return nil, 0, err
		}
		entries, err := store.FindEntries(deps.Ctx, sqlite.EntryFilter{Keywords: keywords.Keywords()})
		return entries, total, err
	}

	entries, err := loadCatalogFile(deps.Ctx, c.Catalog)
	if err != nil {
		return nil, 0, err
	}
	if len(keywords.Keywords()) == 0 {
		return entries, len(entries), nil
	}

	var classifier wikicrawl.Classifier = keywords
	if deps.Logger != nil {
		classifier = wcslog.NewLoggingClassifier(classifier, deps.Logger)
	}
	relevant, err := classifier.Classify(deps.Ctx, entries)
	return relevant, len(entries), err
}

// copyArticles copies each kept entry's article file. Entries without one
// are reported and skipped.
func (c *FilterCmd) copyArticles(deps *Dependencies, entries []*wikicrawl.CatalogEntry) error {
	src := fs.NewArticleStore(c.ArticlesDir)
	dst := fs.NewArticleStore(c.CopyTo)

	copied, missing := 0, 0
	for _, e := range entries {
		err := src.CopyArticle(deps.Ctx, e.Title, dst)
		switch {
		case err == nil:
			copied++
		case wikicrawl.ErrorCode(err) == wikicrawl.ENOTFOUND:
			missing++
			fmt.Fprintf(deps.Stderr, "  missing %s\n", src.Path(e.Title))
		default:
			fmt.Fprintf(deps.Stderr, "error: copy %s: %v\n", src.Path(e.Title), err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Copied %d article files to %s (%d missing)\n", copied, c.CopyTo, missing)
	return nil
}
