package main

import (
	"fmt"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/crawl"
	"github.com/fwojciec/wikicrawl/csv"
	"github.com/fwojciec/wikicrawl/fs"
)

// Run executes the merge command.
func (c *MergeCmd) Run(deps *Dependencies) error {
	var catalogs [][]*wikicrawl.CatalogEntry
	total := 0
	for _, path := range c.Inputs {
		entries, err := loadCatalogFile(deps.Ctx, path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
			return err
		}
		total += len(entries)
		catalogs = append(catalogs, entries)
	}

	merged := crawl.MergeCatalogs(catalogs...)
	if err := csv.WriteCatalog(c.Output, merged); err != nil {
		fmt.Fprintf(deps.Stderr, "error: write %s: %v\n", c.Output, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Merged %d catalogs (%d rows) into %s: %d unique URLs\n",
		len(c.Inputs), total, c.Output, len(merged))

	if len(c.ArticlesDir) == 0 {
		return nil
	}

	// The first directory to hold a file name wins.
	out := fs.NewArticleStore(c.ArticlesOut)
	var copied, duplicates int
	for _, dir := range c.ArticlesDir {
		n, dup, err := out.Import(deps.Ctx, fs.NewArticleStore(dir))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
			return err
		}
		copied += n
		duplicates += dup
	}

	fmt.Fprintf(deps.Stdout, "Combined %d article files from %d directories into %s (%d duplicate names skipped)\n",
		copied, len(c.ArticlesDir), c.ArticlesOut, duplicates)
	return nil
}
