package main

import (
	"fmt"

	"github.com/fwojciec/wikicrawl/crawl"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	old, err := loadCatalogFile(deps.Ctx, c.Old)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}
	newer, err := loadCatalogFile(deps.Ctx, c.New)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	cmp := crawl.CompareCatalogs(old, newer)
	fmt.Fprintf(deps.Stdout, "Total URLs in %s: %d\n", c.Old, cmp.Old)
	fmt.Fprintf(deps.Stdout, "Total URLs in %s: %d\n", c.New, cmp.New)
	fmt.Fprintf(deps.Stdout, "Common URLs: %d\n", cmp.Common)
	if cmp.Old > 0 {
		fmt.Fprintf(deps.Stdout, "Common %% (of old): %.2f%%\n", cmp.CommonPercent())
	}
	return nil
}
