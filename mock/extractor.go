package mock

import "github.com/fwojciec/wikicrawl"

var _ wikicrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wikicrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*wikicrawl.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*wikicrawl.ExtractResult, error) {
	return e.ExtractFn(html)
}
