package wikicrawl

// ExtractResult holds the content extracted from an article page.
type ExtractResult struct {
	// Title is the article heading.
	Title string

	// Text is the cleaned body text, one block per line.
	Text string

	// Links are same-site article URLs without fragments, deduplicated
	// and sorted.
	Links []string
}

// Extractor pulls the title, body text and outbound article links out of
// raw article HTML.
type Extractor interface {
	// Extract returns EEXTRACT when the title element or the main-content
	// container is missing.
	Extract(html string) (*ExtractResult, error)
}
