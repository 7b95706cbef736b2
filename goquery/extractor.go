// Package goquery implements wikicrawl.Extractor for encyclopedia article
// pages using CSS selectors.
package goquery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikicrawl"
	"golang.org/x/net/html"
)

// Selectors for the content markers of an article page.
const (
	titleSelector   = "h1#firstHeading"
	contentSelector = "div#mw-content-text"
	blockSelector   = "p, ul, ol"
)

// Ensure Extractor implements wikicrawl.Extractor at compile time.
var _ wikicrawl.Extractor = (*Extractor)(nil)

// Extractor extracts the title, body text and article links of one site.
type Extractor struct {
	site *url.URL
}

// NewExtractor creates an Extractor whose links resolve against siteURL.
// Only the scheme and host of siteURL are used.
func NewExtractor(siteURL string) (*Extractor, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "invalid site URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "site URL must be absolute: %q", siteURL)
	}
	return &Extractor{site: &url.URL{Scheme: u.Scheme, Host: u.Host}}, nil
}

// Extract implements wikicrawl.Extractor.
func (e *Extractor) Extract(raw string) (*wikicrawl.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "failed to parse HTML: %v", err)
	}

	titleSel := doc.Find(titleSelector).First()
	if titleSel.Length() == 0 {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no title element")
	}
	title := strings.TrimSpace(titleSel.Text())
	if title == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "empty title element")
	}

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, wikicrawl.Errorf(wikicrawl.EEXTRACT, "no main content container")
	}

	var blocks []string
	content.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := nodeText(sel.Get(0)); text != "" {
			blocks = append(blocks, text)
		}
	})

	seen := make(map[string]bool)
	var links []string
	content.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link, ok := ArticleURL(e.site, href)
		if !ok || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	sort.Strings(links)

	return &wikicrawl.ExtractResult{
		Title: title,
		Text:  strings.Join(blocks, "\n"),
		Links: links,
	}, nil
}

// nodeText joins the trimmed, non-empty text nodes under n with single
// spaces. Script and style contents are skipped.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
