package goquery

import (
	"net/url"
	"strings"
)

// articlePathPrefix is the path under which article pages live.
const articlePathPrefix = "/wiki/"

// excludedNamespaces are administrative namespaces whose pages are never
// followed. Keys are lowercase with spaces instead of underscores.
var excludedNamespaces = map[string]bool{
	"book":       true,
	"category":   true,
	"draft":      true,
	"file":       true,
	"help":       true,
	"image":      true,
	"media":      true,
	"mediawiki":  true,
	"module":     true,
	"portal":     true,
	"project":    true,
	"special":    true,
	"talk":       true,
	"template":   true,
	"timedtext":  true,
	"timed text": true,
	"user":       true,
	"wikipedia":  true,
	"wp":         true,
}

// ArticleURL resolves href against site and reports whether it points to
// an article page on the same site. The returned URL has its fragment
// stripped, so "page#section" and "page" collapse to one URL.
//
// Rejected: other hosts, paths outside /wiki/, links carrying a query
// string, administrative namespaces (Talk:, Category:, File:, ...) and any
// "... talk:" namespace.
func ArticleURL(site *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if idx := strings.Index(href, "#"); idx != -1 {
		href = href[:idx]
	}
	if href == "" {
		return "", false
	}

	var path string
	if strings.HasPrefix(href, articlePathPrefix) {
		// Common case: keep the path byte-for-byte so catalog keys match
		// what the site itself links to.
		path = href
	} else {
		ref, err := url.Parse(href)
		if err != nil {
			return "", false
		}
		resolved := site.ResolveReference(ref)
		if resolved.Host != site.Host {
			return "", false
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return "", false
		}
		if resolved.RawQuery != "" {
			return "", false
		}
		path = resolved.EscapedPath()
	}

	if strings.Contains(path, "?") {
		return "", false
	}
	if !strings.HasPrefix(path, articlePathPrefix) {
		return "", false
	}
	name := path[len(articlePathPrefix):]
	if name == "" || isExcludedNamespace(name) {
		return "", false
	}

	return site.Scheme + "://" + site.Host + path, true
}

// isExcludedNamespace reports whether the page name starts with an
// administrative namespace prefix.
func isExcludedNamespace(name string) bool {
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	idx := strings.Index(name, ":")
	if idx == -1 {
		return false
	}
	ns := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name[:idx], "_", " ")))
	if excludedNamespaces[ns] {
		return true
	}
	return strings.HasSuffix(ns, " talk")
}
