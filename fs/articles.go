// Package fs provides file-based storage for article artifacts.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikicrawl"
)

// ArticleSuffix is appended to the cleaned title to form artifact file names.
const ArticleSuffix = "_clean.txt"

// LinksSeparator separates the body text from the link list in artifacts.
const LinksSeparator = "--- Hyperlinks ---"

// CleanFilename converts an article title into a filesystem-safe name.
// Letters, digits, spaces and underscores are kept; every other character
// becomes an underscore. Trailing whitespace is trimmed.
func CleanFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// ArticleFilename returns the artifact file name for a title.
func ArticleFilename(title string) string {
	return CleanFilename(title) + ArticleSuffix
}

// FormatArticle renders the artifact body: the text, a blank line, the
// separator line and the links one per line.
func FormatArticle(article *wikicrawl.Article) string {
	var b strings.Builder
	b.WriteString(article.Text)
	b.WriteString("\n\n")
	b.WriteString(LinksSeparator)
	b.WriteString("\n")
	for _, link := range article.Links {
		b.WriteString(link)
		b.WriteString("\n")
	}
	return b.String()
}

// ContentHash returns the hex xxhash of an artifact's content.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Ensure ArticleStore implements wikicrawl.ArticleStore at compile time.
var _ wikicrawl.ArticleStore = (*ArticleStore)(nil)

// ArticleStore writes article artifacts as text files into a directory.
type ArticleStore struct {
	baseDir string
}

// NewArticleStore creates an ArticleStore rooted at baseDir.
// The directory is created on first save.
func NewArticleStore(baseDir string) *ArticleStore {
	return &ArticleStore{baseDir: baseDir}
}

// Path returns the file path the artifact for title is written to.
func (s *ArticleStore) Path(title string) string {
	return filepath.Join(s.baseDir, ArticleFilename(title))
}

// Dir returns the directory artifacts are written to.
func (s *ArticleStore) Dir() string {
	return s.baseDir
}

// SaveArticle writes the artifact and sets article.ContentHash. A file that
// already holds identical content is left untouched.
func (s *ArticleStore) SaveArticle(ctx context.Context, article *wikicrawl.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	content := FormatArticle(article)
	article.ContentHash = ContentHash(content)
	return s.write(s.Path(article.Title), []byte(content))
}

// CopyArticle copies the artifact for title into dst. It returns ENOTFOUND
// when s has no artifact for title.
func (s *ArticleStore) CopyArticle(ctx context.Context, title string, dst *ArticleStore) error {
	content, err := os.ReadFile(s.Path(title))
	if errors.Is(err, os.ErrNotExist) {
		return wikicrawl.Errorf(wikicrawl.ENOTFOUND, "no article for %q in %s", title, s.baseDir)
	} else if err != nil {
		return err
	}
	return dst.write(dst.Path(title), content)
}

// Import copies every artifact of src whose file name is not yet present in
// s, so the first store to provide a name wins. It returns how many files
// were copied and how many were already present.
func (s *ArticleStore) Import(ctx context.Context, src *ArticleStore) (copied, existing int, err error) {
	files, err := os.ReadDir(src.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, 0, wikicrawl.Errorf(wikicrawl.ENOTFOUND, "articles directory %s not found", src.baseDir)
	} else if err != nil {
		return 0, 0, err
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ArticleSuffix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return copied, existing, err
		}

		dstPath := filepath.Join(s.baseDir, f.Name())
		if _, err := os.Stat(dstPath); err == nil {
			existing++
			continue
		}

		content, err := os.ReadFile(filepath.Join(src.baseDir, f.Name()))
		if err != nil {
			return copied, existing, err
		}
		if err := s.write(dstPath, content); err != nil {
			return copied, existing, err
		}
		copied++
	}
	return copied, existing, nil
}

// write stores content at path unless the file already holds it.
func (s *ArticleStore) write(path string, content []byte) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if xxhash.Sum64(existing) == xxhash.Sum64(content) {
			return nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	return os.WriteFile(path, content, 0644)
}
