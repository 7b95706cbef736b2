// Package gemini implements wikicrawl.Classifier using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/wikicrawl"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultBatchSize is the number of entries sent per request.
const DefaultBatchSize = 500

// Ensure Classifier implements wikicrawl.Classifier at compile time.
var _ wikicrawl.Classifier = (*Classifier)(nil)

// Classifier asks Gemini which catalog entries belong to a topic.
type Classifier struct {
	client    *genai.Client
	model     string
	topic     string
	batchSize int
}

// NewClassifier creates a new Classifier for topic. An empty model selects
// DefaultModel.
func NewClassifier(client *genai.Client, model, topic string) *Classifier {
	if model == "" {
		model = DefaultModel
	}
	return &Classifier{client: client, model: model, topic: topic, batchSize: DefaultBatchSize}
}

// SetBatchSize overrides DefaultBatchSize. Values below 1 are ignored.
func (c *Classifier) SetBatchSize(n int) {
	if n > 0 {
		c.batchSize = n
	}
}

// Classify sends entries in batches and keeps those the model names.
// Entries the model returns that were not in the input are ignored.
func (c *Classifier) Classify(ctx context.Context, entries []*wikicrawl.CatalogEntry) ([]*wikicrawl.CatalogEntry, error) {
	if strings.TrimSpace(c.topic) == "" {
		return nil, wikicrawl.Errorf(wikicrawl.EINVALID, "topic required")
	}
	if len(entries) == 0 {
		return nil, nil
	}

	var relevant []*wikicrawl.CatalogEntry
	config := BuildConfig(c.topic)
	for start := 0; start < len(entries); start += c.batchSize {
		batch := entries[start:min(start+c.batchSize, len(entries))]

		result, err := c.client.Models.GenerateContent(ctx, c.model,
			[]*genai.Content{{
				Parts: []*genai.Part{{Text: BuildPrompt(batch)}},
			}},
			config,
		)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, wikicrawl.Errorf(wikicrawl.EINTERNAL, "gemini returned nil result")
		}

		selected, err := ParseResponse(result.Text())
		if err != nil {
			return nil, err
		}
		relevant = append(relevant, SelectRelevant(batch, selected)...)
	}
	return relevant, nil
}

// BuildConfig returns the GenerateContentConfig for classification calls.
func BuildConfig(topic string) *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You are an expert knowledge filter building a knowledge graph about %s. "+
					"Given encyclopedia article titles and URLs, one per line as \"title | url\", "+
					"return only the articles relevant to %s, its core concepts, texts, people, places, events or symbols. "+
					"Respond with a JSON list of objects with \"title\" and \"url\" fields.", topic, topic),
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildPrompt lists entries as "title | url" lines.
func BuildPrompt(entries []*wikicrawl.CatalogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s | %s\n", e.Title, e.URL)
	}
	return sb.String()
}

// Selection is one article named in a model response.
type Selection struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ParseResponse decodes the JSON list in a model response, tolerating a
// surrounding markdown code fence.
func ParseResponse(text string) ([]Selection, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []Selection
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, wikicrawl.Errorf(wikicrawl.EINTERNAL, "invalid classifier response: %v", err)
	}
	return out, nil
}

// SelectRelevant returns the entries whose URL was selected, in input order.
func SelectRelevant(entries []*wikicrawl.CatalogEntry, selected []Selection) []*wikicrawl.CatalogEntry {
	urls := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		urls[s.URL] = struct{}{}
	}
	var out []*wikicrawl.CatalogEntry
	for _, e := range entries {
		if _, ok := urls[e.URL]; ok {
			out = append(out, e)
		}
	}
	return out
}
