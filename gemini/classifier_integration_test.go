//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClassifier_Integration_SelectsRelevant(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	entries := []*wikicrawl.CatalogEntry{
		{Serial: 1, Title: "Bhagavad Gita", URL: "https://en.wikipedia.org/wiki/Bhagavad_Gita"},
		{Serial: 2, Title: "Python (programming language)", URL: "https://en.wikipedia.org/wiki/Python_(programming_language)"},
	}

	relevant, err := gemini.NewClassifier(client, "", "Hinduism").Classify(ctx, entries)

	require.NoError(t, err)
	require.NotEmpty(t, relevant)
	assert.Equal(t, "Bhagavad Gita", relevant[0].Title)
}
