package main_test

import (
	"testing"

	main "github.com/fwojciec/wikicrawl/cmd/wikicrawl"
	"github.com/stretchr/testify/assert"
)

func TestDisplayURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   string
		width int
		want  string
	}{
		{"short url unchanged", "https://x.org/wiki/A", 50, "https://x.org/wiki/A"},
		{"keeps the title end", "https://en.wikipedia.org/wiki/Bhagavad_Gita", 20, "...iki/Bhagavad_Gita"},
		{"decodes percent escapes", "https://en.wikipedia.org/wiki/%E0%A4%B5%E0%A5%87%E0%A4%A6", 40, "https://en.wikipedia.org/wiki/वेद"},
		{"counts characters not bytes", "https://x.org/wiki/%E0%A4%B5%E0%A5%87%E0%A4%A6", 8, "...i/वेद"},
		{"bad escape shown raw", "https://x.org/wiki/100%", 50, "https://x.org/wiki/100%"},
		{"tiny width takes prefix", "https://x.org", 3, "htt"},
		{"zero width", "https://x.org", 0, ""},
		{"negative width", "https://x.org", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, main.DisplayURL(tt.raw, tt.width))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", main.FormatBytes(0))
	assert.Equal(t, "512 B", main.FormatBytes(512))
	assert.Equal(t, "1.5 KB", main.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", main.FormatBytes(2*1024*1024))
	assert.Equal(t, "3.0 GB", main.FormatBytes(3*1024*1024*1024))
}
