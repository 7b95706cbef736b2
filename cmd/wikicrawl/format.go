package main

import (
	"fmt"
	"net/url"
)

// DisplayURL renders an article URL for a terminal line of at most width
// characters. Percent-escapes are decoded so non-Latin titles stay readable;
// long URLs keep their tail, which holds the title.
func DisplayURL(raw string, width int) string {
	if width <= 0 {
		return ""
	}
	s := raw
	if decoded, err := url.PathUnescape(raw); err == nil {
		s = decoded
	}

	runes := []rune(s)
	switch {
	case len(runes) <= width:
		return s
	case width < 4:
		return string(runes[:width])
	}
	return "..." + string(runes[len(runes)-width+3:])
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	for _, unit := range []string{"KB", "MB", "GB"} {
		if v < 1024 || unit == "GB" {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%d B", n)
}
