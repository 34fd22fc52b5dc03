package normalize

import (
	"html"
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// StripHTML converts an HTML or HTML-encoded string to plain text. It first
// unescapes entities (handles double-encoded payloads; no-op on real HTML),
// strips all tags, then collapses whitespace.
func StripHTML(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// Snippet truncates s to at most n runes. Descriptions are stored as short
// snippets only; full postings live behind the job's URL.
func Snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
