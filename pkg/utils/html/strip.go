// ABOUTME: HTML utilities for turning feed descriptions into plain text
// ABOUTME: Uses goquery so entities, scripts and nested markup are handled by a real parser

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the visible text of an HTML fragment with whitespace collapsed
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapse(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find("br, p, div, li").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return collapse(doc.Text())
}

// Truncate shortens text to at most n runes, appending an ellipsis when cut
func Truncate(text string, n int) string {
	r := []rune(text)
	if n <= 0 || len(r) <= n {
		return text
	}
	cut := strings.TrimRight(string(r[:n]), " ")
	return cut + "…"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
