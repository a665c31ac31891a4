package transport

import (
	"encoding/base64"
	"net/url"
	"strings"

	"podfeed-api/core/errors"
)

const dataURIPrefix = "data:application/rss+xml;base64,"

// NormalizePayload cleans fetched feed text: it trims whitespace and byte
// order marks, decodes base64 data URIs and rejects anything that is not XML.
func NormalizePayload(feedURL, text string) (string, error) {
	trimmed := trimPayload(text)

	if strings.HasPrefix(trimmed, dataURIPrefix) {
		encoded := strings.Join(strings.Fields(strings.TrimPrefix(trimmed, dataURIPrefix)), "")
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return "", &errors.NonXMLResponseError{URL: feedURL, DecodeFailed: true}
		}
		trimmed = trimPayload(string(decoded))
	}

	if !strings.HasPrefix(trimmed, "<") {
		return "", &errors.NonXMLResponseError{URL: feedURL, Snippet: snippet(trimmed, 200)}
	}
	return trimmed, nil
}

func trimPayload(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, "\ufeff") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	}
	return s
}

func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// ValidateFeedURL checks that raw is an absolute http(s) URL with a host
func ValidateFeedURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &errors.InvalidURLError{URL: raw, Reason: "url is required"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &errors.InvalidURLError{URL: raw, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &errors.InvalidURLError{URL: raw, Reason: "scheme must be http or https"}
	}
	if u.Host == "" {
		return &errors.InvalidURLError{URL: raw, Reason: "host is required"}
	}
	return nil
}

// IsLikelyFeedURL is a cheap heuristic for links that probably point at a feed
func IsLikelyFeedURL(raw string) bool {
	if ValidateFeedURL(raw) != nil {
		return false
	}
	lower := strings.ToLower(raw)
	return strings.Contains(lower, "xml") || strings.Contains(lower, "rss") || strings.Contains(lower, "feed")
}

// LooksLikeFeedDocument reports whether body starts like an XML feed. It is
// the check the RSS proxy applies before relaying a response.
func LooksLikeFeedDocument(body []byte) bool {
	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	lower := strings.ToLower(trimPayload(string(head)))
	return strings.Contains(lower, "<?xml") || strings.Contains(lower, "<rss") || strings.Contains(lower, "<feed")
}
