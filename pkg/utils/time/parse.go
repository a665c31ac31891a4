// ABOUTME: Publish date parsing for the many date shapes podcast feeds use
// ABOUTME: Feeds keep their raw pubDate; these helpers add a normalized UTC form for clients

package time

import (
	"strings"
	"time"
)

// layouts seen in RSS pubDate and Atom updated fields, most common first
var layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04 -0700",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC822Z,
	time.RFC822,
}

// Parse tries every known layout and returns the instant in UTC
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	// Some feeds spell out the zone as "GMT+0000"
	raw = strings.Replace(raw, "GMT+", "+", 1)

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// RFC3339 returns raw as an RFC 3339 timestamp, or "" when it cannot be parsed
func RFC3339(raw string) string {
	t, ok := Parse(raw)
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}
