// ABOUTME: Duration helpers for itunes:duration values, which feeds write in several shapes
// ABOUTME: Converts "3723", "1:02:03", "62:03" and "1h2m3s" to seconds and back to clock form

package duration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Seconds converts a raw duration to whole seconds. ok is false when the
// value is empty or not in a recognised shape.
func Seconds(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	// Plain seconds, sometimes with a fractional part
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		if f < 0 {
			return 0, false
		}
		return int(f), true
	}

	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return int(d.Seconds()), true
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

// Clock formats seconds as H:MM:SS, or M:SS under an hour
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// Normalize returns raw in clock form when it parses, otherwise raw unchanged
func Normalize(raw string) string {
	if s, ok := Seconds(raw); ok {
		return Clock(s)
	}
	return raw
}
