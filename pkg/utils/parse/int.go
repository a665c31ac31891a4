// ABOUTME: Utility functions for parsing integers from feed attribute strings
// ABOUTME: Mirrors the lenient leading-digit parsing browsers apply to attributes

package parse

import "strconv"

// LeadingInt parses the optional sign and digits at the start of s, ignoring
// anything after them. "60", "60.5" and "60%" all yield 60. Strings without a
// leading number yield 0.
func LeadingInt(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digitsStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0
	}
	v, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0
	}
	return v
}
