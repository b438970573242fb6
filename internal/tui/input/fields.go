// Package input parses the free-text fields of the session form.
package input

import (
	"slices"
	"strconv"
	"strings"
)

// ParseEmojis splits a field of emojis separated by spaces or commas.
// Blanks and duplicates are dropped, order is kept.
func ParseEmojis(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// FormatEmojis is the inverse of ParseEmojis.
func FormatEmojis(emojis []string) string {
	return strings.Join(emojis, " ")
}

// NormalizeClock accepts the short forms people type for a time of day
// ("9", "930", "9:30", "0930", "09:30") and returns "HH:MM".
// Anything else is returned trimmed and unchanged, for the caller to reject.
func NormalizeClock(s string) string {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		switch len(s) {
		case 1, 2:
			h, m = s, "0"
		case 3, 4:
			h, m = s[:len(s)-2], s[len(s)-2:]
		default:
			return s
		}
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 24 {
		return s
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 || len(m) > 2 {
		return s
	}
	return pad2(hours) + ":" + pad2(minutes)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
