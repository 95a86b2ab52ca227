package domain

import (
	"strconv"
	"strings"
)

// StripBounds removes exactly one leading and one trailing character from the
// trimmed text, so "(42)" becomes "42". Text shorter than two characters
// yields the empty string.
func StripBounds(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) < 2 {
		return ""
	}
	return string(runes[1 : len(runes)-1])
}

// ParseCount turns a count badge such as "(42)" into 42. Badges that are not
// numeric once the bounds are stripped count as zero.
func ParseCount(badge string) int {
	count, err := strconv.Atoi(strings.TrimSpace(StripBounds(badge)))
	if err != nil {
		return 0
	}
	return count
}
