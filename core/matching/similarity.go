package matching

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity converts the Levenshtein edit distance between a and b into a
// 0-100 score: 100 * (maxLen - distance) / maxLen. Equal strings score 100
// without running the distance computation.
func Similarity(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (maxLen - dist) / maxLen
}
