package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the canonical comparison form of a value: trimmed of
// surrounding whitespace and Unicode case-folded. Folding rather than plain
// lowercasing keeps comparisons stable for names outside ASCII.
func Fold(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	return cases.Fold().String(trimmed)
}
