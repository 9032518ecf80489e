package textutil

import "strings"

// TokenSet splits every input on whitespace and collects the unique folded
// tokens. Duplicate tokens collapse and empty inputs contribute nothing.
func TokenSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, value := range values {
		for _, token := range strings.Fields(value) {
			token = Fold(token)
			if token == "" {
				continue
			}
			set[token] = struct{}{}
		}
	}
	return set
}

// Overlap counts the tokens present in both sets.
func Overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for token := range a {
		if _, ok := b[token]; ok {
			count++
		}
	}
	return count
}
