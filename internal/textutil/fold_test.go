package textutil

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "jdoe", "jdoe"},
		{"uppercase", "JDOE", "jdoe"},
		{"mixed with whitespace", "  Jane Doe \t", "jane doe"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"non-ascii", "MÜLLER", "müller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.input); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenSetCollapsesDuplicates(t *testing.T) {
	set := TokenSet("Jane Doe", "jane", "  ", "CS101 doe")
	want := []string{"jane", "doe", "cs101"}
	if len(set) != len(want) {
		t.Fatalf("TokenSet returned %d tokens, want %d: %v", len(set), len(want), set)
	}
	for _, token := range want {
		if _, ok := set[token]; !ok {
			t.Errorf("TokenSet missing token %q", token)
		}
	}
}

func TestOverlap(t *testing.T) {
	a := TokenSet("jane doe cs101")
	b := TokenSet("jane smith cs101")
	if got := Overlap(a, b); got != 2 {
		t.Errorf("Overlap = %d, want 2", got)
	}
	if got := Overlap(a, TokenSet()); got != 0 {
		t.Errorf("Overlap with empty set = %d, want 0", got)
	}
}
