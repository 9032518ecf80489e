// Package suggest ranks candidate identities for rows that failed exact
// resolution.
//
// The score is asymmetric on purpose: confidence measures how much of the
// identity's own vocabulary is recoverable from the row, not how similar
// the two texts are overall. A row full of unrelated data cells can still
// score 100 for an identity whose every token appears somewhere in it.
package suggest

import (
	"math"
	"sort"

	"rollcall/internal/identity"
	"rollcall/internal/textutil"
)

// Candidate is one ranked suggestion: an identity identifier and a 0-100
// confidence value.
type Candidate struct {
	ID         string
	Confidence int
}

type tokenBag struct {
	id     string
	tokens map[string]struct{}
}

// Scorer ranks one roster's identities against unmatched rows. Per-identity
// token bags are built once at construction and shared read-only across
// rows, so ranking many rows stays linear in the roster size.
//
// Identities whose descriptive fields yield no tokens are excluded from
// every ranking rather than reported at confidence zero: the formula's
// denominator is empty for them, and surfacing them as suggestions would
// claim a relationship no token supports.
type Scorer struct {
	bags []tokenBag
}

// NewScorer memoizes the token bag of every identity, preserving roster
// declaration order for deterministic tie-breaking.
func NewScorer(identities []identity.Normalized) *Scorer {
	bags := make([]tokenBag, 0, len(identities))
	for _, id := range identities {
		tokens := textutil.TokenSet(id.FieldValues()...)
		if len(tokens) == 0 {
			continue
		}
		bags = append(bags, tokenBag{id: id.ID, tokens: tokens})
	}
	return &Scorer{bags: bags}
}

// Rank scores every non-excluded identity against the row's cells and
// returns the full candidate list, best first. Equal confidences keep
// roster declaration order (stable sort). The excluded set holds identity
// identifiers already consumed by accepted rows.
func (s *Scorer) Rank(cells []string, excluded map[string]struct{}) []Candidate {
	rowTokens := textutil.TokenSet(cells...)

	candidates := make([]Candidate, 0, len(s.bags))
	for _, bag := range s.bags {
		if _, skip := excluded[bag.id]; skip {
			continue
		}
		common := textutil.Overlap(rowTokens, bag.tokens)
		confidence := int(math.Round(100 * float64(common) / float64(len(bag.tokens))))
		candidates = append(candidates, Candidate{ID: bag.id, Confidence: confidence})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}
