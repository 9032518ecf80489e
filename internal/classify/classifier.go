// Package classify infers, once per table, which columns carry identity
// values and which are plain data.
//
// Every (roster, field) pair is scored against every column by counting
// cells that resolve to a concretely-owned index value; the best pair wins
// the column if it clears a configurable fraction of the column's non-empty
// cells. Classification is computed before any row matching and applied
// uniformly to every row.
package classify

import (
	"log/slog"

	"rollcall/internal/fieldindex"
	"rollcall/internal/identity"
	"rollcall/internal/logging"
	"rollcall/internal/tabular"
	"rollcall/internal/textutil"
)

// DefaultThreshold is the fraction of non-empty cells that must resolve to
// owned index values before a column is accepted as an identity column. A
// tunable heuristic, kept overridable through Options.
const DefaultThreshold = 0.4

// Kind tags a column as data or identity.
type Kind string

const (
	KindData     Kind = "data"
	KindIdentity Kind = "identity"
)

// Classification is the per-column decision. Role and Field are meaningful
// only for identity columns.
type Classification struct {
	Column int            `json:"column"`
	Header string         `json:"header"`
	Kind   Kind           `json:"kind"`
	Role   identity.Role  `json:"role,omitempty"`
	Field  identity.Field `json:"field,omitempty"`
}

// IsIdentity reports whether the column was bound to a roster field.
func (c Classification) IsIdentity() bool {
	return c.Kind == KindIdentity
}

// Options tunes classification.
type Options struct {
	// Threshold overrides DefaultThreshold when > 0.
	Threshold float64
}

func (o Options) threshold() float64 {
	if o.Threshold > 0 {
		return o.Threshold
	}
	return DefaultThreshold
}

// Columns classifies every column of the table against both roster indices.
// Ties break toward the primary roster and then toward earlier-declared
// fields, so the result is deterministic for a fixed input.
func Columns(logger *slog.Logger, table *tabular.Table, primary, secondary *fieldindex.Index, opts Options) []Classification {
	if logger == nil {
		logger = logging.NewNop()
	}
	threshold := opts.threshold()
	indices := []*fieldindex.Index{primary, secondary}

	classifications := make([]Classification, table.ColumnCount())
	for col := 0; col < table.ColumnCount(); col++ {
		cells := table.Column(col)
		nonEmpty := 0
		for _, cell := range cells {
			if textutil.Fold(cell) != "" {
				nonEmpty++
			}
		}

		best := Classification{Column: col, Header: table.Headers[col], Kind: KindData}
		bestScore := 0
		for _, ix := range indices {
			if ix == nil || ix.Size() == 0 {
				continue
			}
			for _, field := range identity.Fields() {
				score := 0
				for _, cell := range cells {
					if _, state := ix.Lookup(field, cell); state == fieldindex.Owned {
						score++
					}
				}
				// Strict comparison keeps the first enumerated pair on ties:
				// primary before secondary, fields in declaration order.
				if score > bestScore {
					bestScore = score
					best = Classification{
						Column: col,
						Header: table.Headers[col],
						Kind:   KindIdentity,
						Role:   ix.Role(),
						Field:  field,
					}
				}
			}
		}

		if bestScore == 0 || nonEmpty == 0 || float64(bestScore) < threshold*float64(nonEmpty) {
			best = Classification{Column: col, Header: table.Headers[col], Kind: KindData}
		}

		logger.Debug("column classified",
			logging.Int("column", col),
			logging.String("header", table.Headers[col]),
			logging.String("kind", string(best.Kind)),
			logging.String("role", string(best.Role)),
			logging.String("field", string(best.Field)),
			logging.Int("score", bestScore),
			logging.Int("non_empty_cells", nonEmpty))

		classifications[col] = best
	}
	return classifications
}

// DataHeaders returns the headers of data columns in original order.
func DataHeaders(table *tabular.Table, classifications []Classification) []string {
	headers := make([]string, 0, len(classifications))
	for _, c := range classifications {
		if !c.IsIdentity() {
			headers = append(headers, table.Headers[c.Column])
		}
	}
	return headers
}
