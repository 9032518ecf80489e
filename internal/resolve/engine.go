package resolve

import (
	"fmt"
	"log/slog"
	"math"

	"rollcall/internal/classify"
	"rollcall/internal/fieldindex"
	"rollcall/internal/identity"
	"rollcall/internal/logging"
	"rollcall/internal/suggest"
	"rollcall/internal/tabular"
)

// Request is everything one engine run consumes. The engine does not mutate
// the table or the rosters; the caller must not mutate them concurrently
// during the run.
type Request struct {
	Table     *tabular.Table
	Primary   identity.Roster
	Secondary identity.Roster
	Policy    Policy
	Classify  classify.Options
}

// Suggestion is one ranked candidate attached to an unmatched row. Record
// is the caller's raw roster record, hydrated for display.
type Suggestion struct {
	Record     identity.Record `json:"record"`
	Confidence int             `json:"confidence"`
}

// MatchedRow is a row that passed every policy check. Identity lists hold
// the caller-supplied raw records, in the order the row matched them.
type MatchedRow struct {
	Index     int               `json:"index"`
	Cells     []string          `json:"cells"`
	DataCells []string          `json:"data_cells"`
	Primary   []identity.Record `json:"primary"`
	Secondary []identity.Record `json:"secondary"`
}

// UnmatchedRow is a rejected row: every contributing reason is recorded,
// and each roster gets a ranked suggestion list drawn from identities not
// consumed by accepted rows.
type UnmatchedRow struct {
	Index                int          `json:"index"`
	Cells                []string     `json:"cells"`
	DataCells            []string     `json:"data_cells"`
	Reasons              []string     `json:"reasons"`
	PrimarySuggestions   []Suggestion `json:"primary_suggestions"`
	SecondarySuggestions []Suggestion `json:"secondary_suggestions"`
}

// Report is the complete result of one run. Headers and Rows echo the
// processed table for consumers that did not keep a reference.
type Report struct {
	Columns           []classify.Classification `json:"columns"`
	DataHeaders       []string                  `json:"data_headers"`
	ResolvedPrimary   CountSpec                 `json:"resolved_primary"`
	ResolvedSecondary CountSpec                 `json:"resolved_secondary"`
	Matched           []MatchedRow              `json:"matched"`
	Unmatched         []UnmatchedRow            `json:"unmatched"`
	Headers           []string                  `json:"headers"`
	Rows              [][]string                `json:"rows"`
}

// rowMatch is the per-row identity set for both rosters, deduplicated by
// identifier but preserving first-match order.
type rowMatch struct {
	primary   []string
	secondary []string
}

func (m rowMatch) count(role identity.Role) int {
	if role == identity.RolePrimary {
		return len(m.primary)
	}
	return len(m.secondary)
}

// Run executes the whole pipeline: classification, per-row exact matching,
// cardinality and uniqueness policy, and confidence suggestions for the
// rejected partition. The computation is pure and deterministic; repeated
// runs over the same input produce identical reports.
func Run(logger *slog.Logger, req Request) (*Report, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(req.Primary.Records) == 0 && len(req.Secondary.Records) == 0 {
		return nil, ErrNoIdentities
	}
	if err := req.Policy.validate(); err != nil {
		return nil, err
	}

	primaryNorm := identity.Normalize(req.Primary.Records)
	secondaryNorm := identity.Normalize(req.Secondary.Records)
	primaryIndex := fieldindex.Build(identity.RolePrimary, primaryNorm)
	secondaryIndex := fieldindex.Build(identity.RoleSecondary, secondaryNorm)
	primaryByID := req.Primary.ByID()
	secondaryByID := req.Secondary.ByID()

	columns := classify.Columns(logger, req.Table, primaryIndex, secondaryIndex, req.Classify)
	dataHeaders := classify.DataHeaders(req.Table, columns)

	matches := matchRows(req.Table, columns, primaryIndex, secondaryIndex)

	resolvedPrimary := resolveExpected(req.Policy.Primary.Expected, matches, identity.RolePrimary)
	resolvedSecondary := resolveExpected(req.Policy.Secondary.Expected, matches, identity.RoleSecondary)

	primaryDisq := disqualify(req.Policy.Primary.UniqueOnce, matches, identity.RolePrimary, req.Primary, primaryByID)
	secondaryDisq := disqualify(req.Policy.Secondary.UniqueOnce, matches, identity.RoleSecondary, req.Secondary, secondaryByID)

	report := &Report{
		Columns:           columns,
		DataHeaders:       dataHeaders,
		ResolvedPrimary:   resolvedPrimary,
		ResolvedSecondary: resolvedSecondary,
		Matched:           []MatchedRow{},
		Unmatched:         []UnmatchedRow{},
		Headers:           req.Table.Headers,
		Rows:              req.Table.Rows,
	}

	// First pass decides acceptance so the suggestion pool can exclude
	// identities consumed by accepted rows before any scoring happens.
	type verdict struct {
		reasons []string
	}
	verdicts := make([]verdict, len(matches))
	consumedPrimary := make(map[string]struct{})
	consumedSecondary := make(map[string]struct{})

	for i, m := range matches {
		var reasons []string
		for _, id := range m.primary {
			if reason, bad := primaryDisq[id]; bad {
				reasons = append(reasons, reason)
			}
		}
		for _, id := range m.secondary {
			if reason, bad := secondaryDisq[id]; bad {
				reasons = append(reasons, reason)
			}
		}
		if !resolvedPrimary.satisfied(len(m.primary)) {
			reasons = append(reasons, cardinalityReason(req.Primary.DisplayLabel(), resolvedPrimary, len(m.primary)))
		}
		if !resolvedSecondary.satisfied(len(m.secondary)) {
			reasons = append(reasons, cardinalityReason(req.Secondary.DisplayLabel(), resolvedSecondary, len(m.secondary)))
		}
		verdicts[i] = verdict{reasons: reasons}
		if len(reasons) == 0 {
			for _, id := range m.primary {
				consumedPrimary[id] = struct{}{}
			}
			for _, id := range m.secondary {
				consumedSecondary[id] = struct{}{}
			}
		}
	}

	primaryScorer := suggest.NewScorer(primaryNorm)
	secondaryScorer := suggest.NewScorer(secondaryNorm)

	for i, m := range matches {
		row := req.Table.Rows[i]
		dataCells := dataCells(row, columns)

		if len(verdicts[i].reasons) == 0 {
			report.Matched = append(report.Matched, MatchedRow{
				Index:     i,
				Cells:     row,
				DataCells: dataCells,
				Primary:   hydrate(m.primary, primaryByID),
				Secondary: hydrate(m.secondary, secondaryByID),
			})
			continue
		}

		report.Unmatched = append(report.Unmatched, UnmatchedRow{
			Index:                i,
			Cells:                row,
			DataCells:            dataCells,
			Reasons:              verdicts[i].reasons,
			PrimarySuggestions:   hydrateSuggestions(primaryScorer.Rank(row, consumedPrimary), primaryByID),
			SecondarySuggestions: hydrateSuggestions(secondaryScorer.Rank(row, consumedSecondary), secondaryByID),
		})
	}

	logger.Info("table resolved",
		logging.Int("rows", req.Table.RowCount()),
		logging.Int("matched", len(report.Matched)),
		logging.Int("unmatched", len(report.Unmatched)),
		logging.String("expected_primary", resolvedPrimary.String()),
		logging.String("expected_secondary", resolvedSecondary.String()))

	return report, nil
}

// matchRows applies the exact matcher to every cell of every row,
// accumulating per-roster identity sets deduplicated by identifier.
func matchRows(table *tabular.Table, columns []classify.Classification, primary, secondary *fieldindex.Index) []rowMatch {
	matches := make([]rowMatch, table.RowCount())
	for i, row := range table.Rows {
		seenPrimary := make(map[string]struct{})
		seenSecondary := make(map[string]struct{})
		for col, c := range columns {
			owner, ok := MatchCell(c, row[col], primary, secondary)
			if !ok {
				continue
			}
			switch c.Role {
			case identity.RolePrimary:
				if _, dup := seenPrimary[owner.ID]; !dup {
					seenPrimary[owner.ID] = struct{}{}
					matches[i].primary = append(matches[i].primary, owner.ID)
				}
			case identity.RoleSecondary:
				if _, dup := seenSecondary[owner.ID]; !dup {
					seenSecondary[owner.ID] = struct{}{}
					matches[i].secondary = append(matches[i].secondary, owner.ID)
				}
			}
		}
	}
	return matches
}

// resolveExpected replaces CountAuto with the rounded mean match count over
// rows that matched at least one identity in either roster. With no such
// rows the sentinel makes every row fail the check instead of the
// derivation dividing by zero.
func resolveExpected(spec CountSpec, matches []rowMatch, role identity.Role) CountSpec {
	if spec.Mode != CountAuto {
		return spec
	}
	total := 0
	populated := 0
	for _, m := range matches {
		if len(m.primary)+len(m.secondary) == 0 {
			continue
		}
		populated++
		total += m.count(role)
	}
	if populated == 0 {
		return CountSpec{Mode: CountExact, N: unreachableCount}
	}
	n := int(math.Round(float64(total) / float64(populated)))
	return CountSpec{Mode: CountExact, N: n}
}

// disqualify runs the table-wide uniqueness scan for one roster. Any
// identity matched by more than one row is disqualified everywhere,
// including its first occurrence.
func disqualify(uniqueOnce bool, matches []rowMatch, role identity.Role, roster identity.Roster, byID map[string]identity.Record) map[string]string {
	if !uniqueOnce {
		return nil
	}
	occurrences := make(map[string]int)
	for _, m := range matches {
		ids := m.primary
		if role == identity.RoleSecondary {
			ids = m.secondary
		}
		for _, id := range ids {
			occurrences[id]++
		}
	}
	disqualified := make(map[string]string)
	for id, count := range occurrences {
		if count < 2 {
			continue
		}
		disqualified[id] = fmt.Sprintf("%s identity %s appears in %d rows but may appear only once",
			roster.DisplayLabel(), describeRecord(byID[id], id), count)
	}
	return disqualified
}

func cardinalityReason(label string, spec CountSpec, count int) string {
	if spec.Mode == CountExact && spec.N == unreachableCount {
		return fmt.Sprintf("expected %s count could not be derived: no row matched either roster", label)
	}
	switch spec.Mode {
	case CountAtLeastOne:
		return fmt.Sprintf("expected at least one %s identity, found %d", label, count)
	default:
		return fmt.Sprintf("expected %d %s identities, found %d", spec.N, label, count)
	}
}

func describeRecord(rec identity.Record, fallbackID string) string {
	if rec.DisplayName != "" {
		return fmt.Sprintf("%s (%s)", rec.DisplayName, rec.ID)
	}
	if rec.ID != "" {
		return rec.ID
	}
	return fallbackID
}

func dataCells(row []string, columns []classify.Classification) []string {
	cells := make([]string, 0, len(row))
	for col, c := range columns {
		if !c.IsIdentity() {
			cells = append(cells, row[col])
		}
	}
	return cells
}

func hydrate(ids []string, byID map[string]identity.Record) []identity.Record {
	records := make([]identity.Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, byID[id])
	}
	return records
}

func hydrateSuggestions(candidates []suggest.Candidate, byID map[string]identity.Record) []Suggestion {
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, Suggestion{Record: byID[c.ID], Confidence: c.Confidence})
	}
	return suggestions
}
