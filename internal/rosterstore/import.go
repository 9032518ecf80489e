package rosterstore

import (
	"fmt"
	"io"

	"rollcall/internal/identity"
	"rollcall/internal/tabular"
	"rollcall/internal/textutil"
)

// ParseRecordsCSV reads roster records from a CSV with a header row. The
// header must contain an "id" column; the descriptive columns
// (display_name, full_name, login, email, external_id) are optional and
// matched by folded header name. Unrecognized columns are ignored so roster
// exports with extra columns import cleanly.
func ParseRecordsCSV(r io.Reader) ([]identity.Record, error) {
	table, err := tabular.ReadCSV(r, tabular.ReadOptions{TrimCells: true})
	if err != nil {
		return nil, err
	}

	idCol := -1
	fieldCols := make(map[identity.Field]int)
	for i, header := range table.Headers {
		name := textutil.Fold(header)
		if name == "id" {
			idCol = i
			continue
		}
		for _, field := range identity.Fields() {
			if name == string(field) {
				fieldCols[field] = i
			}
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("roster csv: missing required column %q", "id")
	}

	records := make([]identity.Record, 0, table.RowCount())
	seen := make(map[string]int)
	for i, row := range table.Rows {
		id := row[idCol]
		if id == "" {
			return nil, fmt.Errorf("roster csv: row %d has an empty id", i+1)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("roster csv: rows %d and %d share id %q", prev+1, i+1, id)
		}
		seen[id] = i

		rec := identity.Record{ID: id}
		for field, col := range fieldCols {
			switch field {
			case identity.FieldDisplayName:
				rec.DisplayName = row[col]
			case identity.FieldFullName:
				rec.FullName = row[col]
			case identity.FieldLogin:
				rec.Login = row[col]
			case identity.FieldEmail:
				rec.Email = row[col]
			case identity.FieldExternalID:
				rec.ExternalID = row[col]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
