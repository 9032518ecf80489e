package identity

import "rollcall/internal/textutil"

// Normalized is the folded comparison form of a Record. The identifier is
// kept verbatim; every descriptive field is trimmed and case-folded, with
// missing source fields held as empty strings.
type Normalized struct {
	ID     string
	values map[Field]string
}

// Value returns the folded value of the named field, or "" when the field
// was elided or blank.
func (n Normalized) Value(field Field) string {
	return n.values[field]
}

// FieldValues returns the non-blank folded values in field declaration
// order, used to build the identity's suggestion token bag.
func (n Normalized) FieldValues() []string {
	values := make([]string, 0, len(n.values))
	for _, field := range Fields() {
		if v := n.values[field]; v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Normalize folds every record into its comparison form, then elides
// descriptive fields that duplicate an earlier field across the whole
// roster. A field pair counts as duplicate only when the values are equal
// for every record and the later field still carries at least one non-blank
// value; the later field is blanked for all records and the scan repeats
// until no such pair remains. Each pass blanks a field that had content, so
// the loop terminates.
func Normalize(records []Record) []Normalized {
	normalized := make([]Normalized, len(records))
	for i, rec := range records {
		values := make(map[Field]string, len(Fields()))
		for _, field := range Fields() {
			values[field] = textutil.Fold(rec.Value(field))
		}
		normalized[i] = Normalized{ID: rec.ID, values: values}
	}

	for {
		later, found := duplicateField(normalized)
		if !found {
			break
		}
		for i := range normalized {
			normalized[i].values[later] = ""
		}
	}

	return normalized
}

// duplicateField finds the first field pair (in declaration order) whose
// values agree for every record, returning the later-declared field of the
// pair. Pairs whose later field is already blank everywhere are skipped;
// blanking them again would make no progress.
func duplicateField(normalized []Normalized) (Field, bool) {
	if len(normalized) == 0 {
		return "", false
	}
	fields := Fields()
	for i := 0; i < len(fields); i++ {
		for j := i + 1; j < len(fields); j++ {
			equal := true
			hasContent := false
			for _, n := range normalized {
				if n.values[fields[i]] != n.values[fields[j]] {
					equal = false
					break
				}
				if n.values[fields[j]] != "" {
					hasContent = true
				}
			}
			if equal && hasContent {
				return fields[j], true
			}
		}
	}
	return "", false
}
