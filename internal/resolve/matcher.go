package resolve

import (
	"rollcall/internal/classify"
	"rollcall/internal/fieldindex"
	"rollcall/internal/identity"
)

// MatchCell resolves one cell under its column's classification. Data
// columns never perform a lookup; identity columns return an identity only
// when the index entry is concretely owned. Ambiguous entries yield no
// match, silently: refusing to guess between two owners is the point of the
// ambiguity marker.
func MatchCell(c classify.Classification, cell string, primary, secondary *fieldindex.Index) (identity.Normalized, bool) {
	if !c.IsIdentity() {
		return identity.Normalized{}, false
	}
	var ix *fieldindex.Index
	switch c.Role {
	case identity.RolePrimary:
		ix = primary
	case identity.RoleSecondary:
		ix = secondary
	}
	if ix == nil {
		return identity.Normalized{}, false
	}
	owner, state := ix.Lookup(c.Field, cell)
	if state != fieldindex.Owned {
		return identity.Normalized{}, false
	}
	return owner, true
}
