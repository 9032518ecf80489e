// Package fieldindex builds the reverse lookup from (field, folded value) to
// the unique identity owning that value within one roster.
//
// A value owned by two or more identities is recorded as ambiguous rather
// than absent: ambiguity is a positive fact ("seen more than once") that
// must never resolve to either owner, and it is sticky for the life of the
// index. The index is built in a single pass and read-only afterwards.
package fieldindex

import (
	"rollcall/internal/identity"
	"rollcall/internal/textutil"
)

// State classifies the outcome of a Lookup.
type State int

const (
	// Unset means no identity in the roster holds the value for the field.
	Unset State = iota
	// Owned means exactly one identity holds the value.
	Owned
	// Ambiguous means two or more identities hold the value; the entry can
	// never match.
	Ambiguous
)

type entry struct {
	owner     identity.Normalized
	ambiguous bool
}

// Index is the per-roster reverse lookup.
type Index struct {
	role    identity.Role
	size    int
	entries map[identity.Field]map[string]entry
}

// Build indexes every non-blank field of every normalized identity.
func Build(role identity.Role, identities []identity.Normalized) *Index {
	ix := &Index{
		role:    role,
		size:    len(identities),
		entries: make(map[identity.Field]map[string]entry, len(identity.Fields())),
	}
	for _, field := range identity.Fields() {
		ix.entries[field] = make(map[string]entry)
	}
	for _, id := range identities {
		for _, field := range identity.Fields() {
			value := id.Value(field)
			if value == "" {
				continue
			}
			values := ix.entries[field]
			if existing, seen := values[value]; seen {
				// Second owner: collapse to ambiguous, permanently.
				existing.ambiguous = true
				values[value] = existing
				continue
			}
			values[value] = entry{owner: id}
		}
	}
	return ix
}

// Role returns the roster role the index was built for.
func (ix *Index) Role() identity.Role {
	return ix.role
}

// Size returns the number of identities indexed.
func (ix *Index) Size() int {
	return ix.size
}

// Lookup folds the value and reports who owns it for the field. The
// identity is meaningful only when the state is Owned.
func (ix *Index) Lookup(field identity.Field, value string) (identity.Normalized, State) {
	folded := textutil.Fold(value)
	if folded == "" {
		return identity.Normalized{}, Unset
	}
	e, ok := ix.entries[field][folded]
	if !ok {
		return identity.Normalized{}, Unset
	}
	if e.ambiguous {
		return identity.Normalized{}, Ambiguous
	}
	return e.owner, Owned
}
