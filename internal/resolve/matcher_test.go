package resolve

import (
	"testing"

	"rollcall/internal/classify"
	"rollcall/internal/fieldindex"
	"rollcall/internal/identity"
)

func TestMatchCell(t *testing.T) {
	primary := fieldindex.Build(identity.RolePrimary, identity.Normalize([]identity.Record{
		{ID: "s1", Login: "jdoe"},
		{ID: "s2", DisplayName: "Morgan"},
		{ID: "s3", DisplayName: "Morgan"},
	}))
	secondary := fieldindex.Build(identity.RoleSecondary, identity.Normalize([]identity.Record{
		{ID: "t1", Login: "mprof"},
	}))

	loginCol := classify.Classification{
		Kind: classify.KindIdentity, Role: identity.RolePrimary, Field: identity.FieldLogin,
	}
	nameCol := classify.Classification{
		Kind: classify.KindIdentity, Role: identity.RolePrimary, Field: identity.FieldDisplayName,
	}
	staffCol := classify.Classification{
		Kind: classify.KindIdentity, Role: identity.RoleSecondary, Field: identity.FieldLogin,
	}
	dataCol := classify.Classification{Kind: classify.KindData}

	t.Run("owned value matches", func(t *testing.T) {
		owner, ok := MatchCell(loginCol, " JDOE ", primary, secondary)
		if !ok || owner.ID != "s1" {
			t.Errorf("MatchCell = (%s, %v), want (s1, true)", owner.ID, ok)
		}
	})

	t.Run("ambiguous value never matches", func(t *testing.T) {
		if _, ok := MatchCell(nameCol, "Morgan", primary, secondary); ok {
			t.Error("ambiguous value produced a match")
		}
	})

	t.Run("unknown value never matches", func(t *testing.T) {
		if _, ok := MatchCell(loginCol, "stranger", primary, secondary); ok {
			t.Error("unknown value produced a match")
		}
	})

	t.Run("data column skips lookup", func(t *testing.T) {
		if _, ok := MatchCell(dataCol, "jdoe", primary, secondary); ok {
			t.Error("data column produced a match")
		}
	})

	t.Run("role selects the index", func(t *testing.T) {
		owner, ok := MatchCell(staffCol, "mprof", primary, secondary)
		if !ok || owner.ID != "t1" {
			t.Errorf("MatchCell = (%s, %v), want (t1, true)", owner.ID, ok)
		}
	})
}
