package rosterstore

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"rollcall/internal/identity"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "rosters.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestReplaceRosterRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	records := []identity.Record{
		{ID: "s1", DisplayName: "Jane Doe", Login: "jdoe", Email: "jd@example.edu"},
		{ID: "s2", DisplayName: "Ann Lee", Login: "alee"},
	}
	batch, err := store.ReplaceRoster(ctx, identity.RolePrimary, records)
	if err != nil {
		t.Fatalf("ReplaceRoster: %v", err)
	}
	if batch == "" {
		t.Error("ReplaceRoster returned an empty batch id")
	}

	got, err := store.Roster(ctx, identity.RolePrimary)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip = %+v, want %+v", got, records)
	}
}

func TestReplaceRosterPreservesOrderAndIsolation(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	primary := []identity.Record{{ID: "z9"}, {ID: "a1"}, {ID: "m5"}}
	if _, err := store.ReplaceRoster(ctx, identity.RolePrimary, primary); err != nil {
		t.Fatalf("ReplaceRoster primary: %v", err)
	}
	if _, err := store.ReplaceRoster(ctx, identity.RoleSecondary, []identity.Record{{ID: "t1"}}); err != nil {
		t.Fatalf("ReplaceRoster secondary: %v", err)
	}

	got, err := store.Roster(ctx, identity.RolePrimary)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	// Import order, not identifier order: the engine's declaration-order
	// tie-breaks depend on it.
	if len(got) != 3 || got[0].ID != "z9" || got[1].ID != "a1" || got[2].ID != "m5" {
		t.Errorf("order = %+v, want import order [z9 a1 m5]", got)
	}

	count, err := store.Count(ctx, identity.RoleSecondary)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("secondary count = %d, want 1", count)
	}
}

func TestReplaceRosterOverwrites(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.ReplaceRoster(ctx, identity.RolePrimary, []identity.Record{{ID: "old"}}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := store.ReplaceRoster(ctx, identity.RolePrimary, []identity.Record{{ID: "new"}}); err != nil {
		t.Fatalf("second import: %v", err)
	}

	got, err := store.Roster(ctx, identity.RolePrimary)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("roster after reimport = %+v, want only the new record", got)
	}
}

func TestReplaceRosterRejectsMissingID(t *testing.T) {
	store := openStore(t)
	_, err := store.ReplaceRoster(context.Background(), identity.RolePrimary, []identity.Record{{DisplayName: "No ID"}})
	if err == nil {
		t.Fatal("ReplaceRoster accepted a record without an identifier")
	}
}

func TestClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.ReplaceRoster(ctx, identity.RolePrimary, []identity.Record{{ID: "s1"}}); err != nil {
		t.Fatalf("ReplaceRoster: %v", err)
	}
	if err := store.Clear(ctx, identity.RolePrimary); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	count, err := store.Count(ctx, identity.RolePrimary)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("count after clear = %d, want 0", count)
	}
}

func TestParseRecordsCSV(t *testing.T) {
	input := strings.Join([]string{
		"id,display_name,login,email,homeroom",
		"s1,Jane Doe,jdoe,jd@example.edu,3B",
		"s2,Ann Lee,alee,,4A",
	}, "\n")

	records, err := ParseRecordsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRecordsCSV: %v", err)
	}
	want := []identity.Record{
		{ID: "s1", DisplayName: "Jane Doe", Login: "jdoe", Email: "jd@example.edu"},
		{ID: "s2", DisplayName: "Ann Lee", Login: "alee"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %+v, want %+v (extra column ignored)", records, want)
	}
}

func TestParseRecordsCSVValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing id column", "login\njdoe\n"},
		{"empty id cell", "id,login\n,jdoe\n"},
		{"duplicate id", "id\ns1\ns1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRecordsCSV(strings.NewReader(tt.input)); err == nil {
				t.Error("ParseRecordsCSV accepted invalid input")
			}
		})
	}
}
