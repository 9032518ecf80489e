package testsupport

import (
	"context"
	"testing"

	"rollcall/internal/config"
	"rollcall/internal/identity"
	"rollcall/internal/rosterstore"
)

// MustOpenStore opens the config's roster database and closes it when the
// test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *rosterstore.Store {
	t.Helper()

	store, err := rosterstore.Open(cfg.Paths.RosterDB)
	if err != nil {
		t.Fatalf("open roster store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedRoster imports records for a role, failing the test on error.
func SeedRoster(t testing.TB, store *rosterstore.Store, role identity.Role, records []identity.Record) {
	t.Helper()

	if _, err := store.ReplaceRoster(context.Background(), role, records); err != nil {
		t.Fatalf("seed %s roster: %v", role, err)
	}
}
