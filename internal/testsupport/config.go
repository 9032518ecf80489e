// Package testsupport provides shared builders for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"rollcall/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with a unique temp roster database per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.RosterDB = filepath.Join(t.TempDir(), "rosters.db")
	cfg.Rosters.Primary.Label = "students"
	cfg.Rosters.Secondary.Label = "staff"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithExpected sets both rosters' expected-count specifiers.
func WithExpected(primary, secondary string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Rosters.Primary.Expected = primary
		cfg.Rosters.Secondary.Expected = secondary
	}
}
