package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rollcall/internal/config"
	"rollcall/internal/identity"
	"rollcall/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(homeDir, ".config", "rollcall", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
roster_db = %q

[rosters.primary]
label = %q
expected = %q

[rosters.secondary]
label = %q
expected = %q

[logging]
level = %q
format = "console"
`,
		cfg.Paths.RosterDB,
		cfg.Rosters.Primary.Label, cfg.Rosters.Primary.Expected,
		cfg.Rosters.Secondary.Label, cfg.Rosters.Secondary.Expected,
		cfg.Logging.Level,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// seedRosters loads both rosters straight into the store, bypassing the
// import command, for tests that exercise match and classify.
func seedRosters(t *testing.T, env *cliTestEnv) {
	t.Helper()
	store := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SeedRoster(t, store, identity.RolePrimary, []identity.Record{
		{ID: "s1", DisplayName: "Jane Doe", Login: "jdoe", Email: "jane@example.edu"},
		{ID: "s2", DisplayName: "John Smith", Login: "jsmith", Email: "john@example.edu"},
		{ID: "s3", DisplayName: "Ann Lee", Login: "alee", Email: "ann@example.edu"},
	})
	testsupport.SeedRoster(t, store, identity.RoleSecondary, []identity.Record{
		{ID: "t1", DisplayName: "Pat Quinn", Login: "pquinn"},
		{ID: "t2", DisplayName: "Sam Reed", Login: "sreed"},
	})
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
