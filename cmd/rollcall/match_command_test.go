package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"rollcall/internal/resolve"
)

const gradesCSV = `student,ta,score
jdoe,pquinn,90
jsmith,pquinn,85
alee,sreed,70
`

func TestMatchResolvesAllRows(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRosters(t, env)
	table := writeTestFile(t, env.baseDir, "grades.csv", gradesCSV)

	out, _, err := runCLI(t, []string{"match", table}, env.configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}

	requireContains(t, out, "Rows: 3 matched, 0 unmatched")
	requireContains(t, out, "students=1 staff=any")
	requireContains(t, out, "Jane Doe (s1)")
	requireContains(t, out, "Pat Quinn (t1)")
	if strings.Contains(out, "Unmatched rows:") {
		t.Fatalf("unexpected unmatched section: %q", out)
	}
}

func TestMatchReportsUnmatchedRowWithSuggestions(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRosters(t, env)
	table := writeTestFile(t, env.baseDir, "grades.csv", `student,ta,score
jdoe,pquinn,90
jsmith,pquinn,85
alee,sreed,70
jane doe,,50
`)

	out, _, err := runCLI(t, []string{"match", table}, env.configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}

	requireContains(t, out, "Rows: 3 matched, 1 unmatched")
	requireContains(t, out, "row 4: jane doe |  | 50")
	requireContains(t, out, "expected 1 students identities, found 0")
	// s1 was consumed by the accepted first row, so the top candidate for
	// "jane doe" falls back to the remaining roster members.
	if strings.Contains(out, "Jane Doe (s1) ") {
		t.Fatalf("consumed identity offered as a suggestion: %q", out)
	}
}

func TestMatchJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRosters(t, env)
	table := writeTestFile(t, env.baseDir, "grades.csv", gradesCSV)

	out, _, err := runCLI(t, []string{"match", table, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("match --json: %v", err)
	}

	var report struct {
		Matched   []json.RawMessage `json:"matched"`
		Unmatched []json.RawMessage `json:"unmatched"`
		Resolved  struct {
			Mode string `json:"mode"`
			N    int    `json:"n"`
		} `json:"resolved_primary"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\noutput: %s", err, out)
	}
	if len(report.Matched) != 3 || len(report.Unmatched) != 0 {
		t.Fatalf("expected 3 matched and 0 unmatched, got %d/%d", len(report.Matched), len(report.Unmatched))
	}
}

func TestMatchPolicyFlagOverrides(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRosters(t, env)
	table := writeTestFile(t, env.baseDir, "grades.csv", `student,ta,score
jdoe,pquinn,90
jdoe,sreed,85
`)

	// Without uniqueness both rows resolve.
	out, _, err := runCLI(t, []string{"match", table}, env.configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "Rows: 2 matched, 0 unmatched")

	// Uniqueness disqualifies the repeated identity retroactively: both of
	// its rows are rejected, not just the second.
	out, _, err = runCLI(t, []string{"match", table, "--unique-primary"}, env.configPath)
	if err != nil {
		t.Fatalf("match --unique-primary: %v", err)
	}
	requireContains(t, out, "Rows: 0 matched, 2 unmatched")
	requireContains(t, out, "appears in 2 rows but may appear only once")
}

func TestMatchFailsWithoutRosters(t *testing.T) {
	env := setupCLITestEnv(t)
	table := writeTestFile(t, env.baseDir, "grades.csv", gradesCSV)

	_, _, err := runCLI(t, []string{"match", table}, env.configPath)
	if err == nil {
		t.Fatal("expected an error when no rosters are imported")
	}
}

func TestClassifyListsColumns(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRosters(t, env)
	table := writeTestFile(t, env.baseDir, "grades.csv", gradesCSV)

	out, _, err := runCLI(t, []string{"classify", table}, env.configPath)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "students.login")
	requireContains(t, out, "staff.login")
	requireContains(t, out, "score")
}

func TestClassifyRefusesEmptyRosters(t *testing.T) {
	env := setupCLITestEnv(t)
	table := writeTestFile(t, env.baseDir, "grades.csv", gradesCSV)

	out, _, err := runCLI(t, []string{"classify", table}, env.configPath)
	if !errors.Is(err, resolve.ErrNoIdentities) {
		t.Fatalf("err = %v, want ErrNoIdentities", err)
	}
	if strings.Contains(out, "data") {
		t.Fatalf("classify printed a classification despite empty rosters: %q", out)
	}
}
