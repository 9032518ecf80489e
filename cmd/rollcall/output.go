package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"rollcall/internal/classify"
	"rollcall/internal/config"
	"rollcall/internal/identity"
	"rollcall/internal/resolve"
)

// stdoutIsTerminal guards the fancier table rendering; piped output gets
// plain lines that are easier to grep.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func renderReport(out io.Writer, cfg *config.Config, report *resolve.Report, suggestionLimit int) {
	primaryLabel := cfg.Rosters.Primary.Label
	secondaryLabel := cfg.Rosters.Secondary.Label

	fmt.Fprintf(out, "Columns: %d identity, %d data\n",
		countIdentityColumns(report.Columns), len(report.DataHeaders))
	fmt.Fprintf(out, "Expected per row: %s=%s %s=%s\n",
		primaryLabel, report.ResolvedPrimary.String(),
		secondaryLabel, report.ResolvedSecondary.String())
	fmt.Fprintf(out, "Rows: %d matched, %d unmatched\n\n",
		len(report.Matched), len(report.Unmatched))

	renderColumns(out, report.Columns, primaryLabel, secondaryLabel)

	if len(report.Matched) > 0 {
		fmt.Fprintln(out, "\nMatched rows:")
		renderMatched(out, report, primaryLabel, secondaryLabel)
	}
	if len(report.Unmatched) > 0 {
		fmt.Fprintln(out, "\nUnmatched rows:")
		renderUnmatched(out, report, primaryLabel, secondaryLabel, suggestionLimit)
	}
}

func countIdentityColumns(columns []classify.Classification) int {
	count := 0
	for _, c := range columns {
		if c.IsIdentity() {
			count++
		}
	}
	return count
}

func renderColumns(out io.Writer, columns []classify.Classification, primaryLabel, secondaryLabel string) {
	headers := []string{"#", "Header", "Kind", "Bound To"}
	rows := make([][]string, 0, len(columns))
	for _, c := range columns {
		binding := ""
		if c.IsIdentity() {
			binding = roleLabel(c.Role, primaryLabel, secondaryLabel) + "." + string(c.Field)
		}
		rows = append(rows, []string{strconv.Itoa(c.Column), c.Header, string(c.Kind), binding})
	}
	writeRows(out, headers, rows, 0)
}

func renderMatched(out io.Writer, report *resolve.Report, primaryLabel, secondaryLabel string) {
	headers := []string{"Row", primaryLabel, secondaryLabel, "Data"}
	rows := make([][]string, 0, len(report.Matched))
	for _, m := range report.Matched {
		rows = append(rows, []string{
			strconv.Itoa(m.Index + 1),
			recordNames(m.Primary),
			recordNames(m.Secondary),
			strings.Join(m.DataCells, " | "),
		})
	}
	writeRows(out, headers, rows, 0)
}

func renderUnmatched(out io.Writer, report *resolve.Report, primaryLabel, secondaryLabel string, limit int) {
	for _, u := range report.Unmatched {
		fmt.Fprintf(out, "  row %d: %s\n", u.Index+1, strings.Join(u.Cells, " | "))
		for _, reason := range u.Reasons {
			fmt.Fprintf(out, "    - %s\n", reason)
		}
		renderSuggestions(out, primaryLabel, u.PrimarySuggestions, limit)
		renderSuggestions(out, secondaryLabel, u.SecondarySuggestions, limit)
	}
}

func renderSuggestions(out io.Writer, label string, suggestions []resolve.Suggestion, limit int) {
	if len(suggestions) == 0 {
		return
	}
	shown := suggestions
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	parts := make([]string, 0, len(shown))
	for _, s := range shown {
		parts = append(parts, fmt.Sprintf("%s %d%%", recordName(s.Record), s.Confidence))
	}
	fmt.Fprintf(out, "    %s candidates: %s\n", label, strings.Join(parts, ", "))
}

// writeRows renders a bordered table on a terminal and tab-separated lines
// otherwise.
func writeRows(out io.Writer, headers []string, rows [][]string, rightCols ...int) {
	if stdoutIsTerminal() {
		fmt.Fprintln(out, renderTable(headers, rows, rightCols...))
		return
	}
	fmt.Fprintln(out, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}

// writeJSON encodes v as indented JSON, one document per invocation.
func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func roleLabel(role identity.Role, primaryLabel, secondaryLabel string) string {
	if role == identity.RoleSecondary {
		return secondaryLabel
	}
	return primaryLabel
}

func recordNames(records []identity.Record) string {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, recordName(rec))
	}
	return strings.Join(names, ", ")
}

func recordName(rec identity.Record) string {
	if rec.DisplayName != "" {
		return fmt.Sprintf("%s (%s)", rec.DisplayName, rec.ID)
	}
	return rec.ID
}
