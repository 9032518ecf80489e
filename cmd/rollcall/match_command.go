package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rollcall/internal/classify"
	"rollcall/internal/identity"
	"rollcall/internal/resolve"
	"rollcall/internal/tabular"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var primaryExpected, secondaryExpected string
	var uniquePrimary, uniqueSecondary bool
	var threshold float64
	var suggestionLimit int

	cmd := &cobra.Command{
		Use:   "match <table.csv>",
		Short: "Resolve table rows against the stored rosters",
		Long: `Match reads a CSV table, infers which columns carry identity values,
resolves every row against the imported rosters, and reports the matched and
unmatched partitions. Unmatched rows include rejection reasons and ranked
candidate suggestions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			table, err := tabular.ReadCSVFile(args[0], tabular.ReadOptions{TrimCells: true})
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			primary, err := store.Roster(context.Background(), identity.RolePrimary)
			if err != nil {
				return err
			}
			secondary, err := store.Roster(context.Background(), identity.RoleSecondary)
			if err != nil {
				return err
			}

			policy, err := cfg.Policy()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("primary-expected") {
				spec, err := resolve.ParseCountSpec(primaryExpected)
				if err != nil {
					return err
				}
				policy.Primary.Expected = spec
			}
			if cmd.Flags().Changed("secondary-expected") {
				spec, err := resolve.ParseCountSpec(secondaryExpected)
				if err != nil {
					return err
				}
				policy.Secondary.Expected = spec
			}
			if cmd.Flags().Changed("unique-primary") {
				policy.Primary.UniqueOnce = uniquePrimary
			}
			if cmd.Flags().Changed("unique-secondary") {
				policy.Secondary.UniqueOnce = uniqueSecondary
			}

			classifyOpts := classify.Options{Threshold: cfg.Matching.ColumnMatchThreshold}
			if cmd.Flags().Changed("threshold") {
				classifyOpts.Threshold = threshold
			}
			limit := cfg.Matching.SuggestionLimit
			if cmd.Flags().Changed("suggestions") {
				limit = suggestionLimit
			}

			report, err := resolve.Run(logger, resolve.Request{
				Table:     table,
				Primary:   identity.Roster{Role: identity.RolePrimary, Label: cfg.Rosters.Primary.Label, Records: primary},
				Secondary: identity.Roster{Role: identity.RoleSecondary, Label: cfg.Rosters.Secondary.Label, Records: secondary},
				Policy:    policy,
				Classify:  classifyOpts,
			})
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			renderReport(cmd.OutOrStdout(), cfg, report, limit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full report as JSON")
	cmd.Flags().StringVar(&primaryExpected, "primary-expected", "", "Override the primary roster expected count (any, at-least-one, auto, or an integer)")
	cmd.Flags().StringVar(&secondaryExpected, "secondary-expected", "", "Override the secondary roster expected count")
	cmd.Flags().BoolVar(&uniquePrimary, "unique-primary", false, "Disqualify primary identities appearing in more than one row")
	cmd.Flags().BoolVar(&uniqueSecondary, "unique-secondary", false, "Disqualify secondary identities appearing in more than one row")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Override the column classification threshold (0-1]")
	cmd.Flags().IntVar(&suggestionLimit, "suggestions", 0, "Ranked candidates shown per roster for unmatched rows (0 shows all)")
	return cmd
}
