package main

import (
	"context"

	"github.com/spf13/cobra"

	"rollcall/internal/classify"
	"rollcall/internal/fieldindex"
	"rollcall/internal/identity"
	"rollcall/internal/resolve"
	"rollcall/internal/tabular"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var threshold float64

	cmd := &cobra.Command{
		Use:   "classify <table.csv>",
		Short: "Show how table columns would be classified, without resolving rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

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
			// Classifying against nothing would tag every column as data,
			// which is a refusal case, not a result.
			if len(primary) == 0 && len(secondary) == 0 {
				return resolve.ErrNoIdentities
			}

			opts := classify.Options{Threshold: cfg.Matching.ColumnMatchThreshold}
			if cmd.Flags().Changed("threshold") {
				opts.Threshold = threshold
			}

			primaryIndex := fieldindex.Build(identity.RolePrimary, identity.Normalize(primary))
			secondaryIndex := fieldindex.Build(identity.RoleSecondary, identity.Normalize(secondary))
			columns := classify.Columns(ctx.ensureLogger(), table, primaryIndex, secondaryIndex, opts)

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), columns)
			}
			renderColumns(cmd.OutOrStdout(), columns, cfg.Rosters.Primary.Label, cfg.Rosters.Secondary.Label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit classifications as JSON")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Override the column classification threshold (0-1]")
	return cmd
}
