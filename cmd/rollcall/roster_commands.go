package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"rollcall/internal/identity"
	"rollcall/internal/logging"
	"rollcall/internal/rosterstore"
)

func newRosterCommand(ctx *commandContext) *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the stored reference rosters",
	}

	rosterCmd.AddCommand(newRosterImportCommand(ctx))
	rosterCmd.AddCommand(newRosterListCommand(ctx))
	rosterCmd.AddCommand(newRosterShowCommand(ctx))
	rosterCmd.AddCommand(newRosterClearCommand(ctx))

	return rosterCmd
}

func parseRoleArg(value string) (identity.Role, error) {
	role, ok := identity.ParseRole(value)
	if !ok {
		return "", fmt.Errorf("unknown roster role %q (use %s or %s)", value, identity.RolePrimary, identity.RoleSecondary)
	}
	return role, nil
}

func newRosterImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <role> <roster.csv>",
		Short: "Replace one roster from a CSV export",
		Long: `Import replaces the named roster wholesale. The CSV needs an "id"
column; display_name, full_name, login, email, and external_id columns are
picked up when present and other columns are ignored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRoleArg(args[0])
			if err != nil {
				return err
			}

			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open roster csv: %w", err)
			}
			defer file.Close()

			records, err := rosterstore.ParseRecordsCSV(file)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			batch, err := store.ReplaceRoster(context.Background(), role, records)
			if err != nil {
				return err
			}

			ctx.ensureLogger().Info("roster imported",
				logging.String("role", string(role)),
				logging.Int("members", len(records)),
				logging.String("batch", batch))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s roster members (batch %s)\n", len(records), role, batch)
			return nil
		},
	}
}

func newRosterListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show member counts for both rosters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			type rosterInfo struct {
				Role    identity.Role `json:"role"`
				Label   string        `json:"label"`
				Members int           `json:"members"`
			}
			labels := map[identity.Role]string{
				identity.RolePrimary:   cfg.Rosters.Primary.Label,
				identity.RoleSecondary: cfg.Rosters.Secondary.Label,
			}

			infos := make([]rosterInfo, 0, 2)
			for _, role := range identity.Roles() {
				count, err := store.Count(context.Background(), role)
				if err != nil {
					return err
				}
				infos = append(infos, rosterInfo{Role: role, Label: labels[role], Members: count})
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), infos)
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{string(info.Role), info.Label, strconv.Itoa(info.Members)})
			}
			writeRows(cmd.OutOrStdout(), []string{"Role", "Label", "Members"}, rows, 2)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit roster summaries as JSON")
	return cmd
}

func newRosterShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <role>",
		Short: "List one roster's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRoleArg(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Roster(context.Background(), role)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{rec.ID, rec.DisplayName, rec.Login, rec.Email, rec.ExternalID})
			}
			writeRows(cmd.OutOrStdout(), []string{"ID", "Display Name", "Login", "Email", "External ID"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit roster members as JSON")
	return cmd
}

func newRosterClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <role>",
		Short: "Remove every member of one roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRoleArg(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(context.Background(), role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared the %s roster\n", role)
			return nil
		},
	}
}
