// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-fetcher/internal/report"
)

var reportsCmd = &cobra.Command{
	Use:   "reports DATABASE [RUN_ID]",
	Short: "List or show reports saved to a SQLite file",
	Long: `Reports reads a database written with -f results.db. With only the
database it lists the stored runs, oldest first. With a run ID it prints
that run's report as a table.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runReports,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
}

func runReports(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening report database: %w", err)
	}
	store, err := report.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 2 {
		runID := args[1]
		rows, err := store.Rows(ctx, runID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("run %s: %w", runID, report.ErrNoResults)
		}
		return report.WriteTable(out, rows, report.TerminalWidth(out))
	}

	metas, err := store.Reports(ctx)
	if err != nil {
		return err
	}
	records := make([][]string, 0, len(metas))
	for _, m := range metas {
		rows, err := store.Rows(ctx, m.RunID)
		if err != nil {
			return err
		}
		records = append(records, []string{
			m.RunID, m.Query, m.CreatedAt.Format(time.RFC3339), strconv.Itoa(len(rows)),
		})
	}
	logger.Debug().Int("runs", len(records)).Str("file", path).Msg("listed reports")
	return report.RenderTable(out, []string{"Run ID", "Query", "Created", "Papers"}, records, report.TerminalWidth(out))
}
