package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsvantner/minca/internal/models"
	"github.com/jsvantner/minca/internal/services/export"
	"github.com/jsvantner/minca/internal/services/ledger"
)

func newExportCommand(app *App) *cobra.Command {
	var filterStr, fromStr, toStr, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.Filter(filterStr)
			if !models.ValidFilter(filter) {
				return fmt.Errorf("unknown filter %q", filterStr)
			}
			from, to, err := dateRange(fromStr, toStr)
			if err != nil {
				return err
			}

			if err := app.Ledger.Refresh(cmd.Context(), from, to); err != nil {
				return describeAuthError(err)
			}
			snap := app.Ledger.Store().Snapshot()
			if snap == nil {
				return fmt.Errorf("no ledger data")
			}

			rows := ledger.FilterTransactions(snap.Transactions, filter)
			if out == "" {
				out = export.Filename(from, to)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			if err := export.WriteCSV(f, rows); err != nil {
				return err
			}
			fmt.Printf("wrote %d transaction(s) to %s\n", len(rows), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&filterStr, "filter", string(models.FilterAll), "income, expense or all")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "", "output path, derived from the range when empty")

	return cmd
}
