package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsvantner/minca/internal/models"
	"github.com/jsvantner/minca/internal/services/ledger"
)

func newChartCommand(app *App) *cobra.Command {
	var kindStr, filterStr, fromStr, toStr, out string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render per-category totals as a PNG chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := models.ChartKind(kindStr)
			if !models.ValidChartKind(kind) {
				return fmt.Errorf("unknown chart kind %q", kindStr)
			}
			filter := models.Filter(filterStr)
			if filter != models.FilterIncome && filter != models.FilterExpense {
				return fmt.Errorf("chart filter must be income or expense, got %q", filterStr)
			}
			from, to, err := dateRange(fromStr, toStr)
			if err != nil {
				return err
			}

			if err := app.Ledger.Refresh(cmd.Context(), from, to); err != nil {
				return describeAuthError(err)
			}

			ds := ledger.BuildDataset(app.Ledger.Store().Snapshot(), filter, kind)
			png, err := ledger.RenderPNG(ds, kind, fmt.Sprintf("%s by category", filter))
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Printf("wrote chart to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindStr, "kind", string(models.ChartDonut), "bar or donut")
	cmd.Flags().StringVar(&filterStr, "filter", string(models.FilterExpense), "income or expense")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "chart.png", "output PNG path")

	return cmd
}
