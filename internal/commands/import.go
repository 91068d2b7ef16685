package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsvantner/minca/internal/models"
	"github.com/jsvantner/minca/internal/services/importer"
)

func newImportCommand(app *App) *cobra.Command {
	var bankStr, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk import transactions from a bank CSV export",
		RunE: func(cmd *cobra.Command, args []string) error {
			o := importer.NewOrchestrator(app.Client, app.Logger)
			summary, err := o.Run(cmd.Context(), importer.Bank(bankStr), file)
			if err != nil {
				return describeAuthError(err)
			}

			fmt.Printf("processed %d: %d imported, %d duplicates, %d failed\n",
				summary.Processed, summary.Imported, summary.Duplicates, summary.Failed)
			for _, line := range importer.DisplayErrors(summary) {
				fmt.Printf("  %s\n", line)
			}
			if summary.Failed > importer.MaxDisplayedErrors {
				fmt.Printf("  ... and %d more\n", summary.Failed-importer.MaxDisplayedErrors)
			}

			// A 2xx import always triggers a re-fetch, even at zero imports.
			if err := app.Ledger.Refresh(cmd.Context(), models.Date{}, models.Date{}); err != nil {
				return describeAuthError(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bankStr, "bank", "", "source bank: lunar or revolut (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().StringVar(&file, "file", "", "path to the CSV export (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
