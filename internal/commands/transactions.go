package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsvantner/minca/internal/models"
	"github.com/jsvantner/minca/internal/services/forms"
	"github.com/jsvantner/minca/internal/services/ledger"
)

func newTxCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "List and manage transactions",
	}
	cmd.AddCommand(newTxListCommand(app))
	cmd.AddCommand(newTxAddCommand(app))
	cmd.AddCommand(newTxEditCommand(app))
	cmd.AddCommand(newTxRmCommand(app))
	return cmd
}

func newTxListCommand(app *App) *cobra.Command {
	var filterStr, sortStr, dirStr, fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.Filter(filterStr)
			if !models.ValidFilter(filter) {
				return fmt.Errorf("unknown filter %q", filterStr)
			}
			key := models.SortKey(sortStr)
			if !models.ValidSortKey(key) {
				return fmt.Errorf("unknown sort key %q", sortStr)
			}
			dir := models.SortDirection(dirStr)
			if dir != models.SortAsc && dir != models.SortDesc {
				return fmt.Errorf("unknown sort direction %q", dirStr)
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

			rows := app.Sorter.Sort(ledger.FilterTransactions(snap.Transactions, filter), key, dir)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tDESCRIPTION\tAMOUNT")
			for _, t := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date, t.Category.Name, t.Description, t.Amount.StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\nincome: %s  expense: %s  difference: %s\n",
				snap.TotalIncome.StringFixed(2),
				snap.TotalExpense.StringFixed(2),
				snap.Difference().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&filterStr, "filter", string(models.FilterAll), "income, expense or all")
	cmd.Flags().StringVar(&sortStr, "sort", string(models.SortByDate), "date, amount, description or category")
	cmd.Flags().StringVar(&dirStr, "dir", string(models.SortDesc), "asc or desc")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD)")

	return cmd
}

// runTxForm drives the transaction dialog to completion for add and edit.
func runTxForm(app *App, cmd *cobra.Command, ctrl *forms.Controller, submit forms.SubmitFunc) error {
	err := ctrl.Submit(cmd.Context(), submit)
	switch ctrl.State() {
	case forms.StateSuccess:
		// Totals and chart buckets changed server-side, re-fetch.
		if err := app.Ledger.Refresh(cmd.Context(), models.Date{}, models.Date{}); err != nil {
			return describeAuthError(err)
		}
		return nil
	case forms.StateFieldError:
		printFieldErrors(ctrl.FieldErrors())
		return err
	default:
		return describeAuthError(err)
	}
}

func newTxAddCommand(app *App) *cobra.Command {
	var amount, description, date, category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := forms.NewController(forms.TransactionSchema(), app.Logger)
			ctrl.Open()
			ctrl.SetField("amount", amount)
			ctrl.SetField("description", description)
			ctrl.SetField("date", date)
			ctrl.SetField("category_id", category)

			return runTxForm(app, cmd, ctrl, func(ctx context.Context, values map[string]string) error {
				input, err := transactionInputFromValues(values)
				if err != nil {
					return err
				}
				return app.Client.CreateTransaction(ctx, input)
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "signed amount, negative for expenses (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&description, "description", "", "description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&date, "date", models.Today().String(), "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "category id (required)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newTxEditCommand(app *App) *cobra.Command {
	var id int64
	var amount, description, date, category string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update an existing transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := forms.NewController(forms.TransactionSchema(), app.Logger)
			ctrl.OpenWith(id, map[string]string{
				"amount":      amount,
				"description": description,
				"date":        date,
				"category_id": category,
			})

			return runTxForm(app, cmd, ctrl, func(ctx context.Context, values map[string]string) error {
				input, err := transactionInputFromValues(values)
				if err != nil {
					return err
				}
				return app.Client.UpdateTransaction(ctx, ctrl.RecordID(), input)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "transaction id (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&amount, "amount", "", "signed amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&description, "description", "", "description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD) (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&category, "category", "", "category id (required)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newTxRmCommand(app *App) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := forms.NewController(forms.TransactionSchema(), app.Logger)
			ctrl.OpenWith(id, nil)

			err := ctrl.Delete(cmd.Context(), func(ctx context.Context) error {
				return app.Client.DeleteTransaction(ctx, ctrl.RecordID())
			})
			if err != nil {
				return describeAuthError(err)
			}

			if err := app.Ledger.Refresh(cmd.Context(), models.Date{}, models.Date{}); err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("transaction %d deleted\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "transaction id (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
