package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsvantner/minca/internal/models"
	"github.com/jsvantner/minca/internal/services/forms"
)

func newCategoryCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "List and manage categories",
	}
	cmd.AddCommand(newCategoryListCommand(app))
	cmd.AddCommand(newCategoryAddCommand(app))
	cmd.AddCommand(newCategoryEditCommand(app))
	cmd.AddCommand(newCategoryRmCommand(app))
	return cmd
}

func newCategoryListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories and budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Ledger.Refresh(cmd.Context(), models.Date{}, models.Date{}); err != nil {
				return describeAuthError(err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBUDGET")
			for _, c := range app.Ledger.Store().Categories() {
				budget := "-"
				if c.Budget != nil {
					budget = c.Budget.StringFixed(2)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, budget)
			}
			return w.Flush()
		},
	}
}

// runCategoryForm submits the category dialog. On success the confirmed
// record is folded into the in-memory list without a full re-fetch.
func runCategoryForm(app *App, cmd *cobra.Command, ctrl *forms.Controller, submit forms.SubmitFunc, saved **models.Category) error {
	err := ctrl.Submit(cmd.Context(), submit)
	switch ctrl.State() {
	case forms.StateSuccess:
		if *saved != nil {
			app.Ledger.Store().UpsertCategory(**saved)
			fmt.Printf("category %q saved (id %d)\n", (*saved).Name, (*saved).ID)
		}
		return nil
	case forms.StateFieldError:
		printFieldErrors(ctrl.FieldErrors())
		return err
	default:
		return describeAuthError(err)
	}
}

func newCategoryAddCommand(app *App) *cobra.Command {
	var name, budget string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := forms.NewController(forms.CategorySchema(), app.Logger)
			ctrl.Open()
			ctrl.SetField("name", name)
			ctrl.SetField("budget", budget)

			var saved *models.Category
			return runCategoryForm(app, cmd, ctrl, func(ctx context.Context, values map[string]string) error {
				input, err := categoryInputFromValues(values)
				if err != nil {
					return err
				}
				cat, err := app.Client.CreateCategory(ctx, input)
				if err != nil {
					return err
				}
				saved = cat
				return nil
			}, &saved)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&budget, "budget", "", "monthly budget, blank for none")

	return cmd
}

func newCategoryEditCommand(app *App) *cobra.Command {
	var id int64
	var name, budget string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := forms.NewController(forms.CategorySchema(), app.Logger)
			ctrl.OpenWith(id, map[string]string{"name": name, "budget": budget})

			var saved *models.Category
			return runCategoryForm(app, cmd, ctrl, func(ctx context.Context, values map[string]string) error {
				input, err := categoryInputFromValues(values)
				if err != nil {
					return err
				}
				cat, err := app.Client.UpdateCategory(ctx, ctrl.RecordID(), input)
				if err != nil {
					return err
				}
				saved = cat
				return nil
			}, &saved)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "category id (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&name, "name", "", "category name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&budget, "budget", "", "monthly budget, blank for none")

	return cmd
}

func newCategoryRmCommand(app *App) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := forms.NewController(forms.CategorySchema(), app.Logger)
			ctrl.OpenWith(id, nil)

			err := ctrl.Delete(cmd.Context(), func(ctx context.Context) error {
				return app.Client.DeleteCategory(ctx, ctrl.RecordID())
			})
			if err != nil {
				if ce, ok := models.AsConflict(err); ok {
					return fmt.Errorf("cannot delete category %d: %s", id, ce.Message)
				}
				return describeAuthError(err)
			}

			if err := app.Ledger.Refresh(cmd.Context(), models.Date{}, models.Date{}); err != nil {
				return describeAuthError(err)
			}
			fmt.Printf("category %d deleted\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "category id (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
