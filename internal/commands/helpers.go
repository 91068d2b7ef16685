package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jsvantner/minca/internal/models"
)

// dateRange parses the optional --from/--to flags. An empty flag stays the
// zero date, which the client omits from the query string.
func dateRange(fromStr, toStr string) (models.Date, models.Date, error) {
	var from, to models.Date
	var err error
	if fromStr != "" {
		if from, err = models.ParseDate(fromStr); err != nil {
			return from, to, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if toStr != "" {
		if to, err = models.ParseDate(toStr); err != nil {
			return from, to, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	return from, to, nil
}

// transactionInputFromValues converts validated form values into the API
// payload. The form schema guarantees presence and numeric shape, so parse
// failures here indicate a schema gap.
func transactionInputFromValues(values map[string]string) (models.TransactionInput, error) {
	var input models.TransactionInput

	amount, err := decimal.NewFromString(values["amount"])
	if err != nil {
		return input, fmt.Errorf("invalid amount %q: %w", values["amount"], err)
	}
	date, err := models.ParseDate(values["date"])
	if err != nil {
		return input, fmt.Errorf("invalid date %q: %w", values["date"], err)
	}
	categoryID, err := strconv.ParseInt(values["category_id"], 10, 64)
	if err != nil {
		return input, fmt.Errorf("invalid category id %q: %w", values["category_id"], err)
	}

	input.Amount = amount
	input.Description = values["description"]
	input.Date = date
	input.CategoryID = categoryID
	return input, nil
}

// categoryInputFromValues converts validated form values into the API
// payload. A blank budget is omitted from the payload entirely.
func categoryInputFromValues(values map[string]string) (models.CategoryInput, error) {
	input := models.CategoryInput{Name: values["name"]}
	if values["budget"] != "" {
		budget, err := decimal.NewFromString(values["budget"])
		if err != nil {
			return input, fmt.Errorf("invalid budget %q: %w", values["budget"], err)
		}
		input.Budget = &budget
	}
	return input, nil
}

// printFieldErrors renders a 422 or client-side validation failure.
func printFieldErrors(errs map[string]string) {
	fmt.Println("validation failed:")
	for field, msg := range errs {
		fmt.Printf("  %s: %s\n", field, msg)
	}
}

// describeAuthError rewrites the missing-session failure into an
// actionable message; any other error passes through.
func describeAuthError(err error) error {
	if models.IsAuthMissing(err) {
		return fmt.Errorf("not logged in, run `minca login` first")
	}
	return err
}
