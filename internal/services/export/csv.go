// Package export serializes the current ledger view to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jsvantner/minca/internal/models"
)

// Header is the CSV header for exported transactions.
const Header = "Category,Description,Date,Amount"

// WriteCSV writes the header and one row per transaction in the given
// order: category name, description, YYYY-MM-DD date, amount with exactly
// two decimal places. Fields are quoted per RFC 4180, so commas, quotes and
// newlines in free-text descriptions survive a round trip.
func WriteCSV(w io.Writer, transactions []models.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range transactions {
		row := []string{
			tx.Category.Name,
			tx.Description,
			tx.Date.String(),
			tx.Amount.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ExportString renders the CSV as a string.
func ExportString(transactions []models.Transaction) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, transactions); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Filename returns the conventional export file name for a date range.
func Filename(from, to models.Date) string {
	return fmt.Sprintf("transactions_%s_to_%s.csv", from, to)
}
