package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jsvantner/minca/internal/models"
)

// FilterTransactions returns the subset whose type tag matches the filter.
// Filtering is purely by the tag, never by amount sign: a row whose sign
// disagrees with its tag still follows the tag, both fields are
// authoritative from the server.
func FilterTransactions(list []models.Transaction, filter models.Filter) []models.Transaction {
	if filter == models.FilterAll {
		out := make([]models.Transaction, len(list))
		copy(out, list)
		return out
	}

	out := make([]models.Transaction, 0, len(list))
	for _, tx := range list {
		if string(tx.Type) == string(filter) {
			out = append(out, tx)
		}
	}
	return out
}

// Series is one labeled data run within a chart dataset. Values are pointers
// so an absent budget renders as a gap rather than a zero bar.
type Series struct {
	Label   string
	Values  []*decimal.Decimal
	Dashed  bool
	Opacity float64
}

// Dataset is the chart-ready structure: category labels in the server's
// bucket order plus one or two index-paired series.
type Dataset struct {
	Labels []string
	Series []Series
}

// BudgetOverlay returns the budget series when present.
func (d Dataset) BudgetOverlay() (Series, bool) {
	if len(d.Series) < 2 {
		return Series{}, false
	}
	return d.Series[1], true
}

// BuildDataset turns a snapshot's bucket map for the active filter into a
// chart dataset. The primary series holds abs(total_amount) per category;
// a dashed lower-opacity budget overlay is added only for a bar chart of
// expenses. A missing bucket map yields an empty dataset, not an error.
func BuildDataset(snap *models.LedgerSnapshot, filter models.Filter, kind models.ChartKind) Dataset {
	var buckets models.BucketMap
	if snap != nil {
		buckets = snap.ChartData.ForFilter(filter)
	}

	labels := buckets.Keys()

	primaryLabel := "Total Expense"
	if filter == models.FilterIncome {
		primaryLabel = "Total Income"
	}

	primary := Series{
		Label:   primaryLabel,
		Values:  make([]*decimal.Decimal, len(labels)),
		Opacity: 1.0,
	}
	for i, name := range labels {
		b, _ := buckets.Get(name)
		v := b.TotalAmount.Abs()
		primary.Values[i] = &v
	}

	ds := Dataset{
		Labels: labels,
		Series: []Series{primary},
	}

	if kind == models.ChartBar && filter == models.FilterExpense {
		overlay := Series{
			Label:   "Category Budget",
			Values:  make([]*decimal.Decimal, len(labels)),
			Dashed:  true,
			Opacity: 0.3,
		}
		for i, name := range labels {
			b, _ := buckets.Get(name)
			if b.Budget != nil {
				v := *b.Budget
				overlay.Values[i] = &v
			}
		}
		ds.Series = append(ds.Series, overlay)
	}

	return ds
}
