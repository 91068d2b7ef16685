package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsvantner/minca/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// fixtureSnapshot mirrors the canonical two-row scenario: one expense, one
// income.
func fixtureSnapshot() *models.LedgerSnapshot {
	return &models.LedgerSnapshot{
		TotalIncome:  dec("1200"),
		TotalExpense: dec("-40"),
		Transactions: []models.Transaction{
			{
				ID: 1, Amount: dec("-40"), Type: models.TypeExpense,
				Description: "obed", Date: models.NewDate(2024, time.May, 1),
				Category: models.Category{ID: 7, Name: "Food"},
			},
			{
				ID: 2, Amount: dec("1200"), Type: models.TypeIncome,
				Description: "vyplata", Date: models.NewDate(2024, time.May, 1),
				Category: models.Category{ID: 9, Name: "Salary"},
			},
		},
		ChartData: models.ChartData{
			Income: models.NewBucketMap(
				models.BucketEntry{Name: "Salary", Bucket: models.ChartBucket{ID: 9, TotalAmount: dec("1200")}},
			),
			Expense: models.NewBucketMap(
				models.BucketEntry{Name: "Food", Bucket: models.ChartBucket{ID: 7, TotalAmount: dec("-40")}},
			),
		},
	}
}

func TestEndToEndScenario(t *testing.T) {
	snap := fixtureSnapshot()

	if !snap.TotalIncome.Equal(dec("1200")) || !snap.TotalExpense.Equal(dec("-40")) {
		t.Fatal("fixture totals wrong")
	}
	if got := snap.Difference(); !got.Equal(dec("1160")) {
		t.Errorf("Difference() = %s, want 1160", got)
	}

	expense := FilterTransactions(snap.Transactions, models.FilterExpense)
	if len(expense) != 1 || expense[0].Category.Name != "Food" {
		t.Errorf("expense filter = %v, want single Food row", expense)
	}

	buckets := snap.ChartData.ForFilter(models.FilterExpense)
	food, ok := buckets.Get("Food")
	if !ok || !food.TotalAmount.Equal(dec("-40")) {
		t.Errorf("expense bucket = %v (present=%v), want Food -40", food, ok)
	}
}

func TestBucketSums_MatchSnapshotTotals(t *testing.T) {
	snap := fixtureSnapshot()

	for _, tc := range []struct {
		filter models.Filter
		total  decimal.Decimal
	}{
		{models.FilterIncome, snap.TotalIncome},
		{models.FilterExpense, snap.TotalExpense},
	} {
		buckets := snap.ChartData.ForFilter(tc.filter)
		sum := decimal.Zero
		for _, name := range buckets.Keys() {
			b, _ := buckets.Get(name)
			sum = sum.Add(b.TotalAmount)
		}
		if !sum.Equal(tc.total) {
			t.Errorf("bucket sum for %s = %s, want %s", tc.filter, sum, tc.total)
		}
	}
}

func TestFilterTransactions_ByTagNotSign(t *testing.T) {
	// A row whose amount sign disagrees with its tag still follows the tag.
	list := []models.Transaction{
		{ID: 1, Amount: dec("50"), Type: models.TypeExpense, Description: "refundovaný nákup"},
		{ID: 2, Amount: dec("-10"), Type: models.TypeExpense, Description: "káva"},
		{ID: 3, Amount: dec("900"), Type: models.TypeIncome, Description: "faktúra"},
	}

	expense := FilterTransactions(list, models.FilterExpense)
	if len(expense) != 2 {
		t.Fatalf("expense rows = %d, want 2 (tag-based, not sign-based)", len(expense))
	}

	all := FilterTransactions(list, models.FilterAll)
	if len(all) != 3 {
		t.Errorf("all rows = %d, want 3", len(all))
	}

	// The returned slice is a copy.
	all[0].Description = "mutated"
	if list[0].Description != "refundovaný nákup" {
		t.Error("FilterTransactions mutated its input")
	}
}

func overlaySnapshot() *models.LedgerSnapshot {
	return &models.LedgerSnapshot{
		TotalExpense: dec("-430"),
		ChartData: models.ChartData{
			Expense: models.NewBucketMap(
				models.BucketEntry{Name: "Jedlo", Bucket: models.ChartBucket{TotalAmount: dec("-340"), Budget: decPtr("400")}},
				models.BucketEntry{Name: "Zábava", Bucket: models.ChartBucket{TotalAmount: dec("-90")}},
			),
		},
	}
}

func TestBuildDataset_BudgetOverlayOnlyForExpenseBars(t *testing.T) {
	snap := overlaySnapshot()

	cases := []struct {
		filter  models.Filter
		kind    models.ChartKind
		overlay bool
	}{
		{models.FilterExpense, models.ChartBar, true},
		{models.FilterExpense, models.ChartDonut, false},
		{models.FilterIncome, models.ChartBar, false},
		{models.FilterAll, models.ChartBar, false},
	}
	for _, tc := range cases {
		ds := BuildDataset(snap, tc.filter, tc.kind)
		_, has := ds.BudgetOverlay()
		if has != tc.overlay {
			t.Errorf("overlay for filter=%s kind=%s = %v, want %v", tc.filter, tc.kind, has, tc.overlay)
		}
	}
}

func TestBuildDataset_OverlayGapsAndPairing(t *testing.T) {
	ds := BuildDataset(overlaySnapshot(), models.FilterExpense, models.ChartBar)

	if len(ds.Labels) != 2 || ds.Labels[0] != "Jedlo" || ds.Labels[1] != "Zábava" {
		t.Fatalf("labels = %v, want server bucket order [Jedlo Zábava]", ds.Labels)
	}

	primary := ds.Series[0]
	if primary.Values[0] == nil || !primary.Values[0].Equal(dec("340")) {
		t.Errorf("primary[0] = %v, want abs(-340) = 340", primary.Values[0])
	}
	if primary.Values[1] == nil || !primary.Values[1].Equal(dec("90")) {
		t.Errorf("primary[1] = %v, want 90", primary.Values[1])
	}

	overlay, ok := ds.BudgetOverlay()
	if !ok {
		t.Fatal("overlay missing")
	}
	if !overlay.Dashed || overlay.Opacity >= primary.Opacity {
		t.Error("overlay must be dashed and lower opacity than the primary series")
	}
	if overlay.Values[0] == nil || !overlay.Values[0].Equal(dec("400")) {
		t.Errorf("overlay[0] = %v, want 400 paired with Jedlo", overlay.Values[0])
	}
	// Absent budget contributes a gap, not zero.
	if overlay.Values[1] != nil {
		t.Errorf("overlay[1] = %v, want nil gap", overlay.Values[1])
	}
}

func TestBuildDataset_MissingBucketMapIsEmpty(t *testing.T) {
	snap := &models.LedgerSnapshot{} // no chart data at all

	ds := BuildDataset(snap, models.FilterExpense, models.ChartBar)
	if len(ds.Labels) != 0 {
		t.Errorf("labels = %v, want empty", ds.Labels)
	}

	ds = BuildDataset(nil, models.FilterAll, models.ChartDonut)
	if len(ds.Labels) != 0 {
		t.Errorf("labels for nil snapshot = %v, want empty", ds.Labels)
	}
}
