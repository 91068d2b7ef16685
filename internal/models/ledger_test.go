package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBucketMap_PreservesServerKeyOrder(t *testing.T) {
	// Deliberately not alphabetical: display order must follow the server.
	raw := `{"Zmrzlina":{"total_amount":-12.5},"Auto":{"total_amount":-340},"Jedlo":{"total_amount":-88.2,"budget":200}}`

	var m BucketMap
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"Zmrzlina", "Auto", "Jedlo"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	b, ok := m.Get("Jedlo")
	if !ok {
		t.Fatal("Jedlo bucket missing")
	}
	if b.Budget == nil || !b.Budget.Equal(dec("200")) {
		t.Errorf("Jedlo budget = %v, want 200", b.Budget)
	}
	if zb, _ := m.Get("Zmrzlina"); zb.Budget != nil {
		t.Errorf("Zmrzlina budget = %v, want absent", zb.Budget)
	}
}

func TestBucketMap_MarshalRoundTripKeepsOrder(t *testing.T) {
	m := NewBucketMap(
		BucketEntry{Name: "B", Bucket: ChartBucket{TotalAmount: dec("-1")}},
		BucketEntry{Name: "A", Bucket: ChartBucket{TotalAmount: dec("-2")}},
	)

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back BucketMap
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys := back.Keys()
	if keys[0] != "B" || keys[1] != "A" {
		t.Errorf("round-trip keys = %v, want [B A]", keys)
	}
}

func TestBucketMap_NullIsEmpty(t *testing.T) {
	var m BucketMap
	if err := json.Unmarshal([]byte(`null`), &m); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d for null, want 0", m.Len())
	}
}

func TestChartData_ForFilter(t *testing.T) {
	cd := ChartData{
		Expense: NewBucketMap(BucketEntry{Name: "Jedlo", Bucket: ChartBucket{TotalAmount: dec("-40")}}),
	}

	if got := cd.ForFilter(FilterExpense); got.Len() != 1 {
		t.Errorf("expense map Len() = %d, want 1", got.Len())
	}
	// Income was never populated and "all" has no bucket map: both must be
	// empty maps, not errors.
	if got := cd.ForFilter(FilterIncome); got.Len() != 0 {
		t.Errorf("income map Len() = %d, want 0", got.Len())
	}
	if got := cd.ForFilter(FilterAll); got.Len() != 0 {
		t.Errorf("all map Len() = %d, want 0", got.Len())
	}
}

func TestLedgerSnapshot_Difference(t *testing.T) {
	s := &LedgerSnapshot{
		TotalIncome:  dec("1200"),
		TotalExpense: dec("-40"),
	}
	if got := s.Difference(); !got.Equal(dec("1160")) {
		t.Errorf("Difference() = %s, want 1160", got)
	}

	// Signed sum, never re-signed: negative net stays negative.
	s = &LedgerSnapshot{TotalIncome: dec("100.50"), TotalExpense: dec("-250.25")}
	if got := s.Difference(); !got.Equal(dec("-149.75")) {
		t.Errorf("Difference() = %s, want -149.75", got)
	}
}

func TestDate_ParseFormats(t *testing.T) {
	d, err := ParseDate("2024-05-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-05-01" {
		t.Errorf("String() = %q", d.String())
	}

	// RFC 3339 timestamps collapse to the date.
	d2, err := ParseDate("2024-05-01T15:04:05Z")
	if err != nil {
		t.Fatalf("ParseDate RFC3339: %v", err)
	}
	if d.Compare(d2) != 0 {
		t.Errorf("date-only compare: %s != %s", d, d2)
	}

	if _, err := ParseDate("yesterday"); err == nil {
		t.Error("ParseDate accepted garbage")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.May, 1)
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2024-05-01"` {
		t.Errorf("marshal = %s", out)
	}

	var back Date
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if back.Compare(d) != 0 {
		t.Errorf("round-trip mismatch: %s != %s", back, d)
	}
}

func TestEnumValidation(t *testing.T) {
	if !ValidFilter(FilterAll) || ValidFilter("everything") {
		t.Error("ValidFilter misclassifies")
	}
	if !ValidSortKey(SortByCategory) || ValidSortKey("colour") {
		t.Error("ValidSortKey misclassifies")
	}
	if !ValidChartKind(ChartDonut) || ValidChartKind("pie3d") {
		t.Error("ValidChartKind misclassifies")
	}
	if !ValidTransactionType(TypeExpense) || ValidTransactionType("EXPENSE") {
		t.Error("ValidTransactionType misclassifies")
	}
}
