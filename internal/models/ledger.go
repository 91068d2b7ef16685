// Package models defines the ledger domain types shared across minca
package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType tags a transaction as income or expense. The tag and the
// sign of Amount both come from the server; neither is recomputed from the
// other on the client.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ValidTransactionType returns true if t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	return t == TypeIncome || t == TypeExpense
}

// Filter selects which transaction kinds a view shows.
type Filter string

const (
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
	FilterAll     Filter = "all"
)

// ValidFilter returns true if f is a known filter.
func ValidFilter(f Filter) bool {
	return f == FilterIncome || f == FilterExpense || f == FilterAll
}

// ChartKind selects the chart presentation.
type ChartKind string

const (
	ChartBar   ChartKind = "bar"
	ChartDonut ChartKind = "donut"
)

// ValidChartKind returns true if k is a known chart kind.
func ValidChartKind(k ChartKind) bool {
	return k == ChartBar || k == ChartDonut
}

// SortKey selects the ledger table column to order by.
type SortKey string

const (
	SortByDate        SortKey = "date"
	SortByAmount      SortKey = "amount"
	SortByDescription SortKey = "description"
	SortByCategory    SortKey = "category"
)

// ValidSortKey returns true if k is a known sort key.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortByDate, SortByAmount, SortByDescription, SortByCategory:
		return true
	default:
		return false
	}
}

// SortDirection is the ordering direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Category is a user-defined transaction grouping with an optional monthly
// budget. Name uniqueness is enforced server-side and surfaces as a 422.
type Category struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Budget *decimal.Decimal `json:"budget,omitempty"`
}

// Transaction is a single ledger entry. Amount is signed: positive for
// income, negative for expense.
type Transaction struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	Category    Category        `json:"category"`
}

// ChartBucket is the aggregated total (and optional budget) for one
// category within the active filter.
type ChartBucket struct {
	ID          int64            `json:"id,omitempty"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

// BucketMap maps category name to bucket, preserving the key order of the
// server's JSON object. Category display order is the server's iteration
// order, so a plain Go map would lose the contract.
type BucketMap struct {
	keys    []string
	buckets map[string]ChartBucket
}

// NewBucketMap builds a BucketMap from ordered name/bucket pairs.
func NewBucketMap(pairs ...BucketEntry) BucketMap {
	var m BucketMap
	for _, p := range pairs {
		m.Set(p.Name, p.Bucket)
	}
	return m
}

// BucketEntry is one named bucket, used to construct ordered maps.
type BucketEntry struct {
	Name   string
	Bucket ChartBucket
}

// Len returns the number of categories in the map.
func (m BucketMap) Len() int {
	return len(m.keys)
}

// Keys returns the category names in insertion order.
func (m BucketMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the bucket for name.
func (m BucketMap) Get(name string) (ChartBucket, bool) {
	b, ok := m.buckets[name]
	return b, ok
}

// Set inserts or replaces a bucket, appending new names at the end.
func (m *BucketMap) Set(name string, b ChartBucket) {
	if m.buckets == nil {
		m.buckets = make(map[string]ChartBucket)
	}
	if _, exists := m.buckets[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.buckets[name] = b
}

// UnmarshalJSON decodes a JSON object while recording its key order.
func (m *BucketMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("bucket map: %w", err)
	}
	if tok == nil {
		*m = BucketMap{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("bucket map: expected object, got %v", tok)
	}

	*m = BucketMap{buckets: make(map[string]ChartBucket)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("bucket map key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("bucket map: non-string key %v", keyTok)
		}
		var b ChartBucket
		if err := dec.Decode(&b); err != nil {
			return fmt.Errorf("bucket %q: %w", key, err)
		}
		m.Set(key, b)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("bucket map: %w", err)
	}
	return nil
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m BucketMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(m.buckets[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ChartData holds the per-filter bucket maps returned with a snapshot.
type ChartData struct {
	Income  BucketMap `json:"income"`
	Expense BucketMap `json:"expense"`
}

// ForFilter returns the bucket map for the given filter. Filters without a
// bucket map (all, or a map the server omitted) yield an empty map.
func (c ChartData) ForFilter(f Filter) BucketMap {
	switch f {
	case FilterIncome:
		return c.Income
	case FilterExpense:
		return c.Expense
	default:
		return BucketMap{}
	}
}

// LedgerSnapshot is the unit returned by one transactions fetch: totals,
// rows and chart buckets for a date range. TotalExpense is signed the same
// way the server reports it.
type LedgerSnapshot struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Transactions []Transaction   `json:"transactions"`
	ChartData    ChartData       `json:"chart_data"`
}

// Difference returns the net of income and expense. Both totals are signed
// values from the server, so this is a plain sum with no re-signing.
func (s *LedgerSnapshot) Difference() decimal.Decimal {
	return s.TotalIncome.Add(s.TotalExpense)
}

// ImportSummary reports the outcome of one CSV bulk import.
type ImportSummary struct {
	Processed  int      `json:"processed"`
	Imported   int      `json:"imported"`
	Duplicates int      `json:"duplicates"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}
