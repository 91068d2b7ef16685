// Package forms implements the generic create/edit/delete workflow shared
// by transaction and category dialogs: one state machine parametrized by a
// declarative field schema instead of a hand-written copy per dialog.
package forms

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Field declares validation rules for one form field.
type Field struct {
	Name             string
	Required         bool
	Numeric          bool
	MinExclusiveZero bool
}

// Schema describes an editable entity's fields.
type Schema struct {
	Entity string
	Fields []Field

	// FlatMessageField names the field a flat 422 message maps onto when
	// the server returns no field map. The server is authoritative for
	// rules the client cannot check, e.g. category name uniqueness.
	FlatMessageField string
}

// Validate runs the client-side rules against form values and returns a
// field→message map, empty when everything passes.
func (s Schema) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, f := range s.Fields {
		raw := strings.TrimSpace(values[f.Name])

		if raw == "" {
			if f.Required {
				errs[f.Name] = f.Name + " is required"
			}
			continue
		}

		if f.Numeric {
			n, err := decimal.NewFromString(raw)
			if err != nil {
				errs[f.Name] = f.Name + " must be a number"
				continue
			}
			if f.MinExclusiveZero && !n.IsPositive() {
				errs[f.Name] = f.Name + " must be greater than zero"
			}
		}
	}
	return errs
}

// TransactionSchema declares the transaction dialog fields.
func TransactionSchema() Schema {
	return Schema{
		Entity: "transaction",
		Fields: []Field{
			{Name: "amount", Required: true, Numeric: true},
			{Name: "description", Required: true},
			{Name: "date", Required: true},
			{Name: "category_id", Required: true},
		},
	}
}

// CategorySchema declares the category dialog fields. Budget is optional
// but must be a positive number when present.
func CategorySchema() Schema {
	return Schema{
		Entity: "category",
		Fields: []Field{
			{Name: "name", Required: true},
			{Name: "budget", Numeric: true, MinExclusiveZero: true},
		},
		FlatMessageField: "name",
	}
}
