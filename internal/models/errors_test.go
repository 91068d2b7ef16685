package models

import (
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	wrapped := fmt.Errorf("refresh ledger: %w", ErrAuthMissing)
	if !IsAuthMissing(wrapped) {
		t.Error("IsAuthMissing failed to unwrap")
	}

	ve := &ValidationError{Message: "Category name already exists", Fields: map[string]string{"name": "Category name already exists"}}
	if got, ok := AsValidation(fmt.Errorf("save category: %w", ve)); !ok || got.Fields["name"] == "" {
		t.Error("AsValidation failed to unwrap")
	}

	ce := &ConflictError{Message: "category has dependent transactions"}
	if got, ok := AsConflict(fmt.Errorf("delete category: %w", ce)); !ok || got.Message == "" {
		t.Error("AsConflict failed to unwrap")
	}

	// A plain API error is none of the specific kinds.
	api := &APIError{StatusCode: 500, Endpoint: "/transactions", Message: "boom"}
	if _, ok := AsValidation(api); ok {
		t.Error("APIError misdetected as validation")
	}
	if _, ok := AsConflict(api); ok {
		t.Error("APIError misdetected as conflict")
	}
	if IsAuthMissing(api) {
		t.Error("APIError misdetected as auth missing")
	}
}
