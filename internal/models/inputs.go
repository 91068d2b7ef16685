package models

import "github.com/shopspring/decimal"

// TransactionInput is the payload for transaction create/update calls.
type TransactionInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
	CategoryID  int64           `json:"category_id"`
}

// CategoryInput is the payload for category create/update calls. Budget is
// omitted entirely when the user left it blank.
type CategoryInput struct {
	Name   string           `json:"name"`
	Budget *decimal.Decimal `json:"budget,omitempty"`
}

// SignupInput is the payload for account registration.
type SignupInput struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
