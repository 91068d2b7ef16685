// Package interfaces defines service contracts for minca
package interfaces

import (
	"context"
	"io"

	"github.com/jsvantner/minca/internal/models"
)

// SessionSource provides the bearer token for authenticated calls. It
// returns models.ErrAuthMissing when no session is stored.
type SessionSource interface {
	Token() (string, error)
}

// LedgerClient is the ledger repository boundary: it fetches snapshots and
// categories for a date range and issues create/update/delete/import calls.
// The server owns all business rules; the client only maps responses and
// errors.
type LedgerClient interface {
	// GetSnapshot retrieves totals, transactions and chart buckets for a
	// date range.
	GetSnapshot(ctx context.Context, from, to models.Date) (*models.LedgerSnapshot, error)

	// GetCategories retrieves the user's category list.
	GetCategories(ctx context.Context) ([]models.Category, error)

	// CreateTransaction creates a transaction from form values.
	CreateTransaction(ctx context.Context, input models.TransactionInput) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, id int64, input models.TransactionInput) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, id int64) error

	// CreateCategory creates a category and returns the stored record so
	// in-memory lists can be appended without a re-fetch.
	CreateCategory(ctx context.Context, input models.CategoryInput) (*models.Category, error)

	// UpdateCategory updates a category and returns the stored record.
	UpdateCategory(ctx context.Context, id int64, input models.CategoryInput) (*models.Category, error)

	// DeleteCategory removes a category. Returns a ConflictError when the
	// category still has dependent transactions.
	DeleteCategory(ctx context.Context, id int64) error

	// Import uploads a bank CSV for bulk import and returns the server's
	// reconciliation summary.
	Import(ctx context.Context, bank string, filename string, file io.Reader) (*models.ImportSummary, error)
}

// AuthClient handles the unauthenticated session endpoints.
type AuthClient interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, login, password string) (string, error)

	// Signup registers a new account and returns a bearer token. A 422
	// response carries a field-keyed error map.
	Signup(ctx context.Context, input models.SignupInput) (string, error)
}
