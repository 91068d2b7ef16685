// Package importer orchestrates CSV bulk imports: client-side file checks,
// the multipart upload, and presentation of the server's reconciliation
// summary.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsvantner/minca/internal/common"
	"github.com/jsvantner/minca/internal/interfaces"
	"github.com/jsvantner/minca/internal/models"
)

// MaxFileSize is the upload limit in bytes.
const MaxFileSize = 1 << 20

// MaxDisplayedErrors caps how many server error lines are shown per
// import attempt.
const MaxDisplayedErrors = 5

// Bank identifies the source bank format. Parsing itself is server-side;
// the client only forwards the selector.
type Bank string

const (
	BankLunar   Bank = "lunar"
	BankRevolut Bank = "revolut"
)

// ValidBank returns true if b is a supported bank selector.
func ValidBank(b Bank) bool {
	return b == BankLunar || b == BankRevolut
}

// ValidateFile runs the pre-upload checks: a file must be selected, carry a
// .csv extension (any case) and fit the size limit. No network call happens
// when any of these fail.
func ValidateFile(name string, size int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("a file is required")
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return fmt.Errorf("only CSV files are supported")
	}
	if size > MaxFileSize {
		return fmt.Errorf("file exceeds the 1 MB limit")
	}
	return nil
}

// Orchestrator drives one import attempt end to end.
type Orchestrator struct {
	client interfaces.LedgerClient
	logger *common.Logger
}

// NewOrchestrator creates an import orchestrator.
func NewOrchestrator(client interfaces.LedgerClient, logger *common.Logger) *Orchestrator {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Orchestrator{client: client, logger: logger}
}

// Run validates and uploads the file at path, returning the server's
// summary. A 2xx response always warrants a ledger re-fetch by the caller,
// even at zero imports: the server may have deduplicated everything against
// existing rows.
func (o *Orchestrator) Run(ctx context.Context, bank Bank, path string) (*models.ImportSummary, error) {
	if !ValidBank(bank) {
		return nil, fmt.Errorf("unknown bank %q", bank)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat import file: %w", err)
	}
	if err := ValidateFile(info.Name(), info.Size()); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	summary, err := o.client.Import(ctx, string(bank), info.Name(), f)
	if err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("bank", string(bank)).
		Int("processed", summary.Processed).
		Int("imported", summary.Imported).
		Int("duplicates", summary.Duplicates).
		Int("failed", summary.Failed).
		Msg("import completed")
	return summary, nil
}

// DisplayErrors returns at most MaxDisplayedErrors entries from the
// summary for presentation.
func DisplayErrors(s *models.ImportSummary) []string {
	if s == nil || len(s.Errors) <= MaxDisplayedErrors {
		if s == nil {
			return nil
		}
		return s.Errors
	}
	return s.Errors[:MaxDisplayedErrors]
}
