package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsvantner/minca/internal/models"
)

func TestValidateFile(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		size     int64
		ok       bool
	}{
		{"empty selection", "", 10, false},
		{"txt extension", "export.txt", 10, false},
		{"no extension", "export", 10, false},
		{"csv ok", "export.csv", 10, true},
		{"uppercase extension", "EXPORT.CSV", 10, true},
		{"exactly at limit", "export.csv", 1048576, true},
		{"one byte over", "export.csv", 1048577, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFile(tc.fileName, tc.size)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidBank(t *testing.T) {
	assert.True(t, ValidBank(BankLunar))
	assert.True(t, ValidBank(BankRevolut))
	assert.False(t, ValidBank("monzo"))
	assert.False(t, ValidBank(""))
}

// importClient records the upload and returns a scripted summary.
type importClient struct {
	models.ImportSummary
	err      error
	called   bool
	gotBank  string
	gotName  string
	gotBytes int
}

func (c *importClient) Import(ctx context.Context, bank, filename string, file io.Reader) (*models.ImportSummary, error) {
	c.called = true
	c.gotBank = bank
	c.gotName = filename
	data, _ := io.ReadAll(file)
	c.gotBytes = len(data)
	if c.err != nil {
		return nil, c.err
	}
	return &c.ImportSummary, nil
}

func (c *importClient) GetSnapshot(context.Context, models.Date, models.Date) (*models.LedgerSnapshot, error) {
	return nil, nil
}
func (c *importClient) GetCategories(context.Context) ([]models.Category, error) { return nil, nil }
func (c *importClient) CreateTransaction(context.Context, models.TransactionInput) error {
	return nil
}
func (c *importClient) UpdateTransaction(context.Context, int64, models.TransactionInput) error {
	return nil
}
func (c *importClient) DeleteTransaction(context.Context, int64) error { return nil }
func (c *importClient) CreateCategory(context.Context, models.CategoryInput) (*models.Category, error) {
	return nil, nil
}
func (c *importClient) UpdateCategory(context.Context, int64, models.CategoryInput) (*models.Category, error) {
	return nil, nil
}
func (c *importClient) DeleteCategory(context.Context, int64) error { return nil }

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_UploadsValidFile(t *testing.T) {
	client := &importClient{ImportSummary: models.ImportSummary{Processed: 4, Imported: 4}}
	o := NewOrchestrator(client, nil)

	path := writeTempCSV(t, "lunar export.csv", "Date,Amount\n")
	summary, err := o.Run(context.Background(), BankLunar, path)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Imported)
	assert.Equal(t, "lunar", client.gotBank)
	assert.Equal(t, "lunar export.csv", client.gotName)
	assert.Equal(t, len("Date,Amount\n"), client.gotBytes)
}

func TestRun_RejectsBeforeUpload(t *testing.T) {
	client := &importClient{}
	o := NewOrchestrator(client, nil)

	path := writeTempCSV(t, "export.txt", "not a csv")
	_, err := o.Run(context.Background(), BankRevolut, path)
	require.Error(t, err)
	assert.False(t, client.called, "invalid file must not be uploaded")

	_, err = o.Run(context.Background(), "monzo", writeTempCSV(t, "x.csv", "a"))
	require.Error(t, err)
	assert.False(t, client.called)
}

func TestRun_ZeroImportsStillSucceeds(t *testing.T) {
	// All rows deduplicated server-side: still a success, the caller
	// re-fetches the ledger regardless.
	client := &importClient{ImportSummary: models.ImportSummary{Processed: 5, Duplicates: 5}}
	o := NewOrchestrator(client, nil)

	summary, err := o.Run(context.Background(), BankLunar, writeTempCSV(t, "x.csv", "a"))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Imported)
	assert.Equal(t, 5, summary.Duplicates)
}

func TestRun_ServerErrorPassedThrough(t *testing.T) {
	client := &importClient{err: &models.APIError{StatusCode: 500, Message: "Import zlyhal"}}
	o := NewOrchestrator(client, nil)

	_, err := o.Run(context.Background(), BankLunar, writeTempCSV(t, "x.csv", "a"))
	require.Error(t, err)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Import zlyhal", apiErr.Message)
}

func TestDisplayErrors_CappedAtFive(t *testing.T) {
	var errs []string
	for i := 1; i <= 8; i++ {
		errs = append(errs, fmt.Sprintf("row %d: bad amount", i))
	}
	s := &models.ImportSummary{Failed: 8, Errors: errs}

	shown := DisplayErrors(s)
	require.Len(t, shown, 5)
	assert.Equal(t, "row 1: bad amount", shown[0])
	assert.Equal(t, "row 5: bad amount", shown[4])

	short := &models.ImportSummary{Errors: []string{"only one"}}
	assert.Len(t, DisplayErrors(short), 1)
	assert.Nil(t, DisplayErrors(nil))
}
