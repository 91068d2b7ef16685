package ledger

import (
	"bytes"
	"testing"

	"github.com/jsvantner/minca/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderPNG_BarAndDonut(t *testing.T) {
	ds := BuildDataset(overlaySnapshot(), models.FilterExpense, models.ChartBar)

	for _, kind := range []models.ChartKind{models.ChartBar, models.ChartDonut} {
		out, err := RenderPNG(ds, kind, "Total Expense by Category")
		if err != nil {
			t.Fatalf("RenderPNG(%s): %v", kind, err)
		}
		if !bytes.HasPrefix(out, pngMagic) {
			t.Errorf("RenderPNG(%s) did not produce PNG bytes", kind)
		}
	}
}

func TestRenderPNG_EmptyDataset(t *testing.T) {
	ds := BuildDataset(nil, models.FilterAll, models.ChartBar)
	if _, err := RenderPNG(ds, models.ChartBar, "empty"); err == nil {
		t.Error("RenderPNG accepted an empty dataset")
	}
}
