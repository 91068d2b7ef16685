package ledger

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jsvantner/minca/internal/models"
)

// palette cycles through the category colors.
var palette = []drawing.Color{
	drawing.ColorFromHex("ff6384"),
	drawing.ColorFromHex("36a2eb"),
	drawing.ColorFromHex("ffce56"),
	drawing.ColorFromHex("4bc0c0"),
	drawing.ColorFromHex("9966ff"),
	drawing.ColorFromHex("ff9f40"),
}

// RenderPNG renders the dataset's primary series as a PNG bar or donut
// chart. The budget overlay stays a dataset-level concern; interactive
// consumers read it from the Dataset directly.
func RenderPNG(ds Dataset, kind models.ChartKind, title string) ([]byte, error) {
	if len(ds.Labels) == 0 || len(ds.Series) == 0 {
		return nil, fmt.Errorf("no categories to chart")
	}

	values := make([]chart.Value, len(ds.Labels))
	for i, label := range ds.Labels {
		v := 0.0
		if ds.Series[0].Values[i] != nil {
			v = ds.Series[0].Values[i].InexactFloat64()
		}
		values[i] = chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{
				FillColor:   palette[i%len(palette)].WithAlpha(64),
				StrokeColor: palette[i%len(palette)],
				StrokeWidth: 1,
			},
		}
	}

	var buf bytes.Buffer
	switch kind {
	case models.ChartDonut:
		graph := chart.DonutChart{
			Title:  title,
			Width:  450,
			Height: 450,
			Values: values,
		}
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("chart render failed: %w", err)
		}
	default:
		graph := chart.BarChart{
			Title:    title,
			Width:    900,
			Height:   400,
			BarWidth: 40,
			Background: chart.Style{
				Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
			},
			Bars: values,
		}
		if err := graph.Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("chart render failed: %w", err)
		}
	}

	return buf.Bytes(), nil
}
