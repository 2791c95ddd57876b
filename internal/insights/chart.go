package insights

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/folio-portal/internal/models"
)

// RenderChart renders a PNG line chart for one ticker's historical series,
// annotated with dashed horizontal buy-price and current-price lines.
// The service delivers points newest-first; they are reversed into
// chronological order before plotting. Returns raw PNG bytes.
func RenderChart(ticker string, series models.InsightSeries, buyPrice, currentPrice float64, showGrid bool) ([]byte, error) {
	points := series.Chronological()
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points for %s, got %d", ticker, len(points))
	}

	xValues := make([]time.Time, 0, len(points))
	yValues := make([]float64, 0, len(points))
	for _, p := range points {
		t := p.Time()
		if t.IsZero() {
			continue
		}
		xValues = append(xValues, t)
		yValues = append(yValues, p.Close)
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("series for %s has no parseable timestamps", ticker)
	}

	priceSeries := chart.TimeSeries{
		Name: fmt.Sprintf("%s Price", ticker),
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("4bc0c0"), // teal
			StrokeWidth: 2.0,
		},
		XValues: xValues,
		YValues: yValues,
	}

	gridStyle := chart.Style{Hidden: true}
	if showGrid {
		gridStyle = chart.Style{
			StrokeColor: drawing.ColorFromHex("c8c8c8").WithAlpha(128),
			StrokeWidth: 1.0,
		}
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Price History", ticker),
		Width:  900,
		Height: 420,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition:   chart.TickPositionBetweenTicks,
			GridMajorStyle: gridStyle,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 2 15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			GridMajorStyle: gridStyle,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			priceSeries,
			priceLine("Buy Price", buyPrice, xValues, "ff6384"),     // red
			priceLine("Current Price", currentPrice, xValues, "36a2eb"), // blue
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// priceLine builds a dashed horizontal annotation line spanning the series.
func priceLine(name string, price float64, xValues []time.Time, colorHex string) chart.TimeSeries {
	return chart.TimeSeries{
		Name: fmt.Sprintf("%s %.2f", name, price),
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex(colorHex),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{6.0, 6.0},
		},
		XValues: []time.Time{xValues[0], xValues[len(xValues)-1]},
		YValues: []float64{price, price},
	}
}
