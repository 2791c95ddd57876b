package models

import "time"

// seriesTimeLayouts are the timestamp formats the stocks service emits for
// historical points (intraday first, then daily bars).
var seriesTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// SeriesPoint is one historical price observation.
type SeriesPoint struct {
	Datetime string  `json:"datetime"`
	Close    float64 `json:"close"`
}

// Time parses the point's datetime. The zero time is returned when the
// value matches none of the service's known layouts.
func (p SeriesPoint) Time() time.Time {
	for _, layout := range seriesTimeLayouts {
		if t, err := time.Parse(layout, p.Datetime); err == nil {
			return t
		}
	}
	return time.Time{}
}

// InsightSeries is the historical price series for one ticker.
// The stocks service returns values newest-first; consumers that chart the
// series reverse it into chronological order.
type InsightSeries struct {
	Values []SeriesPoint `json:"values"`
}

// Chronological returns the series points oldest-first without mutating the
// original slice.
func (s InsightSeries) Chronological() []SeriesPoint {
	out := make([]SeriesPoint, len(s.Values))
	for i, p := range s.Values {
		out[len(s.Values)-1-i] = p
	}
	return out
}

// InsightSnapshot is the full insights lookup built by one batch fetch.
// Tickers preserves fetch order so the UI can pick a stable default tab.
type InsightSnapshot struct {
	Tickers []string                 `json:"tickers"`
	Series  map[string]InsightSeries `json:"series"`
}
