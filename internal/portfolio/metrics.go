package portfolio

import "github.com/bobmcallan/folio-portal/internal/models"

// Direction glyph hints for the average-return indicator.
const (
	DirectionUp      = "up"
	DirectionDown    = "down"
	DirectionNeutral = "neutral"
)

// ComputeMetrics derives the aggregate portfolio figures from a holdings
// list. It is a pure function; callers invoke it on each render rather than
// relying on implicit recomputation.
//
// A holding with a zero buy price has no defined return and contributes zero
// to the average. Genuine zero returns are ordinary terms; the aggregate is
// unchanged either way since a zero term adds nothing to the sum.
func ComputeMetrics(holdings []models.Holding) models.Metrics {
	m := models.Metrics{
		TotalStocks: len(holdings),
		Direction:   DirectionNeutral,
	}

	for _, h := range holdings {
		m.TotalValue += float64(h.Quantity) * h.CurrentPrice
	}

	if len(holdings) == 0 {
		return m
	}

	var sum float64
	for _, h := range holdings {
		if h.BuyPrice == 0 {
			continue
		}
		sum += ((h.CurrentPrice - h.BuyPrice) / h.BuyPrice) * 100
	}
	m.AverageReturn = sum / float64(len(holdings))
	m.Direction = ReturnDirection(m.AverageReturn)

	return m
}

// ReturnDirection maps an average return to its indicator glyph:
// strictly positive is up, strictly negative is down, exactly zero is neutral.
func ReturnDirection(avgReturn float64) string {
	switch {
	case avgReturn > 0:
		return DirectionUp
	case avgReturn < 0:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}
