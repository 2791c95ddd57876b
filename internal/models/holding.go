package models

// Holding is a single owned stock position as returned by the stocks service.
// The service assigns the ID on creation and resolves the display name and
// prices from its market-data provider; the portal never invents these fields.
type Holding struct {
	ID           int64   `json:"id"`
	Ticker       string  `json:"ticker"`
	StockName    string  `json:"stockName"`
	Quantity     int64   `json:"quantity"`
	BuyPrice     float64 `json:"buyPrice"`
	CurrentPrice float64 `json:"currentPrice"`
}

// StockDetails is the lookup result for a ticker before a holding exists.
// Used by the add/edit form to prefill name and price.
type StockDetails struct {
	StockName string  `json:"stockName"`
	BuyPrice  float64 `json:"buyPrice"`
}

// Metrics holds the derived aggregate figures for the portfolio view.
type Metrics struct {
	TotalValue    float64 `json:"total_value"`
	TotalStocks   int     `json:"total_stocks"`
	AverageReturn float64 `json:"average_return"`
	Direction     string  `json:"direction"`
}
