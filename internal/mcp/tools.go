package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/insights"
	"github.com/bobmcallan/folio-portal/internal/portfolio"
)

// RegisterTools registers the portfolio tool set and returns the tool count.
func RegisterTools(s *server.MCPServer, store *portfolio.Store, loader *insights.Loader) int {
	s.AddTool(getPortfolioTool(), getPortfolioHandler(store))
	s.AddTool(getMetricsTool(), getMetricsHandler(store))
	s.AddTool(addHoldingTool(), addHoldingHandler(store))
	s.AddTool(removeHoldingTool(), removeHoldingHandler(store))
	s.AddTool(refreshPricesTool(), refreshPricesHandler(store))
	s.AddTool(getInsightsTool(), getInsightsHandler(store, loader))
	return 6
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

func getPortfolioTool() mcp.Tool {
	return mcp.NewTool("get_portfolio",
		mcp.WithDescription("Get the current portfolio holdings — tickers, names, quantities, buy and current prices."),
	)
}

func getPortfolioHandler(store *portfolio.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		holdings := store.Holdings()
		if len(holdings) == 0 {
			return textResult("The portfolio is empty."), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Portfolio (%d holdings):\n", len(holdings))
		for _, h := range holdings {
			ret := "n/a"
			if h.BuyPrice != 0 {
				ret = common.FormatSignedPct(((h.CurrentPrice - h.BuyPrice) / h.BuyPrice) * 100)
			}
			fmt.Fprintf(&b, "- %s (%s): %d shares, buy %s, now %s, return %s\n",
				h.Ticker, h.StockName, h.Quantity,
				common.FormatMoney(h.BuyPrice), common.FormatMoney(h.CurrentPrice), ret)
		}
		return textResult(b.String()), nil
	}
}

func getMetricsTool() mcp.Tool {
	return mcp.NewTool("get_metrics",
		mcp.WithDescription("Get derived portfolio metrics: total value, holding count, and average return."),
	)
}

func getMetricsHandler(store *portfolio.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		m := portfolio.ComputeMetrics(store.Holdings())
		text := fmt.Sprintf("Total value: %s\nTotal stocks: %d\nAverage return: %s (%s)",
			common.FormatMoney(m.TotalValue), m.TotalStocks,
			common.FormatSignedPct(m.AverageReturn), m.Direction)
		return textResult(text), nil
	}
}

func addHoldingTool() mcp.Tool {
	return mcp.NewTool("add_holding",
		mcp.WithDescription("Add a stock to the portfolio by ticker. The stocks service resolves the name and prices."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker symbol (e.g., 'AAPL')")),
	)
}

func addHoldingHandler(store *portfolio.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		created, err := store.Add(ctx, ticker)
		if err != nil {
			return errorResult(fmt.Sprintf("failed to add %s: %s", ticker, err)), nil
		}

		return textResult(fmt.Sprintf("Added %s (%s) at %s.",
			created.Ticker, created.StockName, common.FormatMoney(created.BuyPrice))), nil
	}
}

func removeHoldingTool() mcp.Tool {
	return mcp.NewTool("remove_holding",
		mcp.WithDescription("Remove a holding from the portfolio by ticker."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Ticker of the holding to remove")),
	)
}

func removeHoldingHandler(store *portfolio.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		ticker = strings.ToUpper(strings.TrimSpace(ticker))

		var id int64
		found := false
		for _, h := range store.Holdings() {
			if h.Ticker == ticker {
				id, found = h.ID, true
				break
			}
		}
		if !found {
			return errorResult(fmt.Sprintf("no holding with ticker %s", ticker)), nil
		}

		if err := store.Remove(ctx, id); err != nil {
			return errorResult(fmt.Sprintf("failed to remove %s: %s", ticker, err)), nil
		}
		return textResult(fmt.Sprintf("Removed %s.", ticker)), nil
	}
}

func refreshPricesTool() mcp.Tool {
	return mcp.NewTool("refresh_prices",
		mcp.WithDescription("Re-fetch authoritative prices for all holdings from the stocks service."),
	)
}

func refreshPricesHandler(store *portfolio.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := store.RefreshAll(ctx); err != nil {
			return errorResult(fmt.Sprintf("price refresh failed: %s", err)), nil
		}
		return textResult(fmt.Sprintf("Prices refreshed for %d holdings.", len(store.Holdings()))), nil
	}
}

func getInsightsTool() mcp.Tool {
	return mcp.NewTool("get_insights",
		mcp.WithDescription("Fetch the historical price series for one portfolio ticker (most recent points first)."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Ticker to summarize")),
		mcp.WithNumber("points", mcp.Description("Maximum points to include (default: 10)")),
	)
}

func getInsightsHandler(store *portfolio.Store, loader *insights.Loader) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		limit := request.GetInt("points", 10)

		series, ok := loader.Series(ticker)
		if !ok {
			// Lazy fetch so the tool works before the insights tab has been opened.
			if err := loader.Refresh(ctx, store.Tickers()); err != nil {
				return errorResult(fmt.Sprintf("failed to fetch insights: %s", err)), nil
			}
			if series, ok = loader.Series(ticker); !ok {
				return errorResult(fmt.Sprintf("no insights data for %s", ticker)), nil
			}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s price history (newest first):\n", ticker)
		for i, p := range series.Values {
			if i >= limit {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", p.Datetime, common.FormatMoney(p.Close))
		}
		return textResult(b.String()), nil
	}
}
