package app

import (
	"context"

	"github.com/bobmcallan/folio-portal/internal/client"
	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/config"
	"github.com/bobmcallan/folio-portal/internal/handlers"
	"github.com/bobmcallan/folio-portal/internal/insights"
	"github.com/bobmcallan/folio-portal/internal/mcp"
	"github.com/bobmcallan/folio-portal/internal/portfolio"
	"github.com/bobmcallan/folio-portal/internal/refresh"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	StocksClient   *client.StocksClient
	Store          *portfolio.Store
	InsightsLoader *insights.Loader
	Refresher      *refresh.Refresher

	// HTTP handlers
	PageHandler      *handlers.PageHandler
	PortfolioHandler *handlers.PortfolioHandler
	DetailsHandler   *handlers.DetailsHandler
	InsightsHandler  *handlers.InsightsHandler
	HealthHandler    *handlers.HealthHandler
	VersionHandler   *handlers.VersionHandler
	MCPHandler       *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	a.StocksClient = client.NewStocksClient(cfg.Stocks.URL, cfg.Stocks.Timeout())
	a.Store = portfolio.NewStore(a.StocksClient, logger)
	a.InsightsLoader = insights.NewLoader(a.StocksClient, logger)
	a.Refresher = refresh.NewRefresher(cfg.Refresh.Interval(), a.Store.RefreshAll, logger)

	a.initHandlers()

	logger.Info().
		Str("stocks_url", cfg.Stocks.URL).
		Str("refresh_interval", cfg.Refresh.Interval().String()).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.PageHandler = handlers.NewPageHandler(a.Logger)
	a.PortfolioHandler = handlers.NewPortfolioHandler(a.Logger, a.Store)
	a.DetailsHandler = handlers.NewDetailsHandler(a.Logger, a.StocksClient)
	a.InsightsHandler = handlers.NewInsightsHandler(a.Logger, a.InsightsLoader, a.Store)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.MCPHandler = mcp.NewHandler(a.Store, a.InsightsLoader, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Start performs the initial portfolio load (fail-soft: an unreachable
// stocks service leaves an empty list and the portal stays usable) and
// starts the price refresh loop.
func (a *App) Start(ctx context.Context) {
	if err := a.Store.Load(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("initial portfolio load failed, starting with empty list")
	}

	if a.Config.Refresh.Enabled {
		a.Refresher.Start(ctx)
	} else {
		a.Logger.Info().Msg("price refresher disabled by configuration")
	}
}

// Close stops background work and releases application resources.
func (a *App) Close() error {
	a.Refresher.Stop()
	return nil
}
