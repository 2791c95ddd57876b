// Package insights builds and renders per-ticker historical price views.
package insights

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/models"
)

// SeriesAPI is the subset of the stocks service client the loader depends on.
type SeriesAPI interface {
	GetSeries(ctx context.Context, ticker string) (*models.InsightSeries, error)
}

// maxConcurrentFetches caps parallel series requests per batch.
const maxConcurrentFetches = 8

// Loader fetches historical series for the portfolio's tickers and holds the
// latest complete snapshot. Each refresh replaces the snapshot wholesale; a
// failure in any fetch discards the entire batch and keeps the previous one.
type Loader struct {
	api    SeriesAPI
	logger *common.Logger

	mu       sync.RWMutex
	snapshot models.InsightSnapshot
}

// NewLoader creates an insights loader backed by the given client.
func NewLoader(api SeriesAPI, logger *common.Logger) *Loader {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Loader{
		api:    api,
		logger: logger,
	}
}

// Refresh fetches every ticker's series concurrently and replaces the
// snapshot with the assembled result, preserving ticker order. All-or-
// nothing: the first error aborts the batch and the prior snapshot stays.
func (l *Loader) Refresh(ctx context.Context, tickers []string) error {
	results := make([]*models.InsightSeries, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, ticker := range tickers {
		g.Go(func() error {
			series, err := l.api.GetSeries(gctx, ticker)
			if err != nil {
				return err
			}
			results[i] = series
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.logger.Warn().Err(err).Int("tickers", len(tickers)).Msg("insights batch failed, keeping prior snapshot")
		return err
	}

	snapshot := models.InsightSnapshot{
		Tickers: make([]string, len(tickers)),
		Series:  make(map[string]models.InsightSeries, len(tickers)),
	}
	for i, ticker := range tickers {
		snapshot.Tickers[i] = ticker
		snapshot.Series[ticker] = *results[i]
	}

	l.mu.Lock()
	l.snapshot = snapshot
	l.mu.Unlock()

	l.logger.Info().Int("tickers", len(tickers)).Msg("insights refreshed")
	return nil
}

// Snapshot returns the latest complete insights lookup. The series map is
// shared; callers must not mutate it.
func (l *Loader) Snapshot() models.InsightSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := models.InsightSnapshot{
		Tickers: make([]string, len(l.snapshot.Tickers)),
		Series:  l.snapshot.Series,
	}
	copy(out.Tickers, l.snapshot.Tickers)
	return out
}

// Series returns the series for one ticker from the current snapshot.
func (l *Loader) Series(ticker string) (models.InsightSeries, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.snapshot.Series[ticker]
	return s, ok
}

// DefaultTicker returns the first ticker of the snapshot (insertion order),
// the default tab selection after a refresh.
func (l *Loader) DefaultTicker() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.snapshot.Tickers) == 0 {
		return ""
	}
	return l.snapshot.Tickers[0]
}
