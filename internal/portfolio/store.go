// Package portfolio holds the in-memory session view of the user's holdings.
// The stocks service is the source of truth; every mutation goes through it
// and the local list is reconciled from the authoritative response.
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/models"
)

// StocksAPI is the subset of the stocks service client the store depends on.
type StocksAPI interface {
	ListHoldings(ctx context.Context) ([]models.Holding, error)
	CreateHolding(ctx context.Context, ticker string) (*models.Holding, error)
	UpdateHolding(ctx context.Context, holding models.Holding) (*models.Holding, error)
	DeleteHolding(ctx context.Context, id int64) error
}

// Store mediates all holding mutations for the session. Mutations serialize
// on the lock; failed remote calls leave local state untouched.
type Store struct {
	mu       sync.RWMutex
	holdings []models.Holding

	api    StocksAPI
	logger *common.Logger
}

// NewStore creates an empty store backed by the given stocks service client.
func NewStore(api StocksAPI, logger *common.Logger) *Store {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Store{
		api:    api,
		logger: logger,
	}
}

// Load fetches the full holdings list and replaces local state wholesale.
// On error the prior state is kept; callers treat this as fail-soft.
func (s *Store) Load(ctx context.Context) error {
	holdings, err := s.api.ListHoldings(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("portfolio load failed, keeping prior state")
		return err
	}

	s.mu.Lock()
	s.holdings = holdings
	s.mu.Unlock()

	s.logger.Info().Int("holdings", len(holdings)).Msg("portfolio loaded")
	return nil
}

// Add creates a holding from a ticker and appends the authoritative result.
// The service resolves name and prices and rejects duplicate tickers; its
// error message is returned verbatim for the UI to surface.
func (s *Store) Add(ctx context.Context, ticker string) (*models.Holding, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	created, err := s.api.CreateHolding(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("add holding failed")
		return nil, err
	}

	s.mu.Lock()
	s.holdings = append(s.holdings, *created)
	s.mu.Unlock()

	s.logger.Info().Str("ticker", created.Ticker).Int64("id", created.ID).Msg("holding added")
	return created, nil
}

// Update sends a full update for a holding and replaces the local entry by ID.
func (s *Store) Update(ctx context.Context, holding models.Holding) (*models.Holding, error) {
	if holding.ID == 0 {
		return nil, fmt.Errorf("holding id is required")
	}

	updated, err := s.api.UpdateHolding(ctx, holding)
	if err != nil {
		s.logger.Warn().Err(err).Int64("id", holding.ID).Msg("update holding failed")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.holdings {
		if s.holdings[i].ID == updated.ID {
			s.holdings[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info().Str("ticker", updated.Ticker).Int64("id", updated.ID).Msg("holding updated")
	return updated, nil
}

// Remove deletes a holding remotely, then filters it out of local state.
// Filtering an ID with no local match is a no-op. Confirmation belongs to
// the caller (the UI), not the store.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.api.DeleteHolding(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("id", id).Msg("delete holding failed")
		return err
	}

	s.mu.Lock()
	filtered := s.holdings[:0]
	for _, h := range s.holdings {
		if h.ID != id {
			filtered = append(filtered, h)
		}
	}
	s.holdings = filtered
	s.mu.Unlock()

	s.logger.Info().Int64("id", id).Msg("holding removed")
	return nil
}

// RefreshAll fetches the authoritative list and merges it by ticker: matched
// local holdings take the returned currentPrice only, all other fields stay.
// Unmatched local holdings keep their last known price (accepted staleness
// window, not an error).
func (s *Store) RefreshAll(ctx context.Context) error {
	latest, err := s.api.ListHoldings(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("price refresh failed, keeping prior prices")
		return err
	}

	prices := make(map[string]float64, len(latest))
	for _, h := range latest {
		prices[h.Ticker] = h.CurrentPrice
	}

	updated := 0
	s.mu.Lock()
	for i := range s.holdings {
		if price, ok := prices[s.holdings[i].Ticker]; ok {
			s.holdings[i].CurrentPrice = price
			updated++
		}
	}
	s.mu.Unlock()

	s.logger.Debug().Int("updated", updated).Msg("prices refreshed")
	return nil
}

// Holdings returns a defensive copy of the current list.
func (s *Store) Holdings() []models.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

// Get returns the holding with the given ID, if present.
func (s *Store) Get(id int64) (models.Holding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.holdings {
		if h.ID == id {
			return h, true
		}
	}
	return models.Holding{}, false
}

// Tickers returns the tickers of the current holdings in list order.
func (s *Store) Tickers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.holdings))
	for i, h := range s.holdings {
		out[i] = h.Ticker
	}
	return out
}
