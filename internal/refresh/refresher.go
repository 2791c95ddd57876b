// Package refresh runs the periodic price refresh for the portfolio view.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/bobmcallan/folio-portal/internal/common"
)

// RefreshFunc performs one refresh pass.
type RefreshFunc func(ctx context.Context) error

// Refresher re-fetches authoritative prices on a fixed interval. It is an
// explicitly owned task: Start launches the loop, Stop cancels it
// deterministically. A failed tick is logged and the schedule continues
// unchanged (no backoff, no retry).
type Refresher struct {
	interval time.Duration
	fn       RefreshFunc
	logger   *common.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher creates a refresher that invokes fn every interval.
func NewRefresher(interval time.Duration, fn RefreshFunc, logger *common.Logger) *Refresher {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Refresher{
		interval: interval,
		fn:       fn,
		logger:   logger,
	}
}

// Start launches the refresh loop. Starting an already-running refresher is
// a no-op. The loop also stops when the parent context is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.run(loopCtx, r.done)

	r.logger.Info().Str("interval", r.interval.String()).Msg("price refresher started")
}

// Stop cancels the loop and waits for it to exit. Safe to call multiple
// times and before Start.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	r.logger.Info().Msg("price refresher stopped")
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	start := time.Now()
	if err := r.fn(ctx); err != nil {
		r.logger.Warn().Err(err).Msg("price refresh tick failed")
		return
	}
	r.logger.Debug().Dur("elapsed", time.Since(start)).Msg("price refresh tick complete")
}
