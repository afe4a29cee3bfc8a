package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/xyz-asif/safezone/internal/pkg/logger"
)

const sweepBatchSize = 100

// Sweeper periodically retries failed alerts. Only recipients that missed the
// original dispatch are contacted again.
type Sweeper struct {
	dispatcher *Dispatcher
	interval   time.Duration
	log        *logger.Logger

	mu sync.Mutex
}

func NewSweeper(dispatcher *Dispatcher, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{
		dispatcher: dispatcher,
		interval:   interval,
		log:        log,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("retry sweeper started interval=%s", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("retry sweeper stopped")
			return
		case <-ticker.C:
			attempted, recovered, err := s.SweepOnce(ctx)
			if err != nil {
				s.log.Error("sweep failed: %v", err)
				continue
			}
			if attempted > 0 {
				s.log.Info("sweep retried %d failed alerts, recovered %d", attempted, recovered)
			}
		}
	}
}

// SweepOnce retries one batch of failed alerts and reports how many were
// attempted and how many recovered to sent. If a sweep is already in
// progress it returns immediately without doing anything.
func (s *Sweeper) SweepOnce(ctx context.Context) (attempted, recovered int, err error) {
	if !s.mu.TryLock() {
		return 0, 0, nil
	}
	defer s.mu.Unlock()

	failed, err := s.dispatcher.store.FindFailed(ctx, sweepBatchSize)
	if err != nil {
		return 0, 0, err
	}

	for i := range failed {
		alert := &failed[i]
		attempted++

		s.dispatcher.deliver(ctx, alert)
		if uerr := s.dispatcher.store.UpdateDelivery(ctx, alert); uerr != nil {
			s.log.Error("failed to persist retry outcome for alert %s: %v", alert.ID.Hex(), uerr)
			continue
		}
		if alert.Status == StatusSent {
			recovered++
		}
	}
	return attempted, recovered, nil
}
