// Package simulate advances the cluster on a fixed cadence: a bounded
// random walk of pod utilization plus rare health flips, with alert
// diffing after every tick.
package simulate

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	cron "github.com/netresearch/go-cron"

	"github.com/kubesimlab/kubesim/internal/infra/metrics"
	"github.com/kubesimlab/kubesim/internal/infra/schedule"
	"github.com/kubesimlab/kubesim/internal/infra/shutdown"
	"github.com/kubesimlab/kubesim/internal/logic/alert"
	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

// stateStore is the mutation surface the simulator needs from the
// store.
type stateStore interface {
	Snapshot() cluster.State
	ApplyTick(fn func(*cluster.State))
}

type Service struct {
	logger       *slog.Logger
	store        stateStore
	feed         *alert.Feed
	rng          *rand.Rand
	schedule     cron.Schedule
	cadence      time.Duration
	ready        chan struct{}
	doneCh       chan struct{}
	inShutdown   atomic.Bool
	mu           sync.RWMutex
	lastTickTime time.Time
}

// New creates the simulator. The rand source must be the only one
// mutating simulation randomness so runs are reproducible under a fixed
// seed.
func New(
	logger *slog.Logger,
	store stateStore,
	feed *alert.Feed,
	rng *rand.Rand,
	sched cron.Schedule,
) *Service {
	return &Service{
		logger:   logger,
		store:    store,
		feed:     feed,
		rng:      rng,
		schedule: sched,
		cadence:  schedule.Cadence(sched),
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

// Name returns the name of the simulator component.
func (s *Service) Name() string {
	return "tick-simulator"
}

// Start launches the tick loop in a goroutine.
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "simulator is shutting down, skipping start")

		return nil
	}

	go s.run(ctx)

	return nil
}

// Ready returns a channel that is closed once the tick loop is armed.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Ping reports the simulator healthy while ticks keep landing. A tick
// older than twice the cadence means the loop is stuck.
func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		age := s.lastTickAge()
		if age > 2*s.cadence {
			return fmt.Errorf("last tick was too long ago: %s", age.Round(time.Millisecond).String())
		}

		return nil
	default:
		return fmt.Errorf("simulator is not ready")
	}
}

// Shutdown waits for the tick loop to exit. The loop itself stops on
// context cancellation.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "simulator is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "simulator shut down")
	}()

	s.logger.InfoContext(ctx, "shutting down simulator")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before tick loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "tick loop exited")
	}

	return nil
}

// TickOnce advances the cluster by one step: snapshot before, mutate,
// snapshot after, diff the pair, prepend new alerts to the feed.
// Returns the alerts raised by this tick.
func (s *Service) TickOnce(ctx context.Context) []cluster.Alert {
	prev := s.store.Snapshot()

	var flips, spikes int

	s.store.ApplyTick(func(state *cluster.State) {
		flips, spikes = advance(state, s.rng)
	})

	next := s.store.Snapshot()

	alerts := alert.Diff(prev, next, time.Now())
	s.feed.Prepend(alerts...)

	metrics.RecordTick()

	for range flips {
		metrics.RecordStatusFlip()
	}

	for range spikes {
		metrics.RecordLoadSpike()
	}

	for _, a := range alerts {
		metrics.RecordAlert(string(a.Type), string(a.Severity))
	}

	if len(alerts) > 0 {
		// The first alert of a tick is the one surfaced as a transient
		// notification downstream.
		s.logger.InfoContext(ctx, "alerts raised",
			"count", len(alerts),
			"notification", alerts[0].Message,
			"severity", string(alerts[0].Severity),
		)
	}

	s.setLastTickTime()

	return alerts
}

// run drives TickOnce on the configured schedule until the context is
// cancelled.
func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("component", "tick-loop")

	now := time.Now()
	timer := time.NewTimer(s.schedule.Next(now).Sub(now))

	defer timer.Stop()

	close(s.ready)
	s.setLastTickTime()

	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating tick loop")

			return
		case fired := <-timer.C:
			s.TickOnce(ctx)

			next := s.schedule.Next(fired)
			wait := time.Until(next)

			if wait <= 0 {
				wait = time.Millisecond
			}

			timer.Reset(wait)
		}
	}
}

func (s *Service) lastTickAge() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return time.Since(s.lastTickTime)
}

func (s *Service) setLastTickTime() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTickTime = time.Now()
}
