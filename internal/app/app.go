// Package app wires the engine together: seeded store, tick simulator,
// alert feed, command interpreter and the HTTP surfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/kubesimlab/kubesim/internal/config"
	"github.com/kubesimlab/kubesim/internal/httpserver"
	"github.com/kubesimlab/kubesim/internal/infra/schedule"
	"github.com/kubesimlab/kubesim/internal/infra/shutdown"
	"github.com/kubesimlab/kubesim/internal/logic/alert"
	"github.com/kubesimlab/kubesim/internal/logic/command"
	"github.com/kubesimlab/kubesim/internal/logic/simulate"
	"github.com/kubesimlab/kubesim/internal/logic/store"
)

type App struct {
	logger        *slog.Logger
	appState      appstater
	signalHandler *shutdown.Handler
	pingers       pingerRunner
	servers       []appServer
}

// New creates a new application instance with all dependencies wired.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appState appstater,
	pingers pingerRunner,
) (*App, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// One random source drives seeding and the tick walk; the simulator
	// is its only user once the loop starts.
	rng := rand.New(rand.NewSource(seed))

	logger.Info("simulation random source", "seed", seed)

	clusterStore := store.New(logger, rng)
	feed := alert.NewFeed(alert.FeedCapacity)

	sched, err := schedule.Parse(cfg.TickSchedule)
	if err != nil {
		return nil, fmt.Errorf("parse tick schedule: %w", err)
	}

	simulator := simulate.New(logger, clusterStore, feed, rng, sched)
	interpreter := command.New(logger, clusterStore)

	apiServer := httpserver.New(logger, appState, clusterStore, feed, interpreter, cfg.HTTPPort)
	metricsServer := httpserver.NewMetricsServer(logger, cfg.MetricsPort)

	return &App{
		logger:        logger,
		appState:      appState,
		signalHandler: shutdown.New(logger, appState),
		pingers:       pingers,
		servers: []appServer{
			simulator,
			apiServer,
			metricsServer,
		},
	}, nil
}

// Run starts every component, waits until all are ready, then blocks
// until the context is cancelled and shuts everything down in reverse
// start order.
func (a *App) Run(originCtx context.Context) error {
	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go a.signalHandler.HandleSignals(ctx, cancel)

	if err := a.appState.SetStarting(ctx); err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	if err := a.pingers.Start(ctx); err != nil {
		return fmt.Errorf("start pinger service: %w", err)
	}

	if err := a.appState.RegisterShutdowner(a.pingers); err != nil {
		return fmt.Errorf("register pinger service shutdowner: %w", err)
	}

	readyChans := []<-chan struct{}{a.pingers.Ready()}

	for _, srv := range a.servers {
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", srv.Name(), err)
		}

		if err := a.appState.RegisterShutdowner(srv); err != nil {
			return fmt.Errorf("register %s shutdowner: %w", srv.Name(), err)
		}

		if err := a.appState.RegisterPinger(srv); err != nil {
			return fmt.Errorf("register %s pinger: %w", srv.Name(), err)
		}

		readyChans = append(readyChans, srv.Ready())
	}

	select {
	case <-allChannelsClose(ctx, a.logger, readyChans...):
	case <-ctx.Done():
		a.logger.InfoContext(ctx, "cancelled before all components became ready")

		return a.appState.Shutdown(originCtx)
	}

	if err := a.appState.SetRunning(ctx); err != nil {
		return fmt.Errorf("set running: %w", err)
	}

	a.logger.InfoContext(ctx, "kubesim engine running")

	<-ctx.Done()

	return a.appState.Shutdown(originCtx)
}

// allChannelsClose returns a channel that closes once every input
// channel has closed, or immediately when the context is cancelled.
func allChannelsClose(
	ctx context.Context,
	logger *slog.Logger,
	chans ...<-chan struct{},
) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for _, ch := range chans {
			select {
			case <-ctx.Done():
				logger.InfoContext(ctx, "stopped waiting for readiness due to context done")

				return
			case <-ch:
			}
		}
	}()

	return out
}
