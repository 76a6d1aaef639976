package app

import (
	"context"
	"os"
	"time"

	"github.com/kubesimlab/kubesim/internal/infra/appstate"
	"github.com/kubesimlab/kubesim/internal/infra/pinger"
	"github.com/kubesimlab/kubesim/internal/infra/shutdown"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterPinger(pinger pinger.Pinger) error
	RegisterShutdowner(shutdowner shutdown.Shutdowner) error
	Quit() <-chan os.Signal
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	GetState() appstate.State
	GetStartTime() time.Time
	GetUptime() time.Duration
	GetAllStats() map[string]*pinger.Statistics
	IsHealthy() bool
	IsReady() bool
	Shutdown(ctx context.Context) error
}

// appServer is a long-running component with the full lifecycle
// surface: start, readiness, health ping and graceful shutdown.
type appServer interface {
	pinger.Pinger
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}

// pingerRunner is the pinger service itself; it is started and shut
// down like a component but is not pinged.
type pingerRunner interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}
