package httpserver

import (
	"context"
	"time"

	"github.com/kubesimlab/kubesim/internal/infra/appstate"
	"github.com/kubesimlab/kubesim/internal/infra/pinger"
	"github.com/kubesimlab/kubesim/internal/logic/cluster"
	"github.com/kubesimlab/kubesim/internal/logic/command"
)

// appstater is an internal interface for application state management
type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
	GetAllStats() map[string]*pinger.Statistics
}

// clusterReader is the snapshot surface exposed by the store.
type clusterReader interface {
	Snapshot() cluster.State
}

// alertLister is the read surface of the alert feed.
type alertLister interface {
	List() []cluster.Alert
}

// commandRunner executes operator commands and assistant plans.
type commandRunner interface {
	Execute(ctx context.Context, input string) string
	RunSteps(ctx context.Context, steps []command.Step) []command.StepResult
}
