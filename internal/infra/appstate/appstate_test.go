package appstate_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kubesimlab/kubesim/internal/infra/appstate"
	"github.com/kubesimlab/kubesim/internal/infra/pinger"
)

func newTestState(t *testing.T) (*appstate.AppState, chan os.Signal) {
	t.Helper()

	quit := make(chan os.Signal, 1)
	pingerService := pinger.New(slog.Default(), time.Minute)

	return appstate.New(slog.Default(), time.Now(), quit, pingerService), quit
}

type countingShutdowner struct {
	mu    sync.Mutex
	calls int
}

func (c *countingShutdowner) Name() string { return "counting" }

func (c *countingShutdowner) Shutdown(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++

	return nil
}

func TestAppState_Lifecycle(t *testing.T) {
	t.Parallel()

	state, _ := newTestState(t)

	require.Equal(t, appstate.StateInit, state.GetState())
	require.False(t, state.IsHealthy())
	require.False(t, state.IsReady())

	require.NoError(t, state.SetStarting(t.Context()))
	require.Equal(t, appstate.StateStarting, state.GetState())
	require.False(t, state.IsReady())

	require.NoError(t, state.SetRunning(t.Context()))
	require.Equal(t, appstate.StateRunning, state.GetState())
	require.True(t, state.IsHealthy())
	require.True(t, state.IsReady())
}

func TestAppState_InvalidTransitions(t *testing.T) {
	t.Parallel()

	t.Run("running requires starting first", func(t *testing.T) {
		t.Parallel()

		state, _ := newTestState(t)

		err := state.SetRunning(t.Context())
		require.ErrorIs(t, err, appstate.ErrInvalidStateTransition)
	})

	t.Run("starting twice fails", func(t *testing.T) {
		t.Parallel()

		state, _ := newTestState(t)

		require.NoError(t, state.SetStarting(t.Context()))

		err := state.SetStarting(t.Context())
		require.ErrorIs(t, err, appstate.ErrInvalidStateTransition)
	})
}

func TestAppState_StartTimeAndUptime(t *testing.T) {
	t.Parallel()

	start := time.Now().Add(-time.Minute)
	quit := make(chan os.Signal, 1)
	state := appstate.New(slog.Default(), start, quit, pinger.New(slog.Default(), time.Minute))

	require.Equal(t, start, state.GetStartTime())
	require.GreaterOrEqual(t, state.GetUptime(), time.Minute)
}

func TestAppState_Quit(t *testing.T) {
	t.Parallel()

	state, quit := newTestState(t)
	require.Equal(t, (<-chan os.Signal)(quit), state.Quit())
}

func TestAppState_Shutdown(t *testing.T) {
	t.Parallel()

	state, _ := newTestState(t)

	counting := &countingShutdowner{}
	require.NoError(t, state.RegisterShutdowner(counting))

	require.NoError(t, state.SetStarting(t.Context()))
	require.NoError(t, state.SetRunning(t.Context()))

	require.NoError(t, state.Shutdown(t.Context()))
	require.Equal(t, appstate.StateTerminated, state.GetState())
	require.Equal(t, 1, counting.calls)
	require.False(t, state.IsHealthy())

	t.Run("second shutdown fails", func(t *testing.T) {
		err := state.Shutdown(t.Context())
		require.ErrorIs(t, err, appstate.ErrAlreadyTerminated)
	})
}

func TestAppState_PingerRegistration(t *testing.T) {
	t.Parallel()

	state, _ := newTestState(t)

	require.NoError(t, state.RegisterPinger(&staticPinger{name: "api-server"}))
	require.ErrorIs(t,
		state.RegisterPinger(&staticPinger{name: "api-server"}),
		pinger.ErrPingerAlreadyRegistered,
	)

	stats := state.GetAllStats()
	require.Contains(t, stats, "api-server")
}

type staticPinger struct {
	name string
}

func (p *staticPinger) Name() string { return p.name }

func (p *staticPinger) Ping(_ context.Context) error { return nil }
