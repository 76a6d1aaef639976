package app

import (
	"context"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kubesimlab/kubesim/internal/config"
	"github.com/kubesimlab/kubesim/internal/infra/appstate"
	"github.com/kubesimlab/kubesim/internal/infra/pinger"
)

// testConfig uses port 0 so parallel tests never collide on listeners.
func testConfig() *config.Config {
	return &config.Config{
		LogLevel:       "info",
		LogFormat:      "text",
		HTTPPort:       "0",
		MetricsPort:    "0",
		TickSchedule:   "@every 1s",
		PingerInterval: time.Second,
		Seed:           1,
	}
}

func TestAllChannelsClose(t *testing.T) {
	t.Parallel()

	t.Run("closes when every channel closes", func(t *testing.T) {
		t.Parallel()

		first := make(chan struct{})
		second := make(chan struct{})

		out := allChannelsClose(t.Context(), slog.Default(),
			(<-chan struct{})(first), (<-chan struct{})(second))

		select {
		case <-out:
			t.Fatal("closed before the inputs did")
		case <-time.After(20 * time.Millisecond):
		}

		close(first)
		close(second)

		select {
		case <-out:
		case <-time.After(time.Second):
			t.Fatal("did not close after all inputs closed")
		}
	})

	t.Run("no channels closes immediately", func(t *testing.T) {
		t.Parallel()

		select {
		case <-allChannelsClose(t.Context(), slog.Default()):
		case <-time.After(time.Second):
			t.Fatal("did not close with zero inputs")
		}
	})

	t.Run("context cancel stops the wait", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())

		never := make(chan struct{})
		out := allChannelsClose(ctx, slog.Default(), (<-chan struct{})(never))

		cancel()

		select {
		case <-out:
		case <-time.After(time.Second):
			t.Fatal("did not close after context cancel")
		}
	})
}

func TestNew_InvalidSchedule(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.TickSchedule = "not-a-schedule"

	_, err := New(slog.Default(), cfg, nil, nil)
	require.ErrorContains(t, err, "parse tick schedule")
}

// Full lifecycle: start everything, wait for ready, terminate via
// signal.
func TestApp_RunLifecycle(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	quit := make(chan os.Signal, 1)
	pingerService := pinger.New(logger, time.Second)
	state := appstate.New(logger, time.Now(), quit, pingerService)

	application, err := New(logger, testConfig(), state, pingerService)
	require.NoError(t, err)

	errCh := make(chan error, 1)

	go func() {
		errCh <- application.Run(t.Context())
	}()

	require.Eventually(t, state.IsReady, 5*time.Second, 10*time.Millisecond,
		"application did not reach running state")

	quit <- syscall.SIGTERM

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not shut down after the signal")
	}

	require.Equal(t, appstate.StateTerminated, state.GetState())
}
