package simulate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

func walkPod(name string, status cluster.PodStatus, cpu, mem float64) cluster.Pod {
	return cluster.Pod{
		ID:     name + "-00001",
		Name:   name,
		Status: status,
		Usage:  cluster.Usage{CPU: cpu, Memory: mem},
	}
}

// Usage must stay inside [0,100] no matter how long the walk runs.
func TestAdvance_UsageStaysClamped(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	state := cluster.State{
		Pods: []cluster.Pod{
			walkPod("low", cluster.StatusRunning, 1, 1),
			walkPod("mid", cluster.StatusRunning, 50, 50),
			walkPod("high", cluster.StatusRunning, 99, 99),
		},
	}

	for range 1000 {
		advance(&state, rng)

		for _, pod := range state.Pods {
			require.GreaterOrEqual(t, pod.Usage.CPU, 0.0)
			require.LessOrEqual(t, pod.Usage.CPU, 100.0)
			require.GreaterOrEqual(t, pod.Usage.Memory, 0.0)
			require.LessOrEqual(t, pod.Usage.Memory, 100.0)
		}
	}
}

// Only Running and Error participate in the random health toggle.
func TestAdvance_OnlyRunningAndErrorFlip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	state := cluster.State{
		Pods: []cluster.Pod{
			walkPod("stuck-pending", cluster.StatusPending, 50, 50),
			walkPod("stuck-terminating", cluster.StatusTerminating, 50, 50),
		},
	}

	for range 2000 {
		advance(&state, rng)
	}

	require.Equal(t, cluster.StatusPending, state.Pods[0].Status)
	require.Equal(t, cluster.StatusTerminating, state.Pods[1].Status)
}

// With enough ticks the rare events do occur and get counted.
func TestAdvance_CountsFlipsAndSpikes(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	state := cluster.State{
		Pods: []cluster.Pod{walkPod("frontend", cluster.StatusRunning, 50, 50)},
	}

	var flips, spikes int

	for range 2000 {
		f, sp := advance(&state, rng)
		flips += f
		spikes += sp
	}

	require.Positive(t, flips)
	require.Positive(t, spikes)
}

// Per-tick deltas are bounded: at most the jitter, or exactly the
// spike.
func TestStepPod_DeltaBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))

	for range 2000 {
		pod := walkPod("frontend", cluster.StatusRunning, 40, 40)
		before := pod.Usage

		_, spiked := stepPod(&pod, rng)

		cpuDelta := pod.Usage.CPU - before.CPU
		memDelta := pod.Usage.Memory - before.Memory

		if spiked {
			require.InDelta(t, spikeDelta, cpuDelta, 0.0001)
		} else {
			require.LessOrEqual(t, cpuDelta, cpuJitter)
			require.GreaterOrEqual(t, cpuDelta, -cpuJitter)
		}

		require.LessOrEqual(t, memDelta, memJitter)
		require.GreaterOrEqual(t, memDelta, -memJitter)
	}
}

func TestStepPod_FlipTogglesBothWays(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))

	pod := walkPod("frontend", cluster.StatusRunning, 50, 50)

	sawError := false
	sawRecovery := false

	for range 5000 {
		wasError := pod.Status == cluster.StatusError

		flipped, _ := stepPod(&pod, rng)
		if !flipped {
			continue
		}

		if wasError {
			sawRecovery = true

			require.Equal(t, cluster.StatusRunning, pod.Status)
		} else {
			sawError = true

			require.Equal(t, cluster.StatusError, pod.Status)
		}
	}

	require.True(t, sawError, "expected at least one Running->Error flip")
	require.True(t, sawRecovery, "expected at least one Error->Running flip")
}
