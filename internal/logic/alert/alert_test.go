package alert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kubesimlab/kubesim/internal/logic/alert"
	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

func diffPod(name string, status cluster.PodStatus, cpu, mem float64) cluster.Pod {
	return cluster.Pod{
		ID:     name + "-00001",
		Name:   name,
		Status: status,
		Usage:  cluster.Usage{CPU: cpu, Memory: mem},
	}
}

func singlePodStates(prev, next cluster.Pod) (cluster.State, cluster.State) {
	return cluster.State{Pods: []cluster.Pod{prev}}, cluster.State{Pods: []cluster.Pod{next}}
}

func TestDiff_StatusEdge(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("running to error raises critical status alert", func(t *testing.T) {
		t.Parallel()

		prev, next := singlePodStates(
			diffPod("frontend", cluster.StatusRunning, 50, 50),
			diffPod("frontend", cluster.StatusError, 50, 50),
		)

		alerts := alert.Diff(prev, next, now)
		require.Len(t, alerts, 1)
		require.Equal(t, cluster.AlertStatus, alerts[0].Type)
		require.Equal(t, cluster.SeverityCritical, alerts[0].Severity)
		require.Equal(t, "frontend", alerts[0].PodName)
		require.Equal(t, "Pod frontend has entered Error state!", alerts[0].Message)
	})

	t.Run("error to error raises nothing", func(t *testing.T) {
		t.Parallel()

		prev, next := singlePodStates(
			diffPod("frontend", cluster.StatusError, 50, 50),
			diffPod("frontend", cluster.StatusError, 50, 50),
		)

		require.Empty(t, alert.Diff(prev, next, now))
	})

	t.Run("error to running raises nothing", func(t *testing.T) {
		t.Parallel()

		prev, next := singlePodStates(
			diffPod("frontend", cluster.StatusError, 50, 50),
			diffPod("frontend", cluster.StatusRunning, 50, 50),
		)

		require.Empty(t, alert.Diff(prev, next, now))
	})
}

func TestDiff_UtilizationEdge(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("cpu crossing raises critical above 95", func(t *testing.T) {
		t.Parallel()

		prev, next := singlePodStates(
			diffPod("backend-api", cluster.StatusRunning, 85, 50),
			diffPod("backend-api", cluster.StatusRunning, 96, 50),
		)

		alerts := alert.Diff(prev, next, now)
		require.Len(t, alerts, 1)
		require.Equal(t, cluster.AlertUtilization, alerts[0].Type)
		require.Equal(t, cluster.SeverityCritical, alerts[0].Severity)
		require.Contains(t, alerts[0].Message, "CPU")
		require.Contains(t, alerts[0].Message, "96%")
	})

	t.Run("cpu crossing below 95 is a warning", func(t *testing.T) {
		t.Parallel()

		prev, next := singlePodStates(
			diffPod("backend-api", cluster.StatusRunning, 80, 50),
			diffPod("backend-api", cluster.StatusRunning, 92, 50),
		)

		alerts := alert.Diff(prev, next, now)
		require.Len(t, alerts, 1)
		require.Equal(t, cluster.SeverityWarning, alerts[0].Severity)
		require.Equal(t, "High CPU usage on backend-api (92%)", alerts[0].Message)
	})

	t.Run("memory crossing reports memory", func(t *testing.T) {
		t.Parallel()

		prev, next := singlePodStates(
			diffPod("backend-api", cluster.StatusRunning, 40, 88),
			diffPod("backend-api", cluster.StatusRunning, 40, 93),
		)

		alerts := alert.Diff(prev, next, now)
		require.Len(t, alerts, 1)
		require.Equal(t, cluster.SeverityWarning, alerts[0].Severity)
		require.Equal(t, "High Memory usage on backend-api (93%)", alerts[0].Message)
	})

	t.Run("cpu wins when both cross in the same tick", func(t *testing.T) {
		t.Parallel()

		prev, next := singlePodStates(
			diffPod("backend-api", cluster.StatusRunning, 85, 85),
			diffPod("backend-api", cluster.StatusRunning, 94, 97),
		)

		alerts := alert.Diff(prev, next, now)
		require.Len(t, alerts, 1)
		require.Contains(t, alerts[0].Message, "High CPU usage")
		// Peak is the max of both metrics.
		require.Contains(t, alerts[0].Message, "97%")
	})

	t.Run("held above threshold raises nothing", func(t *testing.T) {
		t.Parallel()

		prev, next := singlePodStates(
			diffPod("backend-api", cluster.StatusRunning, 95, 50),
			diffPod("backend-api", cluster.StatusRunning, 95, 50),
		)

		require.Empty(t, alert.Diff(prev, next, now))
	})
}

// A pod crossing once and then parked above threshold alerts exactly
// once, at the crossing tick.
func TestDiff_EdgeTriggeredOverSequence(t *testing.T) {
	t.Parallel()

	now := time.Now()

	cpuByTick := []float64{80, 95, 95, 95, 95, 95}
	total := 0

	for i := 1; i < len(cpuByTick); i++ {
		prev, next := singlePodStates(
			diffPod("cart-service", cluster.StatusRunning, cpuByTick[i-1], 40),
			diffPod("cart-service", cluster.StatusRunning, cpuByTick[i], 40),
		)

		total += len(alert.Diff(prev, next, now))
	}

	require.Equal(t, 1, total)
}

func TestDiff_BothRulesSameTick(t *testing.T) {
	t.Parallel()

	prev, next := singlePodStates(
		diffPod("payment-service", cluster.StatusRunning, 85, 50),
		diffPod("payment-service", cluster.StatusError, 96, 50),
	)

	alerts := alert.Diff(prev, next, time.Now())
	require.Len(t, alerts, 2)
	require.Equal(t, cluster.AlertStatus, alerts[0].Type)
	require.Equal(t, cluster.AlertUtilization, alerts[1].Type)
}

func TestDiff_SkipsNewPods(t *testing.T) {
	t.Parallel()

	prev := cluster.State{}
	next := cluster.State{
		Pods: []cluster.Pod{diffPod("fresh", cluster.StatusError, 99, 99)},
	}

	require.Empty(t, alert.Diff(prev, next, time.Now()))
}
