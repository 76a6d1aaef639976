// Package alert turns consecutive cluster snapshots into edge-triggered
// alerts and keeps the bounded feed the demo surfaces.
package alert

import (
	"fmt"
	"math"
	"time"

	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

const (
	// UtilizationThreshold is the percentage above which a utilization
	// alert fires, on the crossing tick only.
	UtilizationThreshold = 90.0

	// CriticalCPUThreshold upgrades a utilization alert to Critical.
	CriticalCPUThreshold = 95.0

	// FeedCapacity is the maximum number of alerts the feed retains.
	FeedCapacity = 50
)

// Diff compares two snapshots and returns the alerts newly raised by
// the transition. It is stateless: edge detection comes entirely from
// the prev/next pair, so a pod parked above threshold alerts exactly
// once, at the crossing.
//
// Pods absent from prev are skipped; there is no alert on first
// appearance.
func Diff(prev, next cluster.State, now time.Time) []cluster.Alert {
	prevByID := make(map[string]cluster.Pod, len(prev.Pods))
	for _, p := range prev.Pods {
		prevByID[p.ID] = p
	}

	var alerts []cluster.Alert

	for _, pod := range next.Pods {
		before, ok := prevByID[pod.ID]
		if !ok {
			continue
		}

		if a, ok := statusEdge(before, pod, now); ok {
			alerts = append(alerts, a)
		}

		// Both rules may fire for the same pod in the same tick.
		if a, ok := utilizationEdge(before, pod, now); ok {
			alerts = append(alerts, a)
		}
	}

	return alerts
}

func statusEdge(prev, next cluster.Pod, now time.Time) (cluster.Alert, bool) {
	if next.Status != cluster.StatusError || prev.Status == cluster.StatusError {
		return cluster.Alert{}, false
	}

	return cluster.Alert{
		ID:        alertID(next.ID, "status", now),
		PodID:     next.ID,
		PodName:   next.Name,
		Type:      cluster.AlertStatus,
		Severity:  cluster.SeverityCritical,
		Message:   fmt.Sprintf("Pod %s has entered Error state!", next.Name),
		Timestamp: now,
	}, true
}

func utilizationEdge(prev, next cluster.Pod, now time.Time) (cluster.Alert, bool) {
	cpuCrossed := next.Usage.CPU > UtilizationThreshold && prev.Usage.CPU <= UtilizationThreshold
	memCrossed := next.Usage.Memory > UtilizationThreshold && prev.Usage.Memory <= UtilizationThreshold

	if !cpuCrossed && !memCrossed {
		return cluster.Alert{}, false
	}

	// CPU wins when both metrics crossed on the same tick.
	metric := "Memory"
	if next.Usage.CPU > UtilizationThreshold {
		metric = "CPU"
	}

	severity := cluster.SeverityWarning
	if next.Usage.CPU > CriticalCPUThreshold {
		severity = cluster.SeverityCritical
	}

	peak := math.Round(math.Max(next.Usage.CPU, next.Usage.Memory))

	return cluster.Alert{
		ID:        alertID(next.ID, "utilization", now),
		PodID:     next.ID,
		PodName:   next.Name,
		Type:      cluster.AlertUtilization,
		Severity:  severity,
		Message:   fmt.Sprintf("High %s usage on %s (%d%%)", metric, next.Name, int(peak)),
		Timestamp: now,
	}, true
}

func alertID(podID, kind string, now time.Time) string {
	return fmt.Sprintf("alert-%s-%s-%d", kind, podID, now.UnixNano())
}
