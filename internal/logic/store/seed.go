package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

const (
	NamespaceDefault    = "default"
	NamespaceKubeSystem = "kube-system"
)

// Fixed rosters. Application pods spread round-robin over the worker
// nodes; system pods are pinned to the control-plane node.
var (
	workerNodes = []string{"worker-node-1", "worker-node-2", "worker-node-3"}

	controlPlaneNode = "control-plane-1"

	appPodNames = []string{
		"frontend",
		"backend-api",
		"auth-service",
		"cart-service",
		"payment-service",
		"inventory-service",
		"notification-worker",
		"redis-cache",
	}

	systemPodNames = []string{
		"coredns",
		"kube-proxy",
		"metrics-server",
		"kube-state-metrics",
	}
)

const (
	maxConnectionsPerPod = 2

	initialCPUMin = 20.0
	initialCPUMax = 60.0
	initialMemMin = 30.0
	initialMemMax = 70.0
)

// lifecycleEvents are the canonical pod startup events, oldest first.
var lifecycleEvents = []struct {
	reason  string
	message string
}{
	{"Scheduled", "Successfully assigned %s/%s to %s"},
	{"Pulling", "Pulling image for %s/%s on %s"},
	{"Pulled", "Successfully pulled image for %s/%s on %s"},
	{"Created", "Created container %s/%s on %s"},
	{"Started", "Started container %s/%s on %s"},
}

func seedState(rng *rand.Rand) cluster.State {
	now := time.Now()

	pods := make([]cluster.Pod, 0, len(appPodNames)+len(systemPodNames))

	for i, name := range appPodNames {
		node := workerNodes[i%len(workerNodes)]
		pods = append(pods, seedPod(rng, name, NamespaceDefault, node, now))
	}

	for _, name := range systemPodNames {
		pods = append(pods, seedPod(rng, name, NamespaceKubeSystem, controlPlaneNode, now))
	}

	wireConnections(rng, pods)

	return cluster.State{
		Pods:       pods,
		Namespaces: []string{NamespaceDefault, NamespaceKubeSystem},
	}
}

func seedPod(rng *rand.Rand, name, namespace, node string, now time.Time) cluster.Pod {
	pod := cluster.Pod{
		ID:        fmt.Sprintf("%s-%05x", name, rng.Intn(0x100000)),
		Name:      name,
		Namespace: namespace,
		Status:    cluster.StatusRunning,
		IP:        randomPodIP(rng),
		Node:      node,
		Labels: map[string]string{
			"app": name,
		},
		Usage: cluster.Usage{
			CPU:    initialCPUMin + rng.Float64()*(initialCPUMax-initialCPUMin),
			Memory: initialMemMin + rng.Float64()*(initialMemMax-initialMemMin),
		},
		Constraints: seedConstraints(name, node),
	}

	pod.Events = seedEvents(pod, now)

	return pod
}

// seedEvents builds the synthetic startup history, one event per
// lifecycle step with decreasing age so the log reads chronologically.
func seedEvents(pod cluster.Pod, now time.Time) []cluster.Event {
	events := make([]cluster.Event, 0, len(lifecycleEvents))

	for i, ev := range lifecycleEvents {
		age := time.Duration(len(lifecycleEvents)-i) * time.Minute

		events = append(events, cluster.Event{
			ID:        fmt.Sprintf("%s-event-%d", pod.ID, i+1),
			Type:      cluster.EventNormal,
			Reason:    ev.reason,
			Message:   fmt.Sprintf(ev.message, pod.Namespace, pod.Name, pod.Node),
			Timestamp: now.Add(-age),
		})
	}

	return events
}

func seedConstraints(name, node string) []cluster.SchedulingConstraint {
	return []cluster.SchedulingConstraint{
		{
			Type:     cluster.ConstraintNodeAffinity,
			Rule:     cluster.RulePreferred,
			Selector: "kubernetes.io/hostname=" + node,
		},
		{
			Type:     cluster.ConstraintPodAntiAffinity,
			Rule:     cluster.RulePreferred,
			Selector: "app=" + name,
		},
	}
}

// wireConnections gives each pod 0-2 outbound links to distinct other
// pods, never to itself.
func wireConnections(rng *rand.Rand, pods []cluster.Pod) {
	for i := range pods {
		count := rng.Intn(maxConnectionsPerPod + 1)
		if count == 0 || len(pods) < 2 {
			continue
		}

		seen := map[string]bool{pods[i].ID: true}

		for len(pods[i].Connections) < count {
			target := pods[rng.Intn(len(pods))]
			if seen[target.ID] {
				continue
			}

			seen[target.ID] = true
			pods[i].Connections = append(pods[i].Connections, target.ID)
		}
	}
}

// randomPodIP picks an address from the simulated 10.244.0.0/16 pod
// subnet.
func randomPodIP(rng *rand.Rand) string {
	return fmt.Sprintf("10.244.%d.%d", rng.Intn(8), 2+rng.Intn(250))
}
