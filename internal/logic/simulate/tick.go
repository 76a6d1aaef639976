package simulate

import (
	"math/rand"

	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

const (
	// statusFlipChance is the per-pod, per-tick probability of toggling
	// Running and Error.
	statusFlipChance = 0.01

	// spikeChance is the per-pod, per-tick probability of a CPU load
	// spike replacing the normal jitter delta.
	spikeChance = 0.05

	spikeDelta = 50.0
	cpuJitter  = 5.0
	memJitter  = 2.0
)

// advance applies one simulation step to every pod in place and reports
// how many status flips and load spikes occurred.
func advance(state *cluster.State, rng *rand.Rand) (flips, spikes int) {
	for i := range state.Pods {
		flipped, spiked := stepPod(&state.Pods[i], rng)

		if flipped {
			flips++
		}

		if spiked {
			spikes++
		}
	}

	return flips, spikes
}

// stepPod advances one pod: a rare Running/Error toggle, a bounded CPU
// random walk with occasional spikes, and an independent memory walk.
// Usage is re-clamped to [0,100] after every delta.
func stepPod(pod *cluster.Pod, rng *rand.Rand) (flipped, spiked bool) {
	if rng.Float64() < statusFlipChance {
		switch pod.Status {
		case cluster.StatusRunning:
			pod.Status = cluster.StatusError
			flipped = true
		case cluster.StatusError:
			pod.Status = cluster.StatusRunning
			flipped = true
		}
	}

	cpuDelta := (rng.Float64()*2 - 1) * cpuJitter
	if rng.Float64() < spikeChance {
		cpuDelta = spikeDelta
		spiked = true
	}

	memDelta := (rng.Float64()*2 - 1) * memJitter

	pod.Usage.CPU = cluster.ClampPercent(pod.Usage.CPU + cpuDelta)
	pod.Usage.Memory = cluster.ClampPercent(pod.Usage.Memory + memDelta)

	return flipped, spiked
}
