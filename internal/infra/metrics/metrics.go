package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ticksTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "kubesim_ticks_total",
		Help: "Total number of simulation ticks advanced.",
	},
)

var statusFlipsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "kubesim_status_flips_total",
		Help: "Total number of random Running/Error status flips applied by the simulator.",
	},
)

var loadSpikesTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "kubesim_load_spikes_total",
		Help: "Total number of CPU load spikes injected by the simulator.",
	},
)

var alertsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "kubesim_alerts_total",
		Help: "Total number of alerts raised, by type and severity.",
	},
	[]string{"type", "severity"},
)

var commandsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "kubesim_commands_total",
		Help: "Total number of interpreted commands, by dispatched verb.",
	},
	[]string{"verb"},
)

// RecordTick increments the tick counter.
func RecordTick() {
	ticksTotal.Inc()
}

// RecordStatusFlip increments the status flip counter.
func RecordStatusFlip() {
	statusFlipsTotal.Inc()
}

// RecordLoadSpike increments the load spike counter.
func RecordLoadSpike() {
	loadSpikesTotal.Inc()
}

// RecordAlert increments the alert counter for one raised alert.
func RecordAlert(alertType, severity string) {
	alertsTotal.WithLabelValues(alertType, severity).Inc()
}

// RecordCommand increments the command counter for a dispatched verb.
func RecordCommand(verb string) {
	commandsTotal.WithLabelValues(verb).Inc()
}
