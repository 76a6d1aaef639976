package config

import "time"

// Env key constants. All engine configuration env vars use the KUBESIM_
// prefix; duration values support explicit units (e.g. 10s, 1m).

// Log level: debug, info, warn, error.
const envKeyLogLevel = "KUBESIM_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "KUBESIM_LOG_FORMAT"

// Port for the demo API and health endpoints.
const envKeyHTTPPort = "KUBESIM_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "KUBESIM_METRICS_PORT"

// Tick cadence for the simulator. Accepts go-cron descriptors
// (e.g. @every 3s) and 5-field cron specs.
const (
	envKeyTickSchedule    = "KUBESIM_TICK_SCHEDULE"
	defaultTickSchedule   = "@every 3s"
	envMinTickScheduleGap = 100 * time.Millisecond
)

// Pinger check interval. Units: s, m, h (e.g. 10s, 1m).
const (
	envKeyPingerInterval = "KUBESIM_PINGER_INTERVAL"
	envMinPingerInterval = time.Second
)

// Seed for the simulation random source. 0 seeds from the clock; any
// other value makes the cluster layout and tick walk reproducible.
const envKeySeed = "KUBESIM_SEED"
