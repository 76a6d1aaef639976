package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kubesimlab/kubesim/internal/infra/schedule"
)

type Config struct {
	LogLevel       string
	LogFormat      string
	HTTPPort       string
	MetricsPort    string
	TickSchedule   string
	PingerInterval time.Duration
	Seed           int64
}

func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:     getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:    getEnvOrDefault(envKeyLogFormat, "json"),
		HTTPPort:     getEnvOrDefault(envKeyHTTPPort, "8080"),
		MetricsPort:  getEnvOrDefault(envKeyMetricsPort, "9090"),
		TickSchedule: getEnvOrDefault(envKeyTickSchedule, defaultTickSchedule),
	}

	sched, err := schedule.Parse(cfg.TickSchedule)
	if err != nil {
		return nil, fmt.Errorf("tick schedule: %w", err)
	}

	if gap := schedule.Cadence(sched); gap < envMinTickScheduleGap {
		return nil, fmt.Errorf("tick schedule %q: cadence %s is below minimum %s",
			cfg.TickSchedule, gap, envMinTickScheduleGap)
	}

	pingerInterval, err := parseDuration(envKeyPingerInterval, "10s", envMinPingerInterval)
	if err != nil {
		return nil, err
	}

	cfg.PingerInterval = pingerInterval

	seedStr := getEnvOrDefault(envKeySeed, "0")

	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", envKeySeed, err)
	}

	cfg.Seed = seed

	return cfg, nil
}

func parseDuration(key, defaultValue string, minimum time.Duration) (time.Duration, error) {
	raw := getEnvOrDefault(key, defaultValue)

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if d < minimum {
		return 0, fmt.Errorf("parse %s: %s is below minimum %s", key, d, minimum)
	}

	return d, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
