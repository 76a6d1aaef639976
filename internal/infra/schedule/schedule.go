// Package schedule parses the recurring tick schedule with go-cron.
// Both interval descriptors ("@every 3s") and 5-field cron specs are
// accepted.
package schedule

import (
	"fmt"
	"time"

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Parse returns the schedule for a spec, or an error for malformed
// input.
func Parse(spec string) (cron.Schedule, error) {
	schedule, err := _parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	return schedule, nil
}

// Cadence estimates the interval between consecutive occurrences by
// probing two activations. Used for staleness checks, not for timing.
func Cadence(schedule cron.Schedule) time.Duration {
	first := schedule.Next(time.Now())
	second := schedule.Next(first)

	return second.Sub(first)
}
