package pinger

import (
	"sync"
	"time"
)

// Stats tracks the outcome history of a single pinger.
type Stats struct {
	mu           sync.RWMutex
	name         string
	lastRun      time.Time
	lastError    error
	successCount int
	errorCount   int
	totalLatency time.Duration
}

// NewStats creates an empty stats tracker for a pinger.
func NewStats(name string) *Stats {
	return &Stats{name: name}
}

// Record adds one ping outcome.
func (s *Stats) Record(latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRun = time.Now()
	s.lastError = err
	s.totalLatency += latency

	if err != nil {
		s.errorCount++
	} else {
		s.successCount++
	}
}

// Statistics is a read-only snapshot of a pinger's stats.
type Statistics struct {
	Name           string        `json:"name"`
	IsHealthy      bool          `json:"isHealthy"`
	LastRun        time.Time     `json:"lastRun"`
	LastError      string        `json:"lastError,omitempty"`
	SuccessCount   int           `json:"successCount"`
	ErrorCount     int           `json:"errorCount"`
	AverageLatency time.Duration `json:"averageLatency"`
}

// Snapshot returns a copy of the current statistics.
func (s *Stats) Snapshot() *Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &Statistics{
		Name:         s.name,
		IsHealthy:    s.lastError == nil,
		LastRun:      s.lastRun,
		SuccessCount: s.successCount,
		ErrorCount:   s.errorCount,
	}

	if s.lastError != nil {
		out.LastError = s.lastError.Error()
	}

	if total := s.successCount + s.errorCount; total > 0 {
		out.AverageLatency = s.totalLatency / time.Duration(total)
	}

	return out
}
