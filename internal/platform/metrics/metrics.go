// Package metrics keeps cheap in-process counters for the admin panel's
// gateway health card.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	backendFailures uint64
	sessionRejects  uint64
	rateLimited     uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status == http.StatusBadGateway:
		atomic.AddUint64(&c.backendFailures, 1)
	case status >= 500:
		atomic.AddUint64(&c.errorRequests, 1)
	case status == http.StatusUnauthorized:
		atomic.AddUint64(&c.sessionRejects, 1)
	case status == http.StatusTooManyRequests:
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         atomic.LoadUint64(&c.errorRequests),
		"backendFailures":     atomic.LoadUint64(&c.backendFailures),
		"sessionRejectsTotal": atomic.LoadUint64(&c.sessionRejects),
		"rateLimitedTotal":    atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":       avg,
		"totalDurationMs":     totalMs,
	}
}
