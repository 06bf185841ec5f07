package metrics

import (
	"sync/atomic"
	"time"
)

// Counters tracks process-lifetime ingest totals. It is owned by the server
// and passed to the handlers; there is no package-level mutable instance.
// Increments mirror into the Prometheus collectors so both surfaces agree.
type Counters struct {
	total   atomic.Int64
	saved   atomic.Int64
	skipped atomic.Int64
	started time.Time
}

// Snapshot is the read-only view served by GET /api/metrics.
type Snapshot struct {
	Total   int64   `json:"total"`
	Saved   int64   `json:"saved"`
	Skipped int64   `json:"skipped"`
	Uptime  float64 `json:"uptime"`
}

func NewCounters() *Counters {
	return &Counters{started: time.Now()}
}

// IncTotal records a request that reached the normalization stage,
// whether or not it validated.
func (c *Counters) IncTotal() {
	c.total.Add(1)
	RecordsReceivedTotal.Inc()
}

// IncSaved records a successful append to the dataset log.
func (c *Counters) IncSaved() {
	c.saved.Add(1)
	RecordsSavedTotal.Inc()
}

// IncSkipped records a duplicate suppressed by the dedup cache.
func (c *Counters) IncSkipped() {
	c.skipped.Add(1)
	RecordsSkippedTotal.Inc()
}

// Snapshot returns the current totals without blocking writers.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Total:   c.total.Load(),
		Saved:   c.saved.Load(),
		Skipped: c.skipped.Load(),
		Uptime:  time.Since(c.started).Seconds(),
	}
}
