// Package stats tracks daemon counters with lock-free atomics and exposes
// them to the status command and, optionally, to Prometheus.
package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Collector tracks indexing, query and content-scan statistics.
type Collector struct {
	eventsApplied  atomic.Int64
	resyncs        atomic.Int64
	overflows      atomic.Int64
	watchFailures  atomic.Int64
	watchesActive  atomic.Int64
	queriesServed  atomic.Int64
	queriesFailed  atomic.Int64
	resultsSent    atomic.Int64
	jobsSubmitted  atomic.Int64
	jobsCompleted  atomic.Int64
	jobsFailed     atomic.Int64
	jobsAbandoned  atomic.Int64
	binarySkipped  atomic.Int64
	bytesScanned   atomic.Int64
	queueBlocked   atomic.Int64
	mappedInFlight atomic.Int64
	mappedPeak     atomic.Int64
	startTime      time.Time

	// Ring buffer, written only by Tick.
	mu          sync.Mutex
	queryRate   [ringSize]int64 // queries delta per second
	scanRate    [ringSize]int64 // bytes scanned delta per second
	ringIdx     int
	ringCount   int // how many samples have been written (capped at ringSize)
	lastQueries int64
	lastBytes   int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	EventsApplied  int64
	Resyncs        int64
	Overflows      int64
	WatchFailures  int64
	WatchesActive  int64
	QueriesServed  int64
	QueriesFailed  int64
	ResultsSent    int64
	JobsSubmitted  int64
	JobsCompleted  int64
	JobsFailed     int64
	JobsAbandoned  int64
	BinarySkipped  int64
	BytesScanned   int64
	QueueBlocked   int64
	MappedInFlight int64
	MappedPeak     int64
	Uptime         time.Duration
}

func (c *Collector) AddEventsApplied(n int64) { c.eventsApplied.Add(n) }
func (c *Collector) AddResyncs(n int64)       { c.resyncs.Add(n) }
func (c *Collector) AddOverflows(n int64)     { c.overflows.Add(n) }
func (c *Collector) AddWatchFailures(n int64) { c.watchFailures.Add(n) }
func (c *Collector) AddWatches(n int64)       { c.watchesActive.Add(n) }
func (c *Collector) AddQueriesServed(n int64) { c.queriesServed.Add(n) }
func (c *Collector) AddQueriesFailed(n int64) { c.queriesFailed.Add(n) }
func (c *Collector) AddResultsSent(n int64)   { c.resultsSent.Add(n) }
func (c *Collector) AddJobsSubmitted(n int64) { c.jobsSubmitted.Add(n) }
func (c *Collector) AddJobsCompleted(n int64) { c.jobsCompleted.Add(n) }
func (c *Collector) AddJobsFailed(n int64)    { c.jobsFailed.Add(n) }
func (c *Collector) AddJobsAbandoned(n int64) { c.jobsAbandoned.Add(n) }
func (c *Collector) AddBinarySkipped(n int64) { c.binarySkipped.Add(n) }
func (c *Collector) AddBytesScanned(n int64)  { c.bytesScanned.Add(n) }
func (c *Collector) AddQueueBlocked(n int64)  { c.queueBlocked.Add(n) }

// MapStarted records a newly mapped file and updates the peak.
func (c *Collector) MapStarted() {
	cur := c.mappedInFlight.Add(1)
	for {
		peak := c.mappedPeak.Load()
		if cur <= peak || c.mappedPeak.CompareAndSwap(peak, cur) {
			return
		}
	}
}

// MapDone records a released mapping.
func (c *Collector) MapDone() { c.mappedInFlight.Add(-1) }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		EventsApplied:  c.eventsApplied.Load(),
		Resyncs:        c.resyncs.Load(),
		Overflows:      c.overflows.Load(),
		WatchFailures:  c.watchFailures.Load(),
		WatchesActive:  c.watchesActive.Load(),
		QueriesServed:  c.queriesServed.Load(),
		QueriesFailed:  c.queriesFailed.Load(),
		ResultsSent:    c.resultsSent.Load(),
		JobsSubmitted:  c.jobsSubmitted.Load(),
		JobsCompleted:  c.jobsCompleted.Load(),
		JobsFailed:     c.jobsFailed.Load(),
		JobsAbandoned:  c.jobsAbandoned.Load(),
		BinarySkipped:  c.binarySkipped.Load(),
		BytesScanned:   c.bytesScanned.Load(),
		QueueBlocked:   c.queueBlocked.Load(),
		MappedInFlight: c.mappedInFlight.Load(),
		MappedPeak:     c.mappedPeak.Load(),
		Uptime:         c.Uptime(),
	}
}

// Tick snapshots query/scan deltas into the ring buffer. Called once a
// second by the daemon.
func (c *Collector) Tick() {
	currentQueries := c.queriesServed.Load()
	currentBytes := c.bytesScanned.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.queryRate[c.ringIdx] = currentQueries - c.lastQueries
	c.scanRate[c.ringIdx] = currentBytes - c.lastBytes
	c.lastQueries = currentQueries
	c.lastBytes = currentBytes

	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingQueryRate returns average queries/sec over the last n seconds.
func (c *Collector) RollingQueryRate(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.queryRate[:], seconds)
}

// RollingScanRate returns average content bytes scanned/sec over the last
// n seconds.
func (c *Collector) RollingScanRate(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.scanRate[:], seconds)
}

func (c *Collector) rollingAvg(buf []int64, n int) float64 {
	count := min(n, c.ringCount)
	if count == 0 {
		return 0
	}
	var sum int64
	for i := range count {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += buf[idx]
	}
	return float64(sum) / float64(count)
}

// QueryHistory returns the per-second query counts of the last ringSize
// ticks, oldest first.
func (c *Collector) QueryHistory() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, c.ringCount)
	for i := range c.ringCount {
		out[c.ringCount-1-i] = c.queryRate[(c.ringIdx-1-i+ringSize)%ringSize]
	}
	return out
}

// Uptime returns time since collector creation.
func (c *Collector) Uptime() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"events=%d resyncs=%d overflows=%d queries=%d failed=%d results=%d jobs=%d/%d scanned=%d",
		s.EventsApplied, s.Resyncs, s.Overflows, s.QueriesServed, s.QueriesFailed,
		s.ResultsSent, s.JobsCompleted, s.JobsSubmitted, s.BytesScanned,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
