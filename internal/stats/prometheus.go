package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Register exposes the collector's counters on reg. indexSize reports the
// current number of indexed records and may be nil.
func Register(reg prometheus.Registerer, c *Collector, indexSize func() int) error {
	counter := func(name, help string, load func() int64) prometheus.Collector {
		return prometheus.NewCounterFunc(
			prometheus.CounterOpts{Name: "ffind_" + name, Help: help},
			func() float64 { return float64(load()) },
		)
	}
	gauge := func(name, help string, load func() int64) prometheus.Collector {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: "ffind_" + name, Help: help},
			func() float64 { return float64(load()) },
		)
	}

	collectors := []prometheus.Collector{
		counter("watch_events_total", "Filesystem events applied to the index", c.eventsApplied.Load),
		counter("resyncs_total", "Subtree resynchronisations after overflow or watch loss", c.resyncs.Load),
		counter("watch_overflows_total", "Kernel event queue overflows", c.overflows.Load),
		counter("watch_failures_total", "Directories that could not be watched", c.watchFailures.Load),
		gauge("watches_active", "Directories currently watched", c.watchesActive.Load),
		counter("queries_total", "Queries served", c.queriesServed.Load),
		counter("queries_failed_total", "Queries that ended with an error", c.queriesFailed.Load),
		counter("results_sent_total", "Results streamed to clients", c.resultsSent.Load),
		counter("search_jobs_total", "Content search jobs submitted", c.jobsSubmitted.Load),
		counter("search_jobs_completed_total", "Content search jobs completed", c.jobsCompleted.Load),
		counter("search_jobs_failed_total", "Content search jobs that hit a per-file error", c.jobsFailed.Load),
		counter("search_jobs_abandoned_total", "Queued content search jobs dropped because their query had ended", c.jobsAbandoned.Load),
		counter("search_binary_skipped_total", "Files skipped as binary", c.binarySkipped.Load),
		counter("search_bytes_scanned_total", "Bytes of file content scanned", c.bytesScanned.Load),
		counter("search_queue_blocked_total", "Submissions that waited on a full job queue", c.queueBlocked.Load),
		gauge("search_mapped_files", "Files currently mapped by search workers", c.mappedInFlight.Load),
		gauge("search_mapped_files_peak", "Highest number of concurrently mapped files", c.mappedPeak.Load),
	}
	if indexSize != nil {
		collectors = append(collectors, gauge("index_records", "Records held in the index",
			func() int64 { return int64(indexSize()) }))
	}

	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}
