// Package search runs content scans for queries on a fixed pool of workers
// fed through a bounded queue.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/ffind/internal/event"
	"github.com/bamsammich/ffind/internal/platform"
	"github.com/bamsammich/ffind/internal/stats"
)

var (
	ErrPoolClosed = errors.New("search pool closed")
	errSinkClosed = errors.New("result sink closed")
)

// Job asks the pool to scan one file.
type Job struct {
	Ctx     context.Context //nolint:containedctx // jobs outlive Submit and carry their query's lifetime
	Matcher *Matcher
	// Emit delivers a result to the query. It returns false once the query
	// no longer wants results. Called concurrently from several workers.
	Emit    func(Result) bool
	Done    func() // called exactly once when the job is finished or abandoned
	Path    string
	QueryID string
	Size    int64
	Before  int
	After   int
}

// Config controls pool behavior.
type Config struct {
	Stats       *stats.Collector
	Events      event.Sink
	Workers     int
	QueueSize   int
	MaxFileSize int64         // 0 means no limit
	BlockWarn   time.Duration // how long Submit may wait before warning
}

// Pool is a fixed set of workers consuming a bounded job queue.
type Pool struct {
	cfg  Config
	jobs chan Job
	done chan struct{}
	warn *rate.Limiter

	mu     sync.RWMutex // held for reading by Submit, for writing by Close
	closed bool
	wg     sync.WaitGroup
}

// NewPool starts cfg.Workers workers.
func NewPool(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	if cfg.BlockWarn <= 0 {
		cfg.BlockWarn = 250 * time.Millisecond
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}

	p := &Pool{
		cfg:  cfg,
		jobs: make(chan Job, cfg.QueueSize),
		done: make(chan struct{}),
		// At most one degraded-mode warning every 10 seconds.
		warn: rate.NewLimiter(rate.Every(10*time.Second), 1),
	}
	for id := range cfg.Workers {
		p.wg.Go(func() { p.worker(id) })
	}
	return p
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.cfg.Workers }

// QueueSize returns the capacity of the job queue.
func (p *Pool) QueueSize() int { return p.cfg.QueueSize }

// Submit enqueues job, blocking while the queue is full. It returns
// ctx.Err() if ctx ends first; job.Done is then not called.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		p.cfg.Stats.AddJobsSubmitted(1)
		return nil
	default:
	}

	// Queue full: this is the backpressure path.
	p.cfg.Stats.AddQueueBlocked(1)
	timer := time.NewTimer(p.cfg.BlockWarn)
	defer timer.Stop()
	start := time.Now()
	for {
		select {
		case p.jobs <- job:
			p.cfg.Stats.AddJobsSubmitted(1)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if p.warn.Allow() {
				slog.Warn("search queue saturated, queries are being throttled",
					"workers", p.cfg.Workers, "queue", p.cfg.QueueSize, "waited", time.Since(start))
				event.Emit(p.cfg.Events, event.Event{
					Type:     event.ResourceExhausted,
					QueryID:  job.QueryID,
					Path:     job.Path,
					Duration: time.Since(start),
				})
			}
		}
	}
}

// Close stops accepting jobs, abandons whatever is still queued and waits
// for the workers to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
}

func (p *Pool) worker(_ int) {
	for {
		select {
		case job := <-p.jobs:
			p.process(job)
		case <-p.done:
			// Drain: nothing can be enqueued once closed is set.
			for {
				select {
				case job := <-p.jobs:
					finish(job)
				default:
					return
				}
			}
		}
	}
}

func finish(job Job) {
	if job.Done != nil {
		job.Done()
	}
}

func (p *Pool) process(job Job) {
	defer finish(job)

	ctx := job.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	// Checkpoint: the query may have gone away while the job was queued.
	// Such jobs are dropped without touching the file.
	if ctx.Err() != nil {
		p.cfg.Stats.AddJobsAbandoned(1)
		return
	}

	err := p.scanFile(ctx, job)
	switch {
	case err == nil:
		p.cfg.Stats.AddJobsCompleted(1)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, errSinkClosed):
		// Abandoned; nothing to report.
	default:
		p.cfg.Stats.AddJobsFailed(1)
		event.Emit(p.cfg.Events, event.Event{
			Type:    event.JobFailed,
			QueryID: job.QueryID,
			Path:    job.Path,
			Error:   err,
		})
		job.Emit(Result{Path: job.Path, Warning: err.Error()})
	}
}

func (p *Pool) scanFile(ctx context.Context, job Job) error {
	if p.cfg.MaxFileSize > 0 && job.Size > p.cfg.MaxFileSize {
		return fmt.Errorf("skipped: %s exceeds scan limit", stats.FormatBytes(job.Size))
	}

	region, err := platform.Open(job.Path)
	if err != nil {
		return err
	}
	p.cfg.Stats.MapStarted()
	defer func() {
		region.Close()
		p.cfg.Stats.MapDone()
	}()

	if IsBinary(region.Data) {
		p.cfg.Stats.AddBinarySkipped(1)
		return nil
	}

	err = Scan(ctx, job.Path, region.Data, job.Matcher, job.Before, job.After, job.Emit)
	p.cfg.Stats.AddBytesScanned(int64(len(region.Data)))
	return err
}
