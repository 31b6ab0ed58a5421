package persist

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/bamsammich/ffind/internal/event"
	"github.com/bamsammich/ffind/internal/index"
)

const (
	DefaultFlushInterval  = 30 * time.Second
	DefaultFlushThreshold = 100
	checkInterval         = time.Second
	shutdownSaveTimeout   = 30 * time.Second
)

// Restore loads the stored snapshot into idx. Roots must already be
// registered on idx. A snapshot taken for a different root set, or one
// that fails verification, is discarded with an IndexDiscarded event and
// the returned error; the caller falls back to a full walk either way.
// Records whose parent is missing are skipped.
func Restore(ctx context.Context, st Store, idx *index.Store, roots []string, sink event.Sink) (int, error) {
	start := time.Now()
	records, meta, err := st.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		return 0, nil
	case errors.Is(err, ErrCorrupt), errors.Is(err, ErrSchema):
		event.Emit(sink, event.Event{Type: event.IndexDiscarded, Error: err})
		return 0, err
	case err != nil:
		return 0, fmt.Errorf("load snapshot: %w", err)
	}

	if meta.Fingerprint != Fingerprint(roots) {
		err := fmt.Errorf("%w: stored %v", ErrRootsChanged, meta.Roots)
		event.Emit(sink, event.Event{Type: event.IndexDiscarded, Error: err})
		return 0, err
	}

	loaded := 0
	for i, rec := range records {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return loaded, err
			}
		}
		if idx.Insert(rec) == nil {
			loaded++
		}
	}
	event.Emit(sink, event.Event{
		Type:     event.IndexLoaded,
		Count:    int64(loaded),
		Duration: time.Since(start),
	})
	return loaded, nil
}

// FlusherConfig configures a Flusher.
type FlusherConfig struct {
	Store     Store
	Index     *index.Store
	Events    event.Sink
	Roots     []string
	Interval  time.Duration // save at least this often while changes are pending
	Threshold uint64        // save as soon as this many changes are pending
}

// Flusher saves the index whenever enough changes have accumulated or the
// flush interval has passed with changes pending, and once more on shutdown.
type Flusher struct {
	cfg FlusherConfig

	mu       sync.Mutex
	lastGen  uint64
	lastSave time.Time
}

// NewFlusher returns a flusher. Every change made before it was created
// counts as pending, so the first check after startup saves the walked
// index.
func NewFlusher(cfg FlusherConfig) *Flusher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultFlushInterval
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultFlushThreshold
	}
	if cfg.Events == nil {
		cfg.Events = event.Discard
	}
	return &Flusher{cfg: cfg, lastSave: time.Now()}
}

// Pending returns the number of index changes not yet saved.
func (f *Flusher) Pending() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg.Index.Generation() - f.lastGen
}

// Run flushes on schedule until ctx is cancelled, then saves a final
// snapshot if anything changed.
func (f *Flusher) Run(ctx context.Context) error {
	tick := time.NewTicker(min(checkInterval, f.cfg.Interval))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			if f.Pending() == 0 {
				return nil
			}
			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownSaveTimeout)
			defer cancel()
			return f.Flush(saveCtx)
		case now := <-tick.C:
			if f.due(now) {
				// A failed periodic save is retried on the next tick.
				_ = f.Flush(ctx)
			}
		}
	}
}

func (f *Flusher) due(now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	pending := f.cfg.Index.Generation() - f.lastGen
	if pending == 0 {
		return false
	}
	return pending >= f.cfg.Threshold || now.Sub(f.lastSave) >= f.cfg.Interval
}

// Flush saves the whole index now. Changes made while the snapshot is
// being written stay pending for the next flush.
func (f *Flusher) Flush(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	start := time.Now()
	gen := f.cfg.Index.Generation()
	var n int64
	records := counted(f.cfg.Index.Snapshot(), &n)

	if err := f.cfg.Store.Save(ctx, records, NewMeta(f.cfg.Roots)); err != nil {
		event.Emit(f.cfg.Events, event.Event{Type: event.IndexSaved, Error: err})
		return fmt.Errorf("save snapshot: %w", err)
	}
	f.lastGen = gen
	f.lastSave = time.Now()
	event.Emit(f.cfg.Events, event.Event{
		Type:     event.IndexSaved,
		Count:    n,
		Duration: time.Since(start),
	})
	return nil
}

func counted(seq iter.Seq[index.FileRecord], n *int64) iter.Seq[index.FileRecord] {
	return func(yield func(index.FileRecord) bool) {
		for rec := range seq {
			*n++
			if !yield(rec) {
				return
			}
		}
	}
}
