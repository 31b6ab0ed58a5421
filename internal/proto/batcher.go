package proto

import "time"

// BatchConfig controls how results are grouped into KindBatch frames.
type BatchConfig struct {
	MaxCount int           // max results per batch (default 256)
	MaxBytes int           // approximate max payload bytes per batch (default 1MB)
	MaxWait  time.Duration // max time a partial batch waits before flushing (default 50ms)
}

// DefaultBatchConfig returns the default batching configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxCount: 256,
		MaxBytes: 1024 * 1024, // 1 MB
		MaxWait:  50 * time.Millisecond,
	}
}

func (c BatchConfig) withDefaults() BatchConfig {
	def := DefaultBatchConfig()
	if c.MaxCount <= 0 {
		c.MaxCount = def.MaxCount
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = def.MaxBytes
	}
	if c.MaxWait <= 0 {
		c.MaxWait = def.MaxWait
	}
	return c
}

// batcher accumulates results until a batch is full.
type batcher struct {
	pending  []ResultMsg
	cfg      BatchConfig
	curBytes int
}

func newBatcher(cfg BatchConfig) *batcher {
	return &batcher{
		cfg:     cfg,
		pending: make([]ResultMsg, 0, cfg.MaxCount),
	}
}

func (b *batcher) add(r ResultMsg) {
	b.pending = append(b.pending, r)
	b.curBytes += r.estimate()
}

// ready returns true if the batch should be flushed (full count or full bytes).
func (b *batcher) ready() bool {
	return len(b.pending) >= b.cfg.MaxCount || b.curBytes >= b.cfg.MaxBytes
}

// len returns the number of pending results.
func (b *batcher) len() int {
	return len(b.pending)
}

// flush returns the pending results and resets the batcher.
func (b *batcher) flush() []ResultMsg {
	if len(b.pending) == 0 {
		return nil
	}
	batch := b.pending
	b.pending = make([]ResultMsg, 0, b.cfg.MaxCount)
	b.curBytes = 0
	return batch
}

// estimate is an upper bound on the encoded size of r.
func (r *ResultMsg) estimate() int {
	n := 32 + len(r.Path) + len(r.Warning)
	for i := range r.Lines {
		n += 24 + len(r.Lines[i].Text)
	}
	return n
}
