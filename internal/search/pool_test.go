package search_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ffind/internal/event"
	"github.com/bamsammich/ffind/internal/search"
	"github.com/bamsammich/ffind/internal/stats"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

type collector struct {
	mu      sync.Mutex
	results []search.Result
}

func (c *collector) emit(r search.Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
	return true
}

func (c *collector) byPath() map[string][]search.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string][]search.Result)
	for _, r := range c.results {
		out[r.Path] = append(out[r.Path], r)
	}
	return out
}

func TestPoolMatchesWarningsAndBinary(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	text := writeFile(t, dir, "a.txt", "hello\nworld\n")
	bin := writeFile(t, dir, "b.bin", "world\x00world\n")
	empty := writeFile(t, dir, "empty.txt", "")
	missing := filepath.Join(dir, "gone.txt")

	st := stats.NewCollector()
	events := make(event.ChanSink, 16)
	pool := search.NewPool(search.Config{Workers: 2, QueueSize: 4, Stats: st, Events: events})
	defer pool.Close()

	m, err := search.Compile(search.ModeFixed, "world", false)
	require.NoError(t, err)

	var c collector
	var wg sync.WaitGroup
	for _, p := range []string{text, bin, empty, missing} {
		wg.Add(1)
		require.NoError(t, pool.Submit(context.Background(), search.Job{
			Ctx: context.Background(), Path: p, Matcher: m, Emit: c.emit, Done: wg.Done,
		}))
	}
	wg.Wait()

	got := c.byPath()
	require.Len(t, got[text], 1)
	assert.Equal(t, []search.Line{{Number: 2, Text: "world", Match: true}}, got[text][0].Lines)
	assert.Empty(t, got[bin], "binary files are skipped")
	assert.Empty(t, got[empty])
	require.Len(t, got[missing], 1)
	assert.NotEmpty(t, got[missing][0].Warning)

	s := st.Snapshot()
	assert.Equal(t, int64(1), s.BinarySkipped)
	assert.Equal(t, int64(1), s.JobsFailed)
	assert.Equal(t, int64(4), s.JobsSubmitted)
	assert.Zero(t, s.MappedInFlight)

	ev := <-events
	assert.Equal(t, event.JobFailed, ev.Type)
	assert.Equal(t, missing, ev.Path)
}

func TestPoolMaxFileSize(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	big := writeFile(t, dir, "big.txt", strings.Repeat("x", 4096))

	pool := search.NewPool(search.Config{Workers: 1, MaxFileSize: 1024})
	defer pool.Close()
	m, err := search.Compile(search.ModeFixed, "x", false)
	require.NoError(t, err)

	var c collector
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, pool.Submit(context.Background(), search.Job{
		Path: big, Size: 4096, Matcher: m, Emit: c.emit, Done: wg.Done,
	}))
	wg.Wait()

	got := c.byPath()[big]
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Warning, "exceeds scan limit")
}

func TestPoolBackpressure(t *testing.T) {
	t.Parallel()
	const workers, queue = 2, 2
	dir := t.TempDir()

	st := stats.NewCollector()
	pool := search.NewPool(search.Config{Workers: workers, QueueSize: queue, Stats: st})
	defer pool.Close()
	m, err := search.Compile(search.ModeFixed, "hit", false)
	require.NoError(t, err)

	release := make(chan struct{})
	blockingEmit := func(search.Result) bool {
		<-release
		return true
	}

	var wg sync.WaitGroup
	submit := func(ctx context.Context, i int) error {
		p := writeFile(t, dir, fmt.Sprintf("f%03d", i), "hit\n")
		wg.Add(1)
		err := pool.Submit(ctx, search.Job{Path: p, Matcher: m, Emit: blockingEmit, Done: wg.Done})
		if err != nil {
			wg.Done()
		}
		return err
	}

	// Occupy every worker; each holds its mapping while blocked in Emit.
	for i := range workers {
		require.NoError(t, submit(context.Background(), i))
	}
	require.Eventually(t, func() bool { return st.Snapshot().MappedInFlight == workers }, 2*time.Second, 5*time.Millisecond)

	// Fill the queue.
	for i := range queue {
		require.NoError(t, submit(context.Background(), workers+i))
	}

	// The next submission blocks until its context gives up.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = submit(ctx, workers+queue)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, st.Snapshot().QueueBlocked)

	// A large candidate set streams through without exceeding the bound.
	close(release)
	for i := range 100 {
		require.NoError(t, submit(context.Background(), 100+i))
	}
	wg.Wait()

	s := st.Snapshot()
	assert.LessOrEqual(t, s.MappedPeak, int64(workers+queue))
	assert.LessOrEqual(t, s.MappedPeak, int64(workers))
	assert.Zero(t, s.MappedInFlight)
}

func TestPoolCancellationBound(t *testing.T) {
	t.Parallel()
	const workers, jobs = 2, 64
	dir := t.TempDir()

	// Large enough that a scan spans several cancellation checkpoints.
	content := strings.Repeat("some ordinary line of text\n", 20000) + "needle\n"
	var paths []string
	for i := range jobs {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f%02d", i), content))
	}

	st := stats.NewCollector()
	pool := search.NewPool(search.Config{Workers: workers, QueueSize: jobs, Stats: st})
	defer pool.Close()
	m, err := search.Compile(search.ModeFixed, "needle", false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var first sync.Once
	var completedAtCancel atomic.Int64
	emit := func(search.Result) bool {
		first.Do(func() {
			cancel()
			completedAtCancel.Store(st.Snapshot().JobsCompleted)
		})
		return ctx.Err() == nil
	}

	var wg sync.WaitGroup
	for _, p := range paths {
		wg.Add(1)
		require.NoError(t, pool.Submit(ctx, search.Job{Ctx: ctx, Path: p, Matcher: m, Emit: emit, Done: wg.Done}))
	}
	wg.Wait()

	extra := st.Snapshot().JobsCompleted - completedAtCancel.Load()
	assert.LessOrEqual(t, extra, int64(workers), "at most the in-flight scans may finish after cancel")
	assert.Less(t, st.Snapshot().JobsCompleted, int64(jobs))
}

func TestPoolCloseAbandonsQueued(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	p := writeFile(t, dir, "f", "hit\n")

	st := stats.NewCollector()
	pool := search.NewPool(search.Config{Workers: 1, QueueSize: 4, Stats: st})
	m, err := search.Compile(search.ModeFixed, "hit", false)
	require.NoError(t, err)

	release := make(chan struct{})
	var done atomic.Int32
	for range 4 {
		require.NoError(t, pool.Submit(context.Background(), search.Job{
			Path: p, Matcher: m,
			Emit: func(search.Result) bool { <-release; return true },
			Done: func() { done.Add(1) },
		}))
	}
	require.Eventually(t, func() bool { return st.Snapshot().MappedInFlight == 1 }, 2*time.Second, 5*time.Millisecond)

	time.AfterFunc(20*time.Millisecond, func() { close(release) })
	pool.Close()

	assert.Equal(t, int32(4), done.Load(), "every job is finished or abandoned exactly once")
	err = pool.Submit(context.Background(), search.Job{Path: p, Matcher: m})
	require.ErrorIs(t, err, search.ErrPoolClosed)
	pool.Close()
}
