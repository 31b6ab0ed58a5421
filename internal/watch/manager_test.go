package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ffind/internal/event"
	"github.com/bamsammich/ffind/internal/filter"
	"github.com/bamsammich/ffind/internal/index"
	"github.com/bamsammich/ffind/internal/stats"
)

// fakeSource records watch registrations; tests feed events by calling the
// manager directly or through the events channel.
type fakeSource struct {
	mu      sync.Mutex
	dirs    map[WatchID]string
	ids     map[string]WatchID
	limit   map[string]bool // dirs that fail with ErrWatchLimit
	events  chan RawEvent
	next    WatchID
	follows bool
}

func newFakeSource(follows bool) *fakeSource {
	return &fakeSource{
		dirs:    make(map[WatchID]string),
		ids:     make(map[string]WatchID),
		limit:   make(map[string]bool),
		events:  make(chan RawEvent, 64),
		follows: follows,
	}
}

func (f *fakeSource) Add(dir string) (WatchID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.limit[dir] {
		return 0, ErrWatchLimit
	}
	if id, ok := f.ids[dir]; ok {
		return id, nil
	}
	f.next++
	f.dirs[f.next] = dir
	f.ids[dir] = f.next
	return f.next, nil
}

func (f *fakeSource) Remove(id WatchID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, f.dirs[id])
	delete(f.dirs, id)
	return nil
}

func (f *fakeSource) FollowsRenames() bool      { return f.follows }
func (f *fakeSource) Events() <-chan RawEvent { return f.events }
func (f *fakeSource) Close() error            { close(f.events); return nil }

func (f *fakeSource) watched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.ids))
	for d := range f.ids {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// busySource creates an entry in every directory as it is watched, standing
// in for a writer racing the initial crawl.
type busySource struct{ *fakeSource }

func (b busySource) Add(dir string) (WatchID, error) {
	if err := os.WriteFile(filepath.Join(dir, "late.txt"), []byte("late"), 0o644); err != nil {
		return 0, err
	}
	return b.fakeSource.Add(dir)
}

type fixture struct {
	m      *Manager
	store  *index.Store
	src    *fakeSource
	events event.ChanSink
	root   string
}

func newFixture(t *testing.T, files map[string]string, cfg Config) *fixture {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		writeFile(t, filepath.Join(root, rel), content)
	}

	store := index.NewStore()
	src := newFakeSource(true)
	sink := make(event.ChanSink, 256)
	cfg.Roots = append([]string{root}, cfg.Roots...)
	cfg.Events = sink
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	m, err := NewManager(store, src, cfg)
	require.NoError(t, err)
	require.NoError(t, m.Start(context.Background()))
	return &fixture{m: m, store: store, src: src, events: sink, root: root}
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func (f *fixture) path(rel string) string { return filepath.Join(f.root, rel) }

func (f *fixture) has(rel string) bool {
	_, ok := f.store.LookupExact(index.ParsePath(f.path(rel)))
	return ok
}

func (f *fixture) lookup(t *testing.T, rel string) index.FileRecord {
	t.Helper()
	rec, ok := f.store.LookupExact(index.ParsePath(f.path(rel)))
	require.True(t, ok, "%s not indexed", rel)
	return rec
}

func (f *fixture) drain() []event.Event {
	var out []event.Event
	for {
		select {
		case e := <-f.events:
			out = append(out, e)
		default:
			return out
		}
	}
}

func hasEvent(events []event.Event, typ event.Type) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestStartIndexesAndWatchesEveryDirectory(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{
		"a/one.txt":   "1",
		"a/b/two.txt": "2",
		"c/three.txt": "3",
	}, Config{})

	assert.Equal(t, 7, f.store.Len()) // root, a, a/b, c + three files
	assert.Equal(t, []string{f.root, f.path("a"), f.path("a/b"), f.path("c")}, f.src.watched())
	assert.Equal(t, 4, f.m.WatchCount())

	events := f.drain()
	assert.True(t, hasEvent(events, event.WalkStarted))
	assert.True(t, hasEvent(events, event.WalkComplete))
}

func TestStartWatchesBeforeListing(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for i := range 40 {
		require.NoError(t, os.MkdirAll(filepath.Join(root, fmt.Sprintf("d%02d", i)), 0o755))
	}

	store := index.NewStore()
	src := busySource{newFakeSource(true)}
	m, err := NewManager(store, src, Config{Roots: []string{root}, Workers: 4})
	require.NoError(t, err)
	require.NoError(t, m.Start(context.Background()))

	var missing []string
	for i := range 40 {
		p := filepath.Join(root, fmt.Sprintf("d%02d", i), "late.txt")
		if _, ok := store.LookupExact(index.ParsePath(p)); !ok {
			missing = append(missing, p)
		}
	}
	assert.Empty(t, missing, "entries created once the watch exists must be listed")
	assert.Equal(t, 41, m.WatchCount())
}

func TestStartRespectsExcludes(t *testing.T) {
	t.Parallel()
	chain := filter.NewChain()
	require.NoError(t, chain.AddExclude(".git/"))
	require.NoError(t, chain.AddExclude("*.tmp"))

	f := newFixture(t, map[string]string{
		".git/HEAD": "ref",
		"keep.txt":  "k",
		"drop.tmp":  "d",
		"src/x.go":  "package x",
		"src/y.tmp": "y",
	}, Config{Filter: chain})

	assert.True(t, f.has("keep.txt"))
	assert.True(t, f.has("src/x.go"))
	assert.False(t, f.has(".git"))
	assert.False(t, f.has(".git/HEAD"))
	assert.False(t, f.has("drop.tmp"))
	assert.False(t, f.has("src/y.tmp"))
	assert.NotContains(t, f.src.watched(), f.path(".git"))
}

func TestStartRootFailure(t *testing.T) {
	t.Parallel()

	good := t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing")
	sink := make(event.ChanSink, 16)

	m, err := NewManager(index.NewStore(), newFakeSource(true), Config{Roots: []string{missing, good}, Events: sink})
	require.NoError(t, err)
	require.NoError(t, m.Start(context.Background()))

	var failed []string
	for len(sink) > 0 {
		if e := <-sink; e.Type == event.RootFailed {
			failed = append(failed, e.Path)
		}
	}
	assert.Equal(t, []string{missing}, failed)

	m, err = NewManager(index.NewStore(), newFakeSource(true), Config{Roots: []string{missing}})
	require.NoError(t, err)
	assert.ErrorIs(t, m.Start(context.Background()), ErrNoRoots)
}

func TestNewManagerDropsDuplicateRoots(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := index.NewStore()

	m, err := NewManager(store, newFakeSource(true), Config{Roots: []string{dir, dir + "/", dir}})
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, m.Roots())
	assert.Len(t, store.Roots(), 1)

	_, err = NewManager(index.NewStore(), newFakeSource(true), Config{})
	assert.ErrorIs(t, err, ErrNoRoots)
}

func TestCreateFileAndDirectory(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{"a/keep.txt": "k"}, Config{})
	ctx := context.Background()

	writeFile(t, f.path("a/new.txt"), "new")
	f.m.handle(ctx, RawEvent{Op: OpCreate, Path: f.path("a/new.txt")})
	assert.True(t, f.has("a/new.txt"))

	// A directory that already has content when its create arrives.
	writeFile(t, f.path("a/d/e/deep.txt"), "deep")
	f.m.handle(ctx, RawEvent{Op: OpCreate, Path: f.path("a/d"), IsDir: true})
	assert.True(t, f.has("a/d"))
	assert.True(t, f.has("a/d/e"))
	assert.True(t, f.has("a/d/e/deep.txt"))
	assert.Contains(t, f.src.watched(), f.path("a/d/e"))
}

func TestCreateOfVanishedPath(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, Config{})

	f.m.handle(context.Background(), RawEvent{Op: OpCreate, Path: f.path("ghost")})
	assert.False(t, f.has("ghost"))
}

func TestModifyUpdatesMetadata(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{"f.txt": "short"}, Config{})

	writeFile(t, f.path("f.txt"), "much longer content")
	f.m.handle(context.Background(), RawEvent{Op: OpModify, Path: f.path("f.txt")})
	assert.Equal(t, int64(len("much longer content")), f.lookup(t, "f.txt").Size)
}

func TestRemoveSubtreeReleasesWatches(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{"a/b/c.txt": "c", "x.txt": "x"}, Config{})

	require.NoError(t, os.RemoveAll(f.path("a")))
	f.m.handle(context.Background(), RawEvent{Op: OpRemove, Path: f.path("a"), IsDir: true})

	assert.False(t, f.has("a"))
	assert.False(t, f.has("a/b/c.txt"))
	assert.True(t, f.has("x.txt"))
	assert.Equal(t, []string{f.root}, f.src.watched())
}

func TestCookieMovePreservesInodeAndSubtree(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{"old/sub/file.txt": "data"}, Config{})
	ctx := context.Background()
	before := f.lookup(t, "old")

	require.NoError(t, os.Rename(f.path("old"), f.path("new")))
	f.m.handle(ctx, RawEvent{Op: OpMovedFrom, Path: f.path("old"), Cookie: 7, IsDir: true})
	f.m.handle(ctx, RawEvent{Op: OpMovedTo, Path: f.path("new"), Cookie: 7, IsDir: true})

	assert.False(t, f.has("old"))
	assert.False(t, f.has("old/sub/file.txt"))
	assert.Equal(t, before.Inode, f.lookup(t, "new").Inode)
	assert.True(t, f.has("new/sub/file.txt"))

	// The arena follows the rename; events under the moved directory
	// resolve to the new path.
	assert.Contains(t, f.m.byDir, f.path("new/sub"))
	assert.NotContains(t, f.m.byDir, f.path("old/sub"))
	id := f.m.byDir[f.path("new/sub")]
	writeFile(t, f.path("new/sub/added.txt"), "+")
	f.m.handle(ctx, RawEvent{Op: OpCreate, Watch: id, Name: "added.txt"})
	assert.True(t, f.has("new/sub/added.txt"))
}

func TestInodeMoveWithoutCookies(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{"dir/f.txt": "x"}, Config{})
	f.src.follows = false
	ctx := context.Background()

	require.NoError(t, os.Rename(f.path("dir"), f.path("renamed")))
	f.m.handle(ctx, RawEvent{Op: OpMovedFrom, Path: f.path("dir")})
	f.m.handle(ctx, RawEvent{Op: OpCreate, Path: f.path("renamed"), IsDir: true})

	assert.False(t, f.has("dir"))
	assert.True(t, f.has("renamed/f.txt"))
	// Path-keyed backends get fresh watches under the new name.
	assert.Contains(t, f.src.watched(), f.path("renamed"))
	assert.NotContains(t, f.src.watched(), f.path("dir"))
}

func TestMovedFromExpiresIntoDelete(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{"out/f.txt": "x"}, Config{MoveWindow: 10 * time.Millisecond})

	f.m.handle(context.Background(), RawEvent{Op: OpMovedFrom, Path: f.path("out"), Cookie: 3, IsDir: true})
	assert.True(t, f.has("out"), "held until the window passes")

	f.m.expireMoves(time.Now().Add(time.Second))
	assert.False(t, f.has("out"))
	assert.False(t, f.has("out/f.txt"))
	assert.True(t, hasEvent(f.drain(), event.MoveExpired))
}

func TestMovedToWithoutPartnerIsCreate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, Config{})

	writeFile(t, f.path("incoming/f.txt"), "x")
	f.m.handle(context.Background(), RawEvent{Op: OpMovedTo, Path: f.path("incoming"), Cookie: 99, IsDir: true})
	assert.True(t, f.has("incoming/f.txt"))
}

func TestOverflowResyncs(t *testing.T) {
	t.Parallel()
	st := stats.NewCollector()
	f := newFixture(t, map[string]string{"stay.txt": "s", "gone/x.txt": "x", "grow.txt": "1"}, Config{Stats: st})
	f.drain()

	// Changes the event stream never reported.
	require.NoError(t, os.RemoveAll(f.path("gone")))
	writeFile(t, f.path("fresh/y.txt"), "y")
	writeFile(t, f.path("grow.txt"), "grown")

	f.m.handle(context.Background(), RawEvent{Op: OpOverflow, Watch: -1})

	assert.True(t, f.has("stay.txt"))
	assert.False(t, f.has("gone"))
	assert.False(t, f.has("gone/x.txt"))
	assert.True(t, f.has("fresh/y.txt"))
	assert.Equal(t, int64(5), f.lookup(t, "grow.txt").Size)

	events := f.drain()
	assert.True(t, hasEvent(events, event.WatchOverflow))
	assert.True(t, hasEvent(events, event.ResyncTriggered))
	for _, e := range events {
		if e.Type == event.Reconciled {
			assert.Equal(t, int64(2), e.Added)   // fresh, fresh/y.txt
			assert.Equal(t, int64(2), e.Removed) // gone, gone/x.txt
		}
	}
	snap := st.Snapshot()
	assert.Equal(t, int64(1), snap.Overflows)
	assert.Equal(t, int64(1), snap.Resyncs)
}

func TestResyncThrottled(t *testing.T) {
	t.Parallel()
	st := stats.NewCollector()
	f := newFixture(t, map[string]string{"a.txt": "a"}, Config{Stats: st, ResyncInterval: time.Hour})
	ctx := context.Background()

	f.m.handle(ctx, RawEvent{Op: OpOverflow, Watch: -1})
	f.m.handle(ctx, RawEvent{Op: OpOverflow, Watch: -1})
	assert.Equal(t, int64(1), st.Snapshot().Resyncs)
	assert.Len(t, f.m.resyncPending, 1, "second resync waits for the throttle")
}

func TestWatchLimitDegrades(t *testing.T) {
	t.Parallel()
	st := stats.NewCollector()
	f := newFixture(t, nil, Config{Stats: st})
	f.drain()
	f.src.limit[f.path("big")] = true

	writeFile(t, f.path("big/f.txt"), "x")
	f.m.handle(context.Background(), RawEvent{Op: OpCreate, Path: f.path("big"), IsDir: true})

	assert.True(t, f.has("big/f.txt"), "still indexed without a watch")
	assert.NotContains(t, f.src.watched(), f.path("big"))
	assert.Equal(t, int64(1), st.Snapshot().WatchFailures)
	assert.True(t, hasEvent(f.drain(), event.ResourceExhausted))
}

func TestIgnoredReleasesArenaSlot(t *testing.T) {
	t.Parallel()
	f := newFixture(t, map[string]string{"d/f": "x"}, Config{})
	id := f.m.byDir[f.path("d")]

	f.m.handle(context.Background(), RawEvent{Op: OpIgnored, Watch: id})
	assert.NotContains(t, f.m.watches, id)
	assert.Equal(t, 1, f.m.WatchCount())
}

func TestStartReconcilesPreloadedIndex(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "live.txt"), "live")

	store := index.NewStore()
	sink := make(event.ChanSink, 16)
	m, err := NewManager(store, newFakeSource(true), Config{Roots: []string{root}, Events: sink})
	require.NoError(t, err)

	// Seed the index the way a loaded snapshot would.
	info, err := os.Lstat(root)
	require.NoError(t, err)
	require.NoError(t, store.Insert(index.FromFileInfo(index.ParsePath(root), info, 0)))
	require.NoError(t, store.Insert(index.FileRecord{Path: index.ParsePath(filepath.Join(root, "stale.txt")), Type: index.TypeRegular}))

	require.NoError(t, m.Start(context.Background()))

	_, ok := store.LookupExact(index.ParsePath(filepath.Join(root, "stale.txt")))
	assert.False(t, ok)
	_, ok = store.LookupExact(index.ParsePath(filepath.Join(root, "live.txt")))
	assert.True(t, ok)

	var rec *event.Event
	for len(sink) > 0 {
		if e := <-sink; e.Type == event.Reconciled {
			rec = &e
		}
	}
	require.NotNil(t, rec)
	assert.Equal(t, int64(1), rec.Added)
	assert.Equal(t, int64(1), rec.Removed)
}

func TestRunAppliesEventsUntilCancelled(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.m.Run(ctx) }()

	writeFile(t, f.path("f.txt"), "x")
	f.src.events <- RawEvent{Op: OpCreate, Path: f.path("f.txt")}
	assert.Eventually(t, func() bool { return f.has("f.txt") }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRunReturnsWhenSourceCloses(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, Config{})
	require.NoError(t, f.src.Close())
	assert.ErrorIs(t, f.m.Run(context.Background()), ErrSourceClosed)
}

func TestUnder(t *testing.T) {
	t.Parallel()
	assert.True(t, under("/a/b", "/a"))
	assert.True(t, under("/a", "/a"))
	assert.False(t, under("/ab", "/a"))
	assert.True(t, under("/x", "/"))
}
