package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/ffind/internal/event"
	"github.com/bamsammich/ffind/internal/filter"
	"github.com/bamsammich/ffind/internal/index"
	"github.com/bamsammich/ffind/internal/stats"
)

// DefaultMoveWindow is how long a moved-from waits for its moved-to.
const DefaultMoveWindow = time.Second

var (
	// ErrNoRoots is returned by Start when no configured root could be indexed.
	ErrNoRoots = errors.New("no watched root could be indexed")
	// ErrSourceClosed is returned by Run when the backend stops delivering events.
	ErrSourceClosed = errors.New("watch source closed")

	errRootRemoved = errors.New("watched root was removed")
)

// Config controls the manager.
type Config struct {
	Filter *filter.Chain
	Stats  *stats.Collector
	Events event.Sink
	Roots  []string
	// Workers is the number of parallel lstat workers per walk.
	Workers int
	// MoveWindow bounds how long a moved-from is held for pairing before it
	// is treated as a delete.
	MoveWindow time.Duration
	// ResyncInterval is the minimum spacing between overflow resyncs.
	ResyncInterval time.Duration
}

type root struct {
	path string
	key  index.PathKey
	idx  int
	ok   bool
}

type pendingMove struct {
	deadline time.Time
	path     string
}

// Manager owns the index's write side. After Start, only the Run goroutine
// mutates the store.
type Manager struct {
	store  *index.Store
	src    Source
	walker *Walker
	cfg    Config
	roots  []root

	// Watch arena: the manager's view of which directory each watch covers.
	watches map[WatchID]string
	byDir   map[string]WatchID

	byCookie map[uint32]pendingMove
	byInode  map[index.Inode]pendingMove

	resync        *rate.Limiter
	resyncPending map[string]struct{}
	warn          *rate.Limiter
}

// NewManager registers cfg.Roots with store. Roots are made absolute;
// duplicates are dropped and nested roots are kept with a warning.
func NewManager(store *index.Store, src Source, cfg Config) (*Manager, error) {
	if cfg.MoveWindow <= 0 {
		cfg.MoveWindow = DefaultMoveWindow
	}
	if cfg.ResyncInterval <= 0 {
		cfg.ResyncInterval = time.Second
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}

	m := &Manager{
		store:         store,
		src:           src,
		cfg:           cfg,
		watches:       make(map[WatchID]string),
		byDir:         make(map[string]WatchID),
		byCookie:      make(map[uint32]pendingMove),
		byInode:       make(map[index.Inode]pendingMove),
		resync:        rate.NewLimiter(rate.Every(cfg.ResyncInterval), 1),
		resyncPending: make(map[string]struct{}),
		// At most one degraded-mode warning every 10 seconds.
		warn: rate.NewLimiter(rate.Every(10*time.Second), 1),
	}
	m.walker = &Walker{
		Filter:  cfg.Filter,
		Watch:   src.Add,
		Watched: m.recordWatch,
		Workers: cfg.Workers,
	}

	seen := make(map[string]bool)
	for _, p := range cfg.Roots {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("root %s: %w", p, err)
		}
		abs = filepath.Clean(abs)
		if seen[abs] {
			slog.Warn("duplicate root ignored", "root", abs)
			continue
		}
		seen[abs] = true
		for _, r := range m.roots {
			if under(abs, r.path) || under(r.path, abs) {
				slog.Warn("overlapping roots", "root", abs, "other", r.path)
			}
		}
		r := root{path: abs, key: index.ParsePath(abs), idx: len(m.roots)}
		store.AddRoot(r.key, r.idx)
		m.roots = append(m.roots, r)
	}
	if len(m.roots) == 0 {
		return nil, ErrNoRoots
	}
	return m, nil
}

// Roots returns the cleaned root paths in index order.
func (m *Manager) Roots() []string {
	out := make([]string, len(m.roots))
	for i, r := range m.roots {
		out[i] = r.path
	}
	return out
}

// Start walks every root, reconciling it with whatever the index already
// holds, and registers a watch for each directory as it is indexed. A root
// that cannot be walked is reported and skipped; Start fails only when none
// can be.
func (m *Manager) Start(ctx context.Context) error {
	live := 0
	for i := range m.roots {
		r := &m.roots[i]
		event.Emit(m.cfg.Events, event.Event{Type: event.WalkStarted, Path: r.path, Root: r.idx})
		start := time.Now()

		res, err := m.reconcile(ctx, r.path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			event.Emit(m.cfg.Events, event.Event{Type: event.RootFailed, Path: r.path, Root: r.idx, Error: err})
			continue
		}
		r.ok = true
		live++
		event.Emit(m.cfg.Events, event.Event{
			Type:     event.WalkComplete,
			Path:     r.path,
			Root:     r.idx,
			Count:    res.walked,
			Duration: time.Since(start),
		})
		if res.added+res.removed+res.updated > 0 && res.preexisting {
			event.Emit(m.cfg.Events, event.Event{
				Type:    event.Reconciled,
				Path:    r.path,
				Root:    r.idx,
				Added:   res.added,
				Removed: res.removed,
				Updated: res.updated,
			})
		}
	}
	if live == 0 {
		return ErrNoRoots
	}
	return nil
}

// Run applies filesystem events to the index until ctx is cancelled or the
// source closes.
func (m *Manager) Run(ctx context.Context) error {
	tick := min(m.cfg.MoveWindow/2, 250*time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-m.src.Events():
			if !ok {
				return ErrSourceClosed
			}
			m.handle(ctx, ev)
		case now := <-ticker.C:
			m.expireMoves(now)
			m.runResyncs(ctx)
		}
	}
}

func (m *Manager) handle(ctx context.Context, ev RawEvent) {
	m.cfg.Stats.AddEventsApplied(1)

	switch ev.Op {
	case OpOverflow:
		m.overflow(ctx, ev)
		return
	case OpIgnored:
		m.dropWatch(ev.Watch)
		return
	}

	path := m.resolve(ev)
	if path == "" {
		return
	}
	r, ok := m.rootOf(path)
	if !ok {
		return
	}
	if path != r.path && !m.included(r, path, ev.IsDir) {
		return
	}

	switch ev.Op {
	case OpCreate:
		m.created(ctx, path)
	case OpModify:
		m.modified(ctx, path)
	case OpRemove:
		m.removed(path)
	case OpMovedFrom:
		m.movedFrom(path, ev.Cookie)
	case OpMovedTo:
		m.movedTo(ctx, path, ev.Cookie)
	}
}

func (m *Manager) resolve(ev RawEvent) string {
	if ev.Path != "" {
		return filepath.Clean(ev.Path)
	}
	dir, ok := m.watches[ev.Watch]
	if !ok {
		return ""
	}
	if ev.Name == "" {
		return dir
	}
	return filepath.Join(dir, ev.Name)
}

func (m *Manager) rootOf(path string) (*root, bool) {
	var best *root
	for i := range m.roots {
		r := &m.roots[i]
		if under(path, r.path) && (best == nil || len(r.path) > len(best.path)) {
			best = r
		}
	}
	return best, best != nil
}

func (m *Manager) included(r *root, path string, isDir bool) bool {
	if m.cfg.Filter.Empty() {
		return true
	}
	rel, err := filepath.Rel(r.path, path)
	if err != nil {
		return true
	}
	return m.cfg.Filter.Keep(filepath.ToSlash(rel), isDir)
}

// created indexes path, walking it when it is a directory.
func (m *Manager) created(ctx context.Context, path string) {
	info, err := os.Lstat(path)
	if err != nil {
		// Gone again before we looked.
		m.removed(path)
		return
	}

	// Without cookies a rename shows up as moved-from then create.
	if len(m.byInode) > 0 {
		rec := index.FromFileInfo(index.ParsePath(path), info, 0)
		if pm, ok := m.byInode[rec.Inode]; ok && !rec.Inode.IsZero() {
			delete(m.byInode, rec.Inode)
			m.completeMove(ctx, pm.path, path)
			return
		}
	}

	if info.IsDir() {
		m.walkInto(ctx, path)
		return
	}
	m.insert(path, info)
}

func (m *Manager) insert(path string, info os.FileInfo) {
	r, ok := m.rootOf(path)
	if !ok {
		return
	}
	rec := index.FromFileInfo(index.ParsePath(path), info, r.idx)
	if err := m.store.Insert(rec); err != nil {
		// The parent is not indexed (excluded, or its create is still
		// ahead of us); the parent's own walk will pick this up.
		slog.Debug("insert skipped", "path", path, "error", err)
	}
}

// walkInto indexes a new directory subtree and watches its directories.
func (m *Manager) walkInto(ctx context.Context, dir string) {
	r, ok := m.rootOf(dir)
	if !ok {
		return
	}
	_, err := m.walker.Walk(ctx, dir, r.path, r.idx, func(rec index.FileRecord) {
		if err := m.store.Insert(rec); err != nil {
			slog.Debug("insert skipped", "path", rec.Path, "error", err)
		}
	})
	if err != nil && ctx.Err() == nil {
		slog.Debug("walk of new directory failed", "dir", dir, "error", err)
		m.removed(dir)
	}
}

func (m *Manager) modified(ctx context.Context, path string) {
	info, err := os.Lstat(path)
	if err != nil {
		m.removed(path)
		return
	}
	key := index.ParsePath(path)
	existing, ok := m.store.LookupExact(key)
	if !ok {
		m.created(ctx, path)
		return
	}
	rec := index.FromFileInfo(key, info, existing.Root)
	if rec.Type != existing.Type || rec.Inode != existing.Inode {
		if rec.IsDir() {
			m.walkInto(ctx, path)
			return
		}
		m.insert(path, info)
		return
	}
	if err := m.store.Update(key, rec.Metadata()); err != nil {
		slog.Debug("update skipped", "path", path, "error", err)
	}
}

func (m *Manager) removed(path string) {
	m.store.Remove(index.ParsePath(path))
	m.removeWatches(path)
	for _, r := range m.roots {
		if r.path == path {
			event.Emit(m.cfg.Events, event.Event{Type: event.RootFailed, Path: path, Root: r.idx, Error: errRootRemoved})
		}
	}
}

func (m *Manager) movedFrom(path string, cookie uint32) {
	rec, ok := m.store.LookupExact(index.ParsePath(path))
	if !ok {
		return
	}
	pm := pendingMove{path: path, deadline: time.Now().Add(m.cfg.MoveWindow)}
	switch {
	case cookie != 0:
		m.byCookie[cookie] = pm
	case !rec.Inode.IsZero():
		m.byInode[rec.Inode] = pm
	default:
		m.removed(path)
	}
}

func (m *Manager) movedTo(ctx context.Context, path string, cookie uint32) {
	if cookie != 0 {
		if pm, ok := m.byCookie[cookie]; ok {
			delete(m.byCookie, cookie)
			m.completeMove(ctx, pm.path, path)
			return
		}
	}
	// Moved in from outside the watched tree.
	m.created(ctx, path)
}

func (m *Manager) completeMove(ctx context.Context, oldPath, newPath string) {
	if oldPath == newPath {
		m.modified(ctx, newPath)
		return
	}
	if _, ok := m.rootOf(newPath); !ok {
		m.removed(oldPath)
		return
	}

	oldKey, newKey := index.ParsePath(oldPath), index.ParsePath(newPath)
	rec, ok := m.store.LookupExact(oldKey)
	if !ok {
		m.created(ctx, newPath)
		return
	}
	if err := m.store.Move(oldKey, newKey); err != nil {
		slog.Debug("move fell back to remove and create", "from", oldPath, "to", newPath, "error", err)
		m.removed(oldPath)
		m.created(ctx, newPath)
		return
	}

	if rec.IsDir() {
		if m.src.FollowsRenames() {
			m.rekeyWatches(oldPath, newPath)
		} else {
			m.removeWatches(oldPath)
			for rec := range m.store.LookupSubtree(newKey).All() {
				if rec.IsDir() {
					m.addWatch(rec.Path.String())
				}
			}
		}
	}
	if info, err := os.Lstat(newPath); err == nil {
		m.store.Update(newKey, index.FromFileInfo(newKey, info, 0).Metadata()) //nolint:errcheck // just moved
	}
}

// expireMoves turns moved-from entries that found no partner within the
// window into deletes.
func (m *Manager) expireMoves(now time.Time) {
	expire := func(pm pendingMove) {
		m.removed(pm.path)
		event.Emit(m.cfg.Events, event.Event{Type: event.MoveExpired, Path: pm.path})
	}
	for cookie, pm := range m.byCookie {
		if now.After(pm.deadline) {
			delete(m.byCookie, cookie)
			expire(pm)
		}
	}
	for ino, pm := range m.byInode {
		if now.After(pm.deadline) {
			delete(m.byInode, ino)
			expire(pm)
		}
	}
}

func (m *Manager) addWatch(dir string) {
	id, err := m.src.Add(dir)
	m.recordWatch(dir, id, err)
}

// recordWatch enters a registration into the arena. It runs on the goroutine
// that owns the manager's maps.
func (m *Manager) recordWatch(dir string, id WatchID, err error) {
	if err != nil {
		if errors.Is(err, ErrWatchLimit) {
			m.cfg.Stats.AddWatchFailures(1)
			if m.warn.Allow() {
				event.Emit(m.cfg.Events, event.Event{Type: event.ResourceExhausted, Path: dir, Error: err})
			}
			return
		}
		slog.Debug("watch not added", "dir", dir, "error", err)
		return
	}
	if old, ok := m.watches[id]; ok {
		if old == dir {
			return
		}
		delete(m.byDir, old)
	} else {
		m.cfg.Stats.AddWatches(1)
	}
	if prev, ok := m.byDir[dir]; ok && prev != id {
		delete(m.watches, prev)
		m.cfg.Stats.AddWatches(-1)
	}
	m.watches[id] = dir
	m.byDir[dir] = id
}

func (m *Manager) dropWatch(id WatchID) {
	dir, ok := m.watches[id]
	if !ok {
		return
	}
	delete(m.watches, id)
	if m.byDir[dir] == id {
		delete(m.byDir, dir)
	}
	m.cfg.Stats.AddWatches(-1)
}

func (m *Manager) removeWatches(dir string) {
	for d, id := range m.byDir {
		if under(d, dir) {
			if err := m.src.Remove(id); err != nil {
				slog.Debug("watch not removed", "dir", d, "error", err)
			}
			m.dropWatch(id)
		}
	}
}

func (m *Manager) rekeyWatches(oldDir, newDir string) {
	moved := make(map[string]WatchID)
	for d, id := range m.byDir {
		if under(d, oldDir) {
			moved[newDir+d[len(oldDir):]] = id
			delete(m.byDir, d)
		}
	}
	for d, id := range moved {
		m.byDir[d] = id
		m.watches[id] = d
	}
}

// WatchCount returns the number of directories currently watched.
func (m *Manager) WatchCount() int { return len(m.watches) }

// under reports whether path is dir or lies below it.
func under(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasPrefix(path, dir) {
		return false
	}
	return strings.HasSuffix(dir, string(filepath.Separator)) || path[len(dir)] == filepath.Separator
}
