package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bamsammich/ffind/internal/event"
	"github.com/bamsammich/ffind/internal/index"
)

type reconcileResult struct {
	walked      int64
	added       int64
	removed     int64
	updated     int64
	preexisting bool // the index held records under the directory before the walk
}

// reconcile walks dir and brings the index in line with it: new entries are
// inserted, changed ones refreshed and entries the walk did not see removed.
// Every directory seen is watched before it is listed.
func (m *Manager) reconcile(ctx context.Context, dir string) (reconcileResult, error) {
	r, ok := m.rootOf(dir)
	if !ok {
		return reconcileResult{}, fmt.Errorf("%s is not under a watched root", dir)
	}
	prefix := index.ParsePath(dir)

	var res reconcileResult
	head := m.store.LookupSubtree(prefix).WithChunk(1)
	res.preexisting = len(head.Next()) > 0

	var seen map[string]struct{}
	if res.preexisting {
		seen = make(map[string]struct{})
	}

	st, err := m.walker.Walk(ctx, dir, r.path, r.idx, func(rec index.FileRecord) {
		res.walked++
		if seen != nil {
			seen[rec.Path.String()] = struct{}{}
		}
		switch existing, ok := m.store.LookupExact(rec.Path); {
		case !ok:
			if err := m.store.Insert(rec); err != nil {
				slog.Debug("insert skipped", "path", rec.Path, "error", err)
				return
			}
			res.added++
		case existing.Type != rec.Type || existing.Inode != rec.Inode:
			if err := m.store.Insert(rec); err != nil {
				return
			}
			res.updated++
		case changed(existing, rec):
			if err := m.store.Update(rec.Path, rec.Metadata()); err != nil {
				return
			}
			res.updated++
		}
	})
	if err != nil {
		return res, err
	}
	if st.Errors > 0 {
		slog.Debug("walk skipped unreadable entries", "dir", dir, "count", st.Errors)
	}

	if seen != nil {
		var gone []index.PathKey
		for rec := range m.store.LookupSubtree(prefix).All() {
			if _, ok := seen[rec.Path.String()]; !ok {
				gone = append(gone, rec.Path)
			}
		}
		for _, p := range gone {
			if n := m.store.Remove(p); n > 0 {
				res.removed += int64(n)
				m.removeWatches(p.String())
			}
		}
	}
	return res, nil
}

// changed compares the fields a walk can observe changing in place. Access
// time is ignored: content searches update it.
func changed(old, cur index.FileRecord) bool {
	return old.Size != cur.Size || old.Mode != cur.Mode || !old.ModTime.Equal(cur.ModTime)
}

// overflow schedules a resync of the directory the overflow was reported
// for, or of every root when the backend cannot tell.
func (m *Manager) overflow(ctx context.Context, ev RawEvent) {
	m.cfg.Stats.AddOverflows(1)

	dirs := m.Roots()
	if dir := m.resolve(ev); dir != "" {
		dirs = []string{dir}
	}
	event.Emit(m.cfg.Events, event.Event{Type: event.WatchOverflow, Count: int64(len(dirs))})

	// Lost events may include either half of a pending move; the resync
	// settles both sides.
	clear(m.byCookie)
	clear(m.byInode)

	for _, d := range dirs {
		m.resyncPending[d] = struct{}{}
	}
	m.runResyncs(ctx)
}

// runResyncs performs pending resyncs when the throttle allows. A pending
// directory covered by another pending directory is folded into it.
func (m *Manager) runResyncs(ctx context.Context) {
	if len(m.resyncPending) == 0 || !m.resync.Allow() {
		return
	}
	pending := m.resyncPending
	m.resyncPending = make(map[string]struct{})

	for dir := range pending {
		covered := false
		for other := range pending {
			if other != dir && under(dir, other) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		m.resyncDir(ctx, dir)
	}
}

func (m *Manager) resyncDir(ctx context.Context, dir string) {
	m.cfg.Stats.AddResyncs(1)
	event.Emit(m.cfg.Events, event.Event{Type: event.ResyncTriggered, Path: dir})
	start := time.Now()

	if _, err := os.Lstat(dir); err != nil {
		m.removed(dir)
		return
	}
	res, err := m.reconcile(ctx, dir)
	if err != nil {
		slog.Warn("resync failed", "dir", dir, "error", err)
		return
	}
	event.Emit(m.cfg.Events, event.Event{
		Type:     event.Reconciled,
		Path:     dir,
		Added:    res.added,
		Removed:  res.removed,
		Updated:  res.updated,
		Count:    res.walked,
		Duration: time.Since(start),
	})
}
