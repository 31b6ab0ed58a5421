package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/bamsammich/ffind/internal/filter"
	"github.com/bamsammich/ffind/internal/index"
)

// Walker traverses a directory tree with parallel lstat workers and hands
// records to a single consumer.
type Walker struct {
	Filter *filter.Chain
	// Watch, when set, registers a directory before it is listed so that
	// entries created during the walk still produce events. It runs on the
	// walk workers and must be safe for concurrent use.
	Watch func(dir string) (WatchID, error)
	// Watched receives each Watch result on the visiting goroutine, just
	// before the directory's own record is visited.
	Watched func(dir string, id WatchID, err error)
	Workers int
}

// walkItem is one record on its way to the visitor, with the outcome of
// the directory's watch registration when one was attempted.
type walkItem struct {
	watchErr error
	rec      index.FileRecord
	watchID  WatchID
	watched  bool
}

// WalkStats summarizes one walk.
type WalkStats struct {
	Dirs   int64
	Files  int64
	Errors int64 // entries that could not be read; the walk continues past them
}

// Walk lstat's dir and everything below it. visit runs on the calling
// goroutine, and every directory is visited before any of its entries.
// rootPath and root identify the watched root dir belongs to; the filter is
// applied to paths relative to rootPath. Only a failure to read dir itself is
// returned as an error.
func (w *Walker) Walk(ctx context.Context, dir, rootPath string, root int, visit func(index.FileRecord)) (WalkStats, error) {
	info, err := os.Lstat(dir)
	if err != nil {
		return WalkStats{}, fmt.Errorf("lstat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return WalkStats{}, fmt.Errorf("%s: not a directory", dir)
	}
	if _, err := os.ReadDir(dir); err != nil {
		return WalkStats{}, fmt.Errorf("readdir %s: %w", dir, err)
	}

	workers := w.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	s := &scan{
		filter:   w.Filter,
		watch:    w.Watch,
		rootPath: rootPath,
		root:     root,
		records:  make(chan walkItem, workers*64),
	}

	go func() {
		defer close(s.records)
		s.run(ctx, dir, workers)
	}()

	var st WalkStats
	for it := range s.records {
		if it.rec.IsDir() {
			st.Dirs++
		} else {
			st.Files++
		}
		if it.watched && w.Watched != nil {
			w.Watched(it.rec.Path.String(), it.watchID, it.watchErr)
		}
		visit(it.rec)
	}
	st.Errors = s.errs.Load()
	if err := ctx.Err(); err != nil {
		return st, err
	}
	return st, nil
}

type scan struct {
	filter   *filter.Chain
	watch    func(string) (WatchID, error)
	records  chan walkItem
	rootPath string
	root     int
	errs     atomic.Int64
}

func (s *scan) run(ctx context.Context, top string, workers int) {
	workQueue := make(chan string, workers*2)
	var outstanding sync.WaitGroup // tracks directories queued but not yet processed

	var workerWg sync.WaitGroup
	for range workers {
		workerWg.Go(func() {
			for dirPath := range workQueue {
				s.scanDir(ctx, dirPath, workQueue, &outstanding)
				outstanding.Done()
			}
		})
	}

	outstanding.Add(1)
	workQueue <- top

	// Wait for all directory work to finish, then close the work queue
	// so workers exit their range loop.
	outstanding.Wait()
	close(workQueue)
	workerWg.Wait()
}

// scanDir emits the directory's own record, then its entries. The watch is
// registered before the listing: an entry created after ReadDir is then
// reported by an event rather than lost. Subdirectories are queued for other
// workers, or scanned inline when the queue is full so a busy pool cannot
// deadlock on its own queue.
func (s *scan) scanDir(ctx context.Context, dirPath string, workQueue chan<- string, outstanding *sync.WaitGroup) {
	if ctx.Err() != nil {
		return
	}

	info, err := os.Lstat(dirPath)
	if err != nil {
		s.fail(err)
		return
	}
	it := walkItem{rec: index.FromFileInfo(index.ParsePath(dirPath), info, s.root)}
	if info.IsDir() && s.watch != nil {
		it.watched = true
		it.watchID, it.watchErr = s.watch(dirPath)
	}
	if !s.send(ctx, it) {
		return
	}
	if !info.IsDir() {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		s.fail(err)
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		entryPath := filepath.Join(dirPath, entry.Name())
		isDir := entry.IsDir()
		if !s.included(entryPath, isDir) {
			continue
		}

		if isDir {
			outstanding.Add(1)
			select {
			case workQueue <- entryPath:
			default:
				s.scanDir(ctx, entryPath, workQueue, outstanding)
				outstanding.Done()
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.fail(err)
			continue
		}
		if !s.send(ctx, walkItem{rec: index.FromFileInfo(index.ParsePath(entryPath), info, s.root)}) {
			return
		}
	}
}

func (s *scan) included(path string, isDir bool) bool {
	if s.filter.Empty() {
		return true
	}
	rel, err := filepath.Rel(s.rootPath, path)
	if err != nil {
		return true
	}
	return s.filter.Keep(filepath.ToSlash(rel), isDir)
}

func (s *scan) send(ctx context.Context, it walkItem) bool {
	select {
	case s.records <- it:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *scan) fail(err error) {
	s.errs.Add(1)
	slog.Debug("walk entry skipped", "error", err)
}
