package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

// FsnotifySource is the portable backend. It reports full paths and has no
// rename cookies; the manager pairs renames through the index's inode map.
type FsnotifySource struct {
	watcher *fsnotify.Watcher
	events  chan RawEvent
	done    chan struct{}
	paths   map[WatchID]string
	ids     map[string]WatchID
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.Mutex
	next    WatchID
}

// NewFsnotifySource starts an fsnotify watcher.
func NewFsnotifySource() (*FsnotifySource, error) {
	w, err := fsnotify.NewBufferedWatcher(eventBuffer)
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	s := &FsnotifySource{
		watcher: w,
		events:  make(chan RawEvent, eventBuffer),
		done:    make(chan struct{}),
		paths:   make(map[WatchID]string),
		ids:     make(map[string]WatchID),
	}
	s.wg.Go(s.loop)
	return s, nil
}

const eventBuffer = 4096

func (s *FsnotifySource) Add(dir string) (WatchID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.ids[dir]; ok {
		return id, nil
	}
	if err := s.watcher.Add(dir); err != nil {
		if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EMFILE) {
			return 0, fmt.Errorf("%w: %s", ErrWatchLimit, dir)
		}
		return 0, fmt.Errorf("watch %s: %w", dir, err)
	}
	s.next++
	s.paths[s.next] = dir
	s.ids[dir] = s.next
	return s.next, nil
}

func (s *FsnotifySource) Remove(id WatchID) error {
	s.mu.Lock()
	dir, ok := s.paths[id]
	if ok {
		delete(s.paths, id)
		delete(s.ids, dir)
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}
	if err := s.watcher.Remove(dir); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
		return fmt.Errorf("unwatch %s: %w", dir, err)
	}
	return nil
}

// FollowsRenames is false: fsnotify keys watches by path.
func (s *FsnotifySource) FollowsRenames() bool { return false }

func (s *FsnotifySource) Events() <-chan RawEvent { return s.events }

func (s *FsnotifySource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.watcher.Close()
		s.wg.Wait()
	})
	return err
}

func (s *FsnotifySource) loop() {
	defer close(s.events)
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			for _, raw := range s.translate(ev) {
				if !s.send(raw) {
					return
				}
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				if !s.send(RawEvent{Op: OpOverflow, Watch: -1}) {
					return
				}
				continue
			}
			slog.Warn("fsnotify error", "error", err)
		}
	}
}

func (s *FsnotifySource) send(ev RawEvent) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// translate splits a possibly combined fsnotify op into raw events.
func (s *FsnotifySource) translate(ev fsnotify.Event) []RawEvent {
	var out []RawEvent
	if ev.Has(fsnotify.Create) {
		isDir := false
		if fi, err := os.Lstat(ev.Name); err == nil {
			isDir = fi.IsDir()
		}
		out = append(out, RawEvent{Op: OpCreate, Path: ev.Name, IsDir: isDir})
	}
	if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Chmod) {
		out = append(out, RawEvent{Op: OpModify, Path: ev.Name})
	}
	if ev.Has(fsnotify.Rename) {
		out = append(out, RawEvent{Op: OpMovedFrom, Path: ev.Name})
	}
	if ev.Has(fsnotify.Remove) {
		out = append(out, RawEvent{Op: OpRemove, Path: ev.Name})
	}
	return out
}
