//go:build linux

package watch

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	inotifyMask = unix.IN_CREATE | unix.IN_DELETE | unix.IN_MOVED_FROM | unix.IN_MOVED_TO |
		unix.IN_MODIFY | unix.IN_CLOSE_WRITE | unix.IN_ATTRIB |
		unix.IN_DELETE_SELF | unix.IN_MOVE_SELF |
		unix.IN_ONLYDIR | unix.IN_DONT_FOLLOW

	// pollTimeoutMs bounds how long Close waits for the reader to notice.
	pollTimeoutMs = 100

	inotifyBufSize = 64 * 1024
	eventQueueSize = 4096
)

// InotifySource is the Linux backend. It reports raw watch descriptors and
// names; path resolution is left to the manager's arena so renames apply in
// event order.
type InotifySource struct {
	events chan RawEvent
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
	fd     int
}

// NewInotifySource creates an inotify instance and starts its reader.
func NewInotifySource() (*InotifySource, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, fmt.Errorf("inotify_init1: %w", err)
	}
	s := &InotifySource{
		fd:     fd,
		events: make(chan RawEvent, eventQueueSize),
		done:   make(chan struct{}),
	}
	s.wg.Go(s.readLoop)
	return s, nil
}

func (s *InotifySource) Add(dir string) (WatchID, error) {
	wd, err := unix.InotifyAddWatch(s.fd, dir, inotifyMask)
	if err != nil {
		if errors.Is(err, unix.ENOSPC) {
			return 0, fmt.Errorf("%w: %s", ErrWatchLimit, dir)
		}
		return 0, fmt.Errorf("inotify_add_watch %s: %w", dir, err)
	}
	return WatchID(wd), nil
}

func (s *InotifySource) Remove(id WatchID) error {
	_, err := unix.InotifyRmWatch(s.fd, uint32(id)) //nolint:gosec // G115: wd is a non-negative int32
	if err != nil && !errors.Is(err, unix.EINVAL) {
		return fmt.Errorf("inotify_rm_watch %d: %w", id, err)
	}
	return nil
}

// FollowsRenames is true: inotify watches are bound to the inode.
func (s *InotifySource) FollowsRenames() bool { return true }

func (s *InotifySource) Events() <-chan RawEvent { return s.events }

// Close stops the reader and releases the inotify descriptor. The events
// channel is closed once the reader has exited.
func (s *InotifySource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		err = unix.Close(s.fd)
	})
	return err
}

func (s *InotifySource) readLoop() {
	defer close(s.events)

	buf := make([]byte, inotifyBufSize)
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}} //nolint:gosec // G115: fd fits in int32
	for {
		select {
		case <-s.done:
			return
		default:
		}

		n, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			slog.Error("inotify poll failed", "error", err)
			return
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err = unix.Read(s.fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			slog.Error("inotify read failed", "error", err)
			return
		}
		if !s.dispatch(buf[:n]) {
			return
		}
	}
}

// dispatch decodes a read buffer into events. It returns false once the
// source is closing.
func (s *InotifySource) dispatch(buf []byte) bool {
	for off := 0; off+unix.SizeofInotifyEvent <= len(buf); {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[off])) //nolint:gosec // kernel-defined layout
		nameStart := off + unix.SizeofInotifyEvent
		nameEnd := nameStart + int(raw.Len)
		if nameEnd > len(buf) {
			slog.Warn("truncated inotify event", "len", raw.Len)
			return true
		}
		name := string(bytes.TrimRight(buf[nameStart:nameEnd], "\x00"))
		off = nameEnd

		ev, ok := translate(raw.Wd, raw.Mask, raw.Cookie, name)
		if !ok {
			continue
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return false
		}
	}
	return true
}

// translate maps one inotify record to a RawEvent. Records that carry
// nothing the manager acts on are dropped.
func translate(wd int32, mask, cookie uint32, name string) (RawEvent, bool) {
	ev := RawEvent{
		Watch:  WatchID(wd),
		Name:   name,
		Cookie: cookie,
		IsDir:  mask&unix.IN_ISDIR != 0,
	}
	switch {
	case mask&unix.IN_Q_OVERFLOW != 0:
		return RawEvent{Op: OpOverflow, Watch: -1}, true
	case mask&unix.IN_IGNORED != 0:
		ev.Op = OpIgnored
	case mask&unix.IN_DELETE_SELF != 0:
		ev.Op = OpRemove
		ev.IsDir = true
	case mask&unix.IN_MOVE_SELF != 0:
		// Handled through the parent's moved-from/moved-to pair.
		return RawEvent{}, false
	case mask&unix.IN_MOVED_FROM != 0:
		ev.Op = OpMovedFrom
	case mask&unix.IN_MOVED_TO != 0:
		ev.Op = OpMovedTo
	case mask&unix.IN_CREATE != 0:
		ev.Op = OpCreate
	case mask&unix.IN_DELETE != 0:
		ev.Op = OpRemove
	case mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE|unix.IN_ATTRIB) != 0:
		ev.Op = OpModify
	default:
		return RawEvent{}, false
	}
	return ev, true
}

// maxUserWatches reads the per-user inotify watch limit, or 0 if unknown.
func maxUserWatches() int {
	b, err := os.ReadFile("/proc/sys/fs/inotify/max_user_watches")
	if err != nil {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(string(bytes.TrimSpace(b)), "%d", &n); err != nil {
		return 0
	}
	return n
}
