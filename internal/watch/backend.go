package watch

import (
	"errors"
	"fmt"
	"log/slog"
)

// Backend names accepted by NewSource.
const (
	BackendAuto     = "auto"
	BackendInotify  = "inotify"
	BackendFsnotify = "fsnotify"
)

var errNoNative = errors.New("inotify is not available on this platform")

// NewSource returns the notification backend named by backend. "auto" picks
// inotify where available.
func NewSource(backend string) (Source, error) {
	switch backend {
	case "", BackendAuto:
		if src, err := newNativeSource(); err == nil {
			return src, nil
		} else if !errors.Is(err, errNoNative) {
			slog.Warn("native watch backend unavailable, falling back to fsnotify", "error", err)
		}
		return NewFsnotifySource()
	case BackendInotify:
		return newNativeSource()
	case BackendFsnotify:
		return NewFsnotifySource()
	default:
		return nil, fmt.Errorf("unknown watch backend %q", backend)
	}
}
