//go:build linux

package watch

import "log/slog"

func newNativeSource() (Source, error) {
	src, err := NewInotifySource()
	if err != nil {
		return nil, err
	}
	if limit := maxUserWatches(); limit > 0 {
		slog.Debug("inotify watch limit", "max_user_watches", limit)
	}
	return src, nil
}
