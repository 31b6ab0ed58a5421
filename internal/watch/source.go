// Package watch keeps the index in sync with the filesystem: an initial
// parallel walk per root, then a single event loop translating kernel
// notifications into index mutations.
package watch

import (
	"errors"
	"fmt"
)

// ErrWatchLimit is returned by Source.Add when the kernel refuses more
// watches (inotify's max_user_watches, ENOSPC).
var ErrWatchLimit = errors.New("watch limit reached")

// Op is the kind of a raw filesystem notification.
type Op uint8

const (
	OpCreate Op = iota + 1
	OpRemove
	OpModify
	OpMovedFrom
	OpMovedTo
	OpOverflow // the backend dropped events
	OpIgnored  // the watch is gone; release its arena slot
)

var opNames = [...]string{
	OpCreate:    "create",
	OpRemove:    "remove",
	OpModify:    "modify",
	OpMovedFrom: "moved-from",
	OpMovedTo:   "moved-to",
	OpOverflow:  "overflow",
	OpIgnored:   "ignored",
}

func (o Op) String() string {
	if o > 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// WatchID identifies a registered directory watch.
type WatchID int64

// RawEvent is one notification from a Source. Backends that know full paths
// set Path; the others set Watch and Name and the manager resolves the path
// through its watch arena, in event order.
type RawEvent struct {
	Path   string
	Name   string // entry name inside the watched directory; empty for the directory itself
	Watch  WatchID
	Cookie uint32 // pairs OpMovedFrom with OpMovedTo; 0 when the backend has none
	Op     Op
	IsDir  bool
}

// Source is a filesystem notification backend watching individual
// directories.
type Source interface {
	// Add watches dir (not recursively). Adding the same directory again
	// returns the same ID when the backend can tell.
	Add(dir string) (WatchID, error)
	// Remove stops watching. Unknown or already released IDs are ignored.
	Remove(id WatchID) error
	// FollowsRenames reports whether a watch keeps delivering events for a
	// directory after it is renamed. When false the manager re-registers
	// watches under the new path.
	FollowsRenames() bool
	Events() <-chan RawEvent
	Close() error
}
