//go:build linux

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/bamsammich/ffind/internal/index"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mask   uint32
		op     Op
		isDir  bool
		keep   bool
		cookie uint32
	}{
		{name: "create file", mask: unix.IN_CREATE, op: OpCreate, keep: true},
		{name: "create dir", mask: unix.IN_CREATE | unix.IN_ISDIR, op: OpCreate, isDir: true, keep: true},
		{name: "moved from", mask: unix.IN_MOVED_FROM, op: OpMovedFrom, keep: true, cookie: 9},
		{name: "moved to", mask: unix.IN_MOVED_TO | unix.IN_ISDIR, op: OpMovedTo, isDir: true, keep: true, cookie: 9},
		{name: "close write", mask: unix.IN_CLOSE_WRITE, op: OpModify, keep: true},
		{name: "delete self", mask: unix.IN_DELETE_SELF, op: OpRemove, isDir: true, keep: true},
		{name: "ignored", mask: unix.IN_IGNORED, op: OpIgnored, keep: true},
		{name: "move self", mask: unix.IN_MOVE_SELF},
		{name: "open", mask: unix.IN_OPEN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, ok := translate(5, tt.mask, tt.cookie, "n")
			require.Equal(t, tt.keep, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.op, ev.Op)
			assert.Equal(t, tt.isDir, ev.IsDir)
			assert.Equal(t, tt.cookie, ev.Cookie)
			assert.Equal(t, WatchID(5), ev.Watch)
		})
	}

	ev, ok := translate(-1, unix.IN_Q_OVERFLOW, 0, "")
	require.True(t, ok)
	assert.Equal(t, OpOverflow, ev.Op)
}

func TestInotifyEndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs/readme.txt"), "hello")

	src, err := NewInotifySource()
	require.NoError(t, err)
	defer src.Close()

	store := index.NewStore()
	m, err := NewManager(store, src, Config{Roots: []string{root}, MoveWindow: 200 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, m.Start(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx) //nolint:errcheck // stopped by cancel

	has := func(rel string) func() bool {
		return func() bool {
			_, ok := store.LookupExact(index.ParsePath(filepath.Join(root, rel)))
			return ok
		}
	}
	missing := func(rel string) func() bool {
		h := has(rel)
		return func() bool { return !h() }
	}

	// Create a file and a populated directory.
	writeFile(t, filepath.Join(root, "docs/new.txt"), "n")
	assert.Eventually(t, has("docs/new.txt"), 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "a/b"), 0o755))
	writeFile(t, filepath.Join(root, "a/b/c.txt"), "c")
	assert.Eventually(t, has("a/b/c.txt"), 2*time.Second, 10*time.Millisecond)

	// Rename a directory: the subtree moves and keeps its inode.
	before, ok := store.LookupExact(index.ParsePath(filepath.Join(root, "docs")))
	require.True(t, ok)
	require.NoError(t, os.Rename(filepath.Join(root, "docs"), filepath.Join(root, "manual")))
	assert.Eventually(t, has("manual/readme.txt"), 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, missing("docs"), 2*time.Second, 10*time.Millisecond)
	after, ok := store.LookupExact(index.ParsePath(filepath.Join(root, "manual")))
	require.True(t, ok)
	assert.Equal(t, before.Inode, after.Inode)

	// Events under the renamed directory resolve to its new path.
	writeFile(t, filepath.Join(root, "manual/later.txt"), "l")
	assert.Eventually(t, has("manual/later.txt"), 2*time.Second, 10*time.Millisecond)

	// Move out of the tree: removed once the window passes.
	outside := t.TempDir()
	require.NoError(t, os.Rename(filepath.Join(root, "a"), filepath.Join(outside, "a")))
	assert.Eventually(t, missing("a/b/c.txt"), 3*time.Second, 20*time.Millisecond)

	// Delete.
	require.NoError(t, os.Remove(filepath.Join(root, "manual/later.txt")))
	assert.Eventually(t, missing("manual/later.txt"), 2*time.Second, 10*time.Millisecond)
}
