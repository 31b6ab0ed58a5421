// Package index holds the in-memory path trie the daemon answers queries
// from. A single RWMutex guards the whole structure; the watch loop is the
// only writer and query goroutines read through short-lived cursors.
package index

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"sync/atomic"
)

var (
	ErrNotFound    = errors.New("path not indexed")
	ErrOrphan      = errors.New("parent directory not indexed")
	ErrInvalidMove = errors.New("cannot move a directory into itself")
	ErrNotRoot     = errors.New("path is not under a watched root")
)

// Root is a watched top-level directory.
type Root struct {
	Path  PathKey
	Index int
}

type node struct {
	parent   *node
	children map[string]*node
	names    []string // sorted keys of children
	name     string
	rec      FileRecord // Path is left nil; it is derived from the chain
	present  bool
	root     int // -1 unless this node is a watched root
}

func newNode(parent *node, name string) *node {
	return &node{parent: parent, name: name, root: -1}
}

func (n *node) key() PathKey {
	depth := 0
	for p := n; p.parent != nil; p = p.parent {
		depth++
	}
	k := make(PathKey, depth)
	for p := n; p.parent != nil; p = p.parent {
		depth--
		k[depth] = p.name
	}
	return k
}

func (n *node) child(name string) *node {
	if n.children == nil {
		return nil
	}
	return n.children[name]
}

func (n *node) attach(c *node) {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	if _, ok := n.children[c.name]; !ok {
		i, _ := slices.BinarySearch(n.names, c.name)
		n.names = slices.Insert(n.names, i, c.name)
	}
	n.children[c.name] = c
	c.parent = n
}

func (n *node) detach(c *node) {
	if n.children[c.name] != c {
		return
	}
	delete(n.children, c.name)
	if i, ok := slices.BinarySearch(n.names, c.name); ok {
		n.names = slices.Delete(n.names, i, i+1)
	}
	c.parent = nil
}

// pinned reports whether n is a watched root or the trie's top node. Pinned
// nodes survive even when they hold no record.
func (n *node) pinned() bool {
	return n.root >= 0 || n.parent == nil
}

// Store is the trie-backed index with a secondary inode map.
type Store struct {
	mu     sync.RWMutex
	top    *node
	inodes map[Inode]*node
	roots  []Root
	count  int

	gen atomic.Uint64
}

// NewStore returns an empty store with no roots.
func NewStore() *Store {
	return &Store{
		top:    newNode(nil, ""),
		inodes: make(map[Inode]*node),
	}
}

// AddRoot registers path as a watched root. Records may then be inserted at
// path itself without an indexed parent. Registering a path twice keeps one
// root.
func (s *Store) AddRoot(path PathKey, idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.top
	for _, name := range path {
		c := n.child(name)
		if c == nil {
			c = newNode(n, name)
			n.attach(c)
		}
		n = c
	}
	n.root = idx
	for i := range s.roots {
		if s.roots[i].Path.Equal(path) {
			s.roots[i].Index = idx
			return
		}
	}
	s.roots = append(s.roots, Root{Path: path.Clone(), Index: idx})
}

// Roots returns the registered roots in registration order.
func (s *Store) Roots() []Root {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.roots)
}

// RootFor returns the root index whose path is the longest prefix of path.
func (s *Store) RootFor(path PathKey) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best, bestLen := -1, -1
	for _, r := range s.roots {
		if path.HasPrefix(r.Path) && len(r.Path) > bestLen {
			best, bestLen = r.Index, len(r.Path)
		}
	}
	return best, best >= 0
}

// Len returns the number of indexed records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Generation increments on every successful mutation. Persistence uses it
// to count changes since the last flush.
func (s *Store) Generation() uint64 { return s.gen.Load() }

// lookup walks to path without creating anything. Caller holds the lock.
func (s *Store) lookup(path PathKey) *node {
	n := s.top
	for _, name := range path {
		if n = n.child(name); n == nil {
			return nil
		}
	}
	return n
}

// Insert adds rec or refreshes it when the path is already indexed. The
// parent must be an indexed directory unless rec.Path is a watched root.
func (s *Store) Insert(rec FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rec.Path) == 0 {
		return fmt.Errorf("insert %s: %w", rec.Path, ErrNotRoot)
	}

	n := s.lookup(rec.Path)
	if n == nil || (!n.present && n.root < 0) {
		parent := s.lookup(rec.Path.Parent())
		if parent == nil || !parent.present || parent.rec.Type != TypeDir {
			return fmt.Errorf("insert %s: %w", rec.Path, ErrOrphan)
		}
		if n == nil {
			n = newNode(parent, rec.Path.Base())
			parent.attach(n)
		}
	}

	if n.present {
		if n.rec.Type == TypeDir && rec.Type != TypeDir {
			// Directory replaced by a non-directory: its contents are gone.
			for _, name := range slices.Clone(n.names) {
				s.removeLocked(n.children[name])
			}
		}
		s.unlinkInode(n)
	} else {
		n.present = true
		s.count++
	}

	if n.root >= 0 {
		rec.Root = n.root
	} else {
		rec.Root = n.parent.rec.Root
	}
	rec.Path = nil
	n.rec = rec
	if !rec.Inode.IsZero() {
		s.inodes[rec.Inode] = n
	}
	s.gen.Add(1)
	return nil
}

// Update replaces the mutable metadata of an indexed path.
func (s *Store) Update(path PathKey, md Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.lookup(path)
	if n == nil || !n.present {
		return fmt.Errorf("update %s: %w", path, ErrNotFound)
	}
	n.rec.Size = md.Size
	n.rec.ModTime = md.ModTime
	n.rec.AccTime = md.AccTime
	n.rec.Mode = md.Mode
	s.gen.Add(1)
	return nil
}

// Remove deletes path and, for directories, everything beneath it in one
// critical section. It returns the number of records removed.
func (s *Store) Remove(path PathKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.lookup(path)
	if n == nil {
		return 0
	}
	removed := s.removeLocked(n)
	if removed > 0 {
		s.gen.Add(1)
	}
	return removed
}

func (s *Store) removeLocked(n *node) int {
	removed := 0
	var drop func(*node)
	drop = func(c *node) {
		for _, child := range c.children {
			drop(child)
		}
		if c.present {
			s.unlinkInode(c)
			c.present = false
			c.rec = FileRecord{}
			removed++
			s.count--
		}
	}
	drop(n)

	if n.root >= 0 || hasPinnedDescendant(n) {
		// Keep the skeleton that leads to watched roots.
		pruneUnpinned(n)
		return removed
	}
	s.prune(n)
	return removed
}

func hasPinnedDescendant(n *node) bool {
	for _, c := range n.children {
		if c.root >= 0 || hasPinnedDescendant(c) {
			return true
		}
	}
	return false
}

func pruneUnpinned(n *node) {
	for _, name := range slices.Clone(n.names) {
		c := n.children[name]
		if c.root >= 0 || hasPinnedDescendant(c) {
			pruneUnpinned(c)
			continue
		}
		n.detach(c)
	}
}

// prune detaches n and then any empty, record-less ancestors that are not
// part of a root's skeleton.
func (s *Store) prune(n *node) {
	for n != nil && !n.pinned() {
		parent := n.parent
		parent.detach(n)
		if parent.present || len(parent.children) > 0 {
			return
		}
		n = parent
	}
}

func (s *Store) unlinkInode(n *node) {
	if ino := n.rec.Inode; !ino.IsZero() && s.inodes[ino] == n {
		delete(s.inodes, ino)
	}
}

// Move renames oldPath to newPath in a single step. The inode is preserved
// and, for directories, the whole subtree moves with it. An existing entry
// at newPath is replaced, as rename(2) would.
func (s *Store) Move(oldPath, newPath PathKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldPath.Equal(newPath) {
		return nil
	}
	if newPath.HasPrefix(oldPath) {
		return fmt.Errorf("move %s -> %s: %w", oldPath, newPath, ErrInvalidMove)
	}

	n := s.lookup(oldPath)
	if n == nil || !n.present {
		return fmt.Errorf("move %s: %w", oldPath, ErrNotFound)
	}
	if n.root >= 0 || hasPinnedDescendant(n) {
		return fmt.Errorf("move %s: watched root cannot be moved", oldPath)
	}

	dstParent := s.lookup(newPath.Parent())
	if dstParent == nil || !dstParent.present || dstParent.rec.Type != TypeDir {
		return fmt.Errorf("move %s -> %s: %w", oldPath, newPath, ErrOrphan)
	}

	if existing := dstParent.child(newPath.Base()); existing != nil {
		if existing.pinned() || hasPinnedDescendant(existing) {
			return fmt.Errorf("move %s -> %s: destination contains a watched root", oldPath, newPath)
		}
		s.removeLocked(existing)
	}

	srcParent := n.parent
	srcParent.detach(n)
	n.name = newPath.Base()
	dstParent.attach(n)
	if !srcParent.present && len(srcParent.children) == 0 {
		s.prune(srcParent)
	}

	rootIdx := dstParent.rec.Root
	var reroot func(*node)
	reroot = func(c *node) {
		c.rec.Root = rootIdx
		for _, child := range c.children {
			reroot(child)
		}
	}
	if n.rec.Root != rootIdx {
		reroot(n)
	}

	s.gen.Add(1)
	return nil
}

func (n *node) copyOut() FileRecord {
	rec := n.rec
	rec.Path = n.key()
	return rec
}

// LookupExact returns a copy of the record at path.
func (s *Store) LookupExact(path PathKey) (FileRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.lookup(path)
	if n == nil || !n.present {
		return FileRecord{}, false
	}
	return n.copyOut(), true
}

// LookupInode returns the record currently holding ino.
func (s *Store) LookupInode(ino Inode) (FileRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.inodes[ino]
	if !ok {
		return FileRecord{}, false
	}
	return n.copyOut(), true
}

// LookupSubtree returns a cursor over prefix and everything below it.
func (s *Store) LookupSubtree(prefix PathKey) *Cursor {
	return &Cursor{store: s, prefix: prefix.Clone(), chunk: CursorChunk}
}

// Snapshot yields a copy of every record, chunk by chunk. Mutations between
// chunks are visible to later chunks.
func (s *Store) Snapshot() iter.Seq[FileRecord] {
	return s.LookupSubtree(PathKey{}).All()
}
