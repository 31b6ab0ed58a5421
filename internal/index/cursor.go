package index

import "iter"

// CursorChunk is the number of records a cursor copies per read lock.
const CursorChunk = 256

// Cursor walks a subtree depth-first with children in name order. Each call
// to Next takes the store's read lock once, copies at most one chunk and
// remembers the last key it emitted, so writers are never blocked for longer
// than one chunk and iteration resumes correctly after concurrent mutation.
//
// Chunks are taken under separate read locks, so the walk is not a snapshot.
// A subtree Move between two chunks can appear half-applied: a directory
// already emitted under its old name is emitted again under a later new name,
// and one moved to an earlier name is skipped. Callers needing one consistent
// view use a single chunk large enough for the subtree.
type Cursor struct {
	store   *Store
	prefix  PathKey
	last    PathKey
	chunk   int
	started bool
	done    bool
}

// WithChunk overrides the chunk size. Values below one are ignored.
func (c *Cursor) WithChunk(n int) *Cursor {
	if n > 0 {
		c.chunk = n
	}
	return c
}

// Resume positions the cursor just after key. Records at or before key in
// iteration order are not emitted again.
func (c *Cursor) Resume(after PathKey) *Cursor {
	c.last = after.Clone()
	c.started = true
	c.done = false
	return c
}

// Last returns the key of the most recently emitted record.
func (c *Cursor) Last() PathKey { return c.last }

// Done reports whether the subtree has been exhausted.
func (c *Cursor) Done() bool { return c.done }

// Next returns the next chunk of records, or nil once the subtree is
// exhausted.
func (c *Cursor) Next() []FileRecord {
	if c.done {
		return nil
	}

	out := make([]FileRecord, 0, c.chunk)

	c.store.mu.RLock()
	start := c.store.lookup(c.prefix)
	complete := true
	if start != nil {
		complete = c.collect(start, c.prefix.Clone(), &out)
	}
	c.store.mu.RUnlock()

	if complete {
		c.done = true
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// collect appends records in pre-order. It returns false when the chunk
// filled up before the walk finished.
func (c *Cursor) collect(n *node, key PathKey, out *[]FileRecord) bool {
	if n.present && (!c.started || key.Compare(c.last) > 0) {
		if len(*out) == c.chunk {
			return false
		}
		rec := n.rec
		rec.Path = key
		*out = append(*out, rec)
		c.last = key
		c.started = true
	}

	for _, name := range n.names {
		childKey := key.Join(name)
		if c.started && childKey.Compare(c.last) < 0 && !c.last.HasPrefix(childKey) {
			continue
		}
		if !c.collect(n.children[name], childKey, out) {
			return false
		}
	}
	return true
}

// All iterates every remaining record, one chunk at a time.
func (c *Cursor) All() iter.Seq[FileRecord] {
	return func(yield func(FileRecord) bool) {
		for {
			chunk := c.Next()
			if chunk == nil {
				return
			}
			for _, rec := range chunk {
				if !yield(rec) {
					return
				}
			}
		}
	}
}
