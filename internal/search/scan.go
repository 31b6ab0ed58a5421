package search

import (
	"bytes"
	"context"
)

const (
	// binaryWindow is how many leading bytes are checked for NUL.
	binaryWindow = 1024
	// checkpointLines is how often a scan polls for cancellation.
	checkpointLines = 1024
)

// Line is one line of a result group.
type Line struct {
	Text   string
	Number int
	Match  bool // false for context lines
}

// Result is one unit of query output. Metadata matches carry only Path.
// Content matches carry a group of adjacent lines: matching lines plus their
// merged before/after context. Warning is set instead when a file could not
// be searched.
type Result struct {
	Path    string
	Warning string
	Lines   []Line
	IsDir   bool
}

// IsBinary reports whether data looks binary: a NUL byte in the first 1 KiB.
func IsBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), binaryWindow)], 0) >= 0
}

// lineAt returns the line starting at off (without its newline) and the
// offset of the following line.
func lineAt(data []byte, off int) (line []byte, next int) {
	if i := bytes.IndexByte(data[off:], '\n'); i >= 0 {
		return data[off : off+i], off + i + 1
	}
	return data[off:], len(data)
}

// linesBefore walks backwards from the line starting at off and returns up
// to n preceding line start offsets, nearest last.
func linesBefore(data []byte, off, n int) []int {
	if n <= 0 || off == 0 {
		return nil
	}
	starts := make([]int, 0, n)
	end := off - 1 // the newline terminating the previous line
	for len(starts) < n && end >= 0 {
		start := bytes.LastIndexByte(data[:end], '\n') + 1
		starts = append(starts, start)
		end = start - 1
	}
	// nearest-first to file order
	for i, j := 0, len(starts)-1; i < j; i, j = i+1, j-1 {
		starts[i], starts[j] = starts[j], starts[i]
	}
	return starts
}

// scanner walks one file's bytes and produces result groups in file order.
type scanner struct {
	emit    func(Result) bool
	m       *Matcher
	path    string
	data    []byte
	group   []Line
	before  int
	after   int
	last    int // highest line number already placed in a group
	pending int // after-context lines still owed to the current group
}

// Scan reports every line of data matching m, grouping each match with up
// to before/after lines of context. Overlapping or adjacent groups are
// merged. Each group is handed to emit as soon as it is complete. It returns
// ctx.Err() if cancelled at a checkpoint, or errSinkClosed if emit refused a
// result.
func Scan(ctx context.Context, path string, data []byte, m *Matcher, before, after int, emit func(Result) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := &scanner{emit: emit, m: m, path: path, data: data, before: max(before, 0), after: max(after, 0)}
	if m.find != nil {
		return s.runRegion(ctx)
	}
	return s.runLines(ctx)
}

// runRegion searches the whole buffer for the next match and only then
// looks outward for the boundaries of the line holding it.
func (s *scanner) runRegion(ctx context.Context) error {
	lineNo, lineStart, off := 1, 0, 0
	for hits := 1; off < len(s.data); hits++ {
		if hits%checkpointLines == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		i := s.m.find(s.data[off:])
		if i < 0 {
			break
		}
		start := bytes.LastIndexByte(s.data[:off+i], '\n') + 1
		lineNo += bytes.Count(s.data[lineStart:start], newline)
		lineStart = start

		s.trailing(off, start)
		line, next := lineAt(s.data, start)
		if err := s.addMatch(ctx, start, lineNo, line); err != nil {
			return err
		}
		s.pending = s.after
		off = next
	}
	s.trailing(off, len(s.data))
	return s.flush(ctx)
}

var newline = []byte{'\n'}

// trailing appends the after-context lines still owed to the group, taking
// them from the lines between off and limit.
func (s *scanner) trailing(off, limit int) {
	for s.pending > 0 && off < limit {
		line, next := lineAt(s.data, off)
		s.last++
		s.group = append(s.group, Line{Number: s.last, Text: string(line)})
		s.pending--
		off = next
	}
}

// runLines tests every line on its own, for patterns that cannot be found
// in the raw region without changing their meaning.
func (s *scanner) runLines(ctx context.Context) error {
	lineNo := 0
	for off := 0; off < len(s.data); {
		lineNo++
		if lineNo%checkpointLines == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		line, next := lineAt(s.data, off)
		switch {
		case s.m.Match(line):
			if err := s.addMatch(ctx, off, lineNo, line); err != nil {
				return err
			}
			s.pending = s.after
		case s.pending > 0:
			s.group = append(s.group, Line{Number: lineNo, Text: string(line)})
			s.last = lineNo
			s.pending--
		}
		off = next
	}
	return s.flush(ctx)
}

func (s *scanner) addMatch(ctx context.Context, off, lineNo int, line []byte) error {
	first := lineNo - s.before
	if len(s.group) > 0 && first > s.last+1 {
		if err := s.flush(ctx); err != nil {
			return err
		}
	}

	// Context before the match, excluding lines already in the group.
	starts := linesBefore(s.data, off, s.before)
	for i, start := range starts {
		n := lineNo - len(starts) + i
		if n <= s.last {
			continue
		}
		text, _ := lineAt(s.data, start)
		s.group = append(s.group, Line{Number: n, Text: string(text)})
	}

	s.group = append(s.group, Line{Number: lineNo, Text: string(line), Match: true})
	s.last = lineNo
	return nil
}

// flush emits the current group. The query may have ended while the group
// was built; nothing is emitted then.
func (s *scanner) flush(ctx context.Context) error {
	if len(s.group) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r := Result{Path: s.path, Lines: s.group}
	s.group = nil
	if !s.emit(r) {
		return errSinkClosed
	}
	return nil
}
