package search

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/bamsammich/ffind/internal/filter"
)

// Mode selects how a content pattern is interpreted.
type Mode uint8

const (
	ModeFixed Mode = iota
	ModeRegex
	ModeGlob
)

var modeNames = [...]string{
	ModeFixed: "fixed",
	ModeRegex: "regex",
	ModeGlob:  "glob",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode maps a mode name to its Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown match mode %q", s)
}

var ErrEmptyPattern = errors.New("empty content pattern")

// Matcher tests single lines against a compiled content pattern. It is
// compiled once per query and shared read-only by every search worker.
type Matcher struct {
	match func(line []byte) bool
	// find returns the offset of the first match in a whole region, or -1.
	// It is set only for patterns that can never span a line break.
	find    func(region []byte) int
	pattern string
	mode    Mode
	fold    bool
}

// Compile builds a matcher for pattern. fold makes the match
// case-insensitive in every mode.
func Compile(mode Mode, pattern string, fold bool) (*Matcher, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	m := &Matcher{pattern: pattern, mode: mode, fold: fold}

	switch mode {
	case ModeFixed:
		needle := []byte(pattern)
		switch {
		case !fold:
			m.find = func(d []byte) int { return bytes.Index(d, needle) }
		case isASCII(needle):
			lower := bytes.ToLower(needle)
			m.find = func(d []byte) int { return indexFoldASCII(d, lower) }
		default:
			re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(pattern))
			if err != nil {
				return nil, err
			}
			m.find = func(d []byte) int {
				if loc := re.FindIndex(d); loc != nil {
					return loc[0]
				}
				return -1
			}
		}
		find := m.find
		m.match = func(line []byte) bool { return find(line) >= 0 }
		if bytes.IndexByte(needle, '\n') >= 0 {
			m.find = nil
		}
	case ModeRegex:
		expr := pattern
		if fold {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile regex %q: %w", pattern, err)
		}
		m.match = re.Match
	case ModeGlob:
		expr := filter.LineRegex(pattern)
		if fold {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
		}
		m.match = re.Match
	default:
		return nil, fmt.Errorf("unknown match mode %d", mode)
	}
	return m, nil
}

// Match reports whether line (without its terminator) matches.
func (m *Matcher) Match(line []byte) bool { return m.match(line) }

func (m *Matcher) Mode() Mode { return m.mode }
func (m *Matcher) Pattern() string { return m.pattern }
func (m *Matcher) IgnoreCase() bool { return m.fold }
func (m *Matcher) String() string { return m.mode.String() + ":" + m.pattern }

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// indexFoldASCII returns the offset of the first occurrence of lowerNeedle
// in s under ASCII case folding, or -1. lowerNeedle must already be
// lower-case.
func indexFoldASCII(s, lowerNeedle []byte) int {
	n := len(lowerNeedle)
	if n == 0 {
		return 0
	}
	first := lowerNeedle[0]
	for i := 0; i+n <= len(s); i++ {
		if lowerASCII(s[i]) != first {
			continue
		}
		j := 1
		for j < n && lowerASCII(s[i+j]) == lowerNeedle[j] {
			j++
		}
		if j == n {
			return i
		}
	}
	return -1
}
