// Package filter holds the path and metadata predicates shared by the
// indexer (exclude rules) and the query planner (name/path globs, size and
// age expressions).
package filter

import (
	"fmt"
	"strings"
)

// Rule pairs a compiled pattern with its verdict.
type Rule struct {
	Pattern *Pattern
	Include bool
}

func (r Rule) String() string {
	if r.Include {
		return "+ " + r.Pattern.String()
	}
	return "- " + r.Pattern.String()
}

// Chain decides which entries the indexer records. Rules are tried in the
// order they were added and the first whose pattern matches decides; an
// entry no rule matches is kept. A nil *Chain keeps everything.
type Chain struct {
	rules []Rule
}

func NewChain() *Chain {
	return &Chain{}
}

// Add compiles pattern and appends it as an include or exclude rule.
func (c *Chain) Add(pattern string, include bool) error {
	cp, err := CompilePattern(pattern, false)
	if err != nil {
		return fmt.Errorf("pattern %q: %w", pattern, err)
	}
	c.rules = append(c.rules, Rule{Pattern: cp, Include: include})
	return nil
}

func (c *Chain) AddExclude(pattern string) error { return c.Add(pattern, false) }

func (c *Chain) AddInclude(pattern string) error { return c.Add(pattern, true) }

func (c *Chain) Empty() bool {
	return c == nil || len(c.rules) == 0
}

func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

// Keep reports whether the entry at rel, a slash-separated path relative to
// its root, belongs in the index. A directory that is not kept is pruned
// along with everything beneath it.
func (c *Chain) Keep(rel string, isDir bool) bool {
	if c == nil {
		return true
	}
	for _, r := range c.rules {
		if r.Pattern.Match(rel, isDir) {
			return r.Include
		}
	}
	return true
}

// String renders the chain in rule-file syntax, one rule per line.
func (c *Chain) String() string {
	if c.Empty() {
		return ""
	}
	lines := make([]string, len(c.rules))
	for i, r := range c.rules {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
