package filter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// RuleError reports a bad line in a rule file.
type RuleError struct {
	Err  error
	Name string
	Line int
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Name, e.Line, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// LoadFile appends the rules in path to the chain. See Parse for the format.
func (c *Chain) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()
	return c.Parse(f, path)
}

// Parse appends one rule per line of r, in order:
//
//	- PATTERN  or  exclude PATTERN   skip matching entries
//	+ PATTERN  or  include PATTERN   keep matching entries
//	PATTERN                          same as "- PATTERN"
//
// Blank lines and lines starting with # are ignored. name labels errors.
func (c *Chain) Parse(r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		include, pattern := parseRule(line)
		if pattern == "" {
			return &RuleError{Name: name, Line: n, Err: fmt.Errorf("rule %q has no pattern", line)}
		}
		add := c.AddExclude
		if include {
			add = c.AddInclude
		}
		if err := add(pattern); err != nil {
			return &RuleError{Name: name, Line: n, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

func parseRule(line string) (include bool, pattern string) {
	for _, p := range []struct {
		prefix  string
		include bool
	}{
		{"+ ", true},
		{"- ", false},
		{"include ", true},
		{"exclude ", false},
	} {
		if rest, ok := strings.CutPrefix(line, p.prefix); ok {
			return p.include, strings.TrimSpace(rest)
		}
	}
	if line == "+" || line == "-" {
		return line == "+", ""
	}
	return false, line
}
