package filter

import (
	"regexp"
	"strings"
)

// Pattern is a compiled glob that matches slash-separated relative paths.
type Pattern struct {
	re       *regexp.Regexp
	original string
	literal  string // leading glob-free directory components, anchored only
	anchored bool   // pattern starts with / or contains /
	dirOnly  bool   // pattern ends with /
}

// CompilePattern converts a rsync-style glob into a path matcher. A pattern
// without a slash matches the basename at any depth; a pattern containing a
// slash is anchored at the root. fold makes the match case-insensitive.
func CompilePattern(pattern string, fold bool) (*Pattern, error) {
	cp := &Pattern{original: pattern}

	// Trailing / means directory-only.
	if strings.HasSuffix(pattern, "/") {
		cp.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}

	// Leading / means anchored to root.
	if strings.HasPrefix(pattern, "/") {
		cp.anchored = true
		pattern = strings.TrimPrefix(pattern, "/")
	} else if strings.Contains(pattern, "/") {
		// A / anywhere anchors the pattern, as in rsync.
		cp.anchored = true
	}

	reStr := globToRegex(pattern, true)
	if cp.anchored {
		reStr = "^" + reStr + "$"
		// A folded match can live under a differently cased directory, so
		// the prefix is only exact when it has no cased letters.
		if lit := literalDirPrefix(pattern); !fold || !hasCase(lit) {
			cp.literal = lit
		}
	} else {
		// Match against basename or any path suffix.
		reStr = "(^|/)" + reStr + "$"
	}
	if fold {
		reStr = "(?i)" + reStr
	}

	re, err := regexp.Compile(reStr)
	if err != nil {
		return nil, err
	}
	cp.re = re
	return cp, nil
}

// CompileName compiles a glob matched against a basename only, the way
// fnmatch(3) treats it without FNM_PATHNAME.
func CompileName(pattern string, fold bool) (*Pattern, error) {
	reStr := "^" + globToRegex(pattern, false) + "$"
	if fold {
		reStr = "(?i)" + reStr
	}
	re, err := regexp.Compile(reStr)
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re, original: pattern}, nil
}

// Match tests whether a relative path matches this pattern.
func (cp *Pattern) Match(relPath string, isDir bool) bool {
	if cp.dirOnly && !isDir {
		return false
	}
	return cp.re.MatchString(relPath)
}

// MatchAll reports whether the pattern accepts every path, so the planner
// can drop it.
func (cp *Pattern) MatchAll() bool {
	return cp.original == "*" || cp.original == "**"
}

// LiteralPrefix returns the directory components of an anchored pattern that
// precede its first wildcard, e.g. "src/internal" for "src/internal/*.go".
// Every path the pattern can match lies under this prefix. It is empty for
// unanchored patterns.
func (cp *Pattern) LiteralPrefix() string { return cp.literal }

func (cp *Pattern) String() string { return cp.original }

func hasCase(s string) bool {
	return strings.ToLower(s) != s || strings.ToUpper(s) != s
}

func literalDirPrefix(pattern string) string {
	parts := strings.Split(pattern, "/")
	var lit []string
	// The last component names the match itself, not a directory to descend.
	for _, p := range parts[:len(parts)-1] {
		if strings.ContainsAny(p, `*?[\`) {
			break
		}
		lit = append(lit, p)
	}
	return strings.Join(lit, "/")
}

// LineRegex converts a glob matched against a whole line of text into a
// regular expression. Unlike path globs, * and ? also match slashes.
func LineRegex(pattern string) string {
	return "^" + globToRegex(pattern, false) + "$"
}

// globToRegex converts a glob pattern to a regex string. When paths is set,
// * and ? stop at slashes and ** crosses them.
//
//nolint:gocyclo,revive // cognitive-complexity: character-by-character glob parser
func globToRegex(pattern string, paths bool) string {
	star, one := ".*", "."
	if paths {
		star, one = "[^/]*", "[^/]"
	}

	var b strings.Builder
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				// ** matches anything including /
				if paths && i+2 < len(pattern) && pattern[i+2] == '/' {
					b.WriteString("(.*/)?")
					i += 3
				} else {
					b.WriteString(".*")
					i += 2
				}
			} else {
				b.WriteString(star)
				i++
			}
		case '?':
			b.WriteString(one)
			i++
		case '[':
			// Character class, passed through to the regex.
			j := i + 1
			if j < len(pattern) && pattern[j] == '!' {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			if j < len(pattern) {
				cls := pattern[i+1 : j]
				// Convert ! to ^ for negation.
				if strings.HasPrefix(cls, "!") {
					cls = "^" + cls[1:]
				}
				b.WriteString("[" + strings.ReplaceAll(cls, `\`, `\\`) + "]")
				i = j + 1
			} else {
				b.WriteString(regexp.QuoteMeta(string(c)))
				i++
			}
		case '\\':
			// Backslash escapes the next character, as in fnmatch.
			if i+1 < len(pattern) {
				b.WriteString(regexp.QuoteMeta(string(pattern[i+1])))
				i += 2
			} else {
				b.WriteString(`\\`)
				i++
			}
		case '.', '(', ')', '+', '{', '}', '^', '$', '|', ']':
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}
