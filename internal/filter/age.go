package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cmp is the comparison operator of a size or age expression.
type Cmp uint8

const (
	CmpNone Cmp = iota
	CmpLess
	CmpEqual
	CmpGreater
)

func (c Cmp) prefix() string {
	switch c {
	case CmpLess:
		return "-"
	case CmpGreater:
		return "+"
	default:
		return ""
	}
}

func (c Cmp) apply(v, ref int64) bool {
	switch c {
	case CmpLess:
		return v < ref
	case CmpEqual:
		return v == ref
	case CmpGreater:
		return v > ref
	default:
		return true
	}
}

func splitCmp(s string) (Cmp, string) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "+"):
		return CmpGreater, s[1:]
	case strings.HasPrefix(s, "-"):
		return CmpLess, s[1:]
	default:
		return CmpEqual, s
	}
}

// AgeExpr compares a modification time against now in whole days, like
// find -mtime: "+N" older than N days, "-N" newer, "N" exactly N days old.
type AgeExpr struct {
	Cmp  Cmp
	Days int32
}

// ParseAgeExpr parses "[+-]N".
func ParseAgeExpr(s string) (AgeExpr, error) {
	cmp, rest := splitCmp(s)
	n, err := strconv.ParseInt(rest, 10, 32)
	if err != nil || n < 0 {
		return AgeExpr{}, fmt.Errorf("invalid age expression: %q", s)
	}
	return AgeExpr{Cmp: cmp, Days: int32(n)}, nil
}

const day = 24 * time.Hour

// Match reports whether mtime satisfies the expression relative to now.
// Partial days are truncated.
func (e AgeExpr) Match(mtime, now time.Time) bool {
	days := int64(now.Sub(mtime) / day)
	return e.Cmp.apply(days, int64(e.Days))
}

func (e AgeExpr) String() string {
	if e.Cmp == CmpNone {
		return ""
	}
	return e.Cmp.prefix() + strconv.Itoa(int(e.Days))
}
