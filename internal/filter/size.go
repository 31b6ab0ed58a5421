package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseSize parses a byte count as written in config files and flags:
// a plain number, or a number followed by K, M, G or T (powers of 1024,
// case-insensitive, optionally suffixed with "B" or "iB"). Fractions are
// allowed with a unit, as in "1.5G".
func ParseSize(s string) (int64, error) {
	num := strings.TrimSpace(s)
	upper := strings.ToUpper(num)
	for _, suffix := range []string{"IB", "B"} {
		if len(upper) > len(suffix) && strings.HasSuffix(upper, suffix) {
			upper = upper[:len(upper)-len(suffix)]
			break
		}
	}
	shift := 0
	if n := len(upper); n > 0 {
		if i := strings.IndexByte("KMGT", upper[n-1]); i >= 0 {
			shift = 10 * (i + 1)
			upper = upper[:n-1]
		}
	}
	if upper == "" {
		return 0, fmt.Errorf("invalid size: %q", s)
	}
	if n, err := strconv.ParseInt(upper, 10, 64); err == nil && n >= 0 {
		if n > math.MaxInt64>>shift {
			return 0, fmt.Errorf("size out of range: %q", s)
		}
		return n << shift, nil
	}
	f, err := strconv.ParseFloat(upper, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid size: %q", s)
	}
	// float64(MaxInt64) rounds up to 2^63, which is already out of range.
	if f = f * float64(int64(1)<<shift); f >= math.MaxInt64 {
		return 0, fmt.Errorf("size out of range: %q", s)
	}
	return int64(f), nil
}

// SizeExpr is a find(1)-style size comparison: "+N" larger than, "-N"
// smaller than, "N" exactly.
type SizeExpr struct {
	Cmp   Cmp
	Bytes int64
}

// ParseSizeExpr parses "[+-]N[cbkMG]". Units are case-sensitive as in
// find: c bytes (default), b 512-byte blocks, k KiB, M MiB, G GiB.
func ParseSizeExpr(s string) (SizeExpr, error) {
	cmp, rest := splitCmp(s)
	if rest == "" {
		return SizeExpr{}, fmt.Errorf("invalid size expression: %q", s)
	}

	multiplier := int64(1)
	switch unit := rest[len(rest)-1]; unit {
	case 'c':
		rest = rest[:len(rest)-1]
	case 'b':
		multiplier = 512
		rest = rest[:len(rest)-1]
	case 'k':
		multiplier = 1024
		rest = rest[:len(rest)-1]
	case 'M':
		multiplier = 1024 * 1024
		rest = rest[:len(rest)-1]
	case 'G':
		multiplier = 1024 * 1024 * 1024
		rest = rest[:len(rest)-1]
	default:
		if unit < '0' || unit > '9' {
			return SizeExpr{}, fmt.Errorf("invalid size unit %q in %q", unit, s)
		}
	}

	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return SizeExpr{}, fmt.Errorf("invalid size expression: %q", s)
	}
	if n > math.MaxInt64/multiplier {
		return SizeExpr{}, fmt.Errorf("size expression out of range: %q", s)
	}
	return SizeExpr{Cmp: cmp, Bytes: n * multiplier}, nil
}

// Match reports whether size satisfies the expression. A zero expression
// matches everything.
func (e SizeExpr) Match(size int64) bool {
	return e.Cmp.apply(size, e.Bytes)
}

func (e SizeExpr) String() string {
	if e.Cmp == CmpNone {
		return ""
	}
	return e.Cmp.prefix() + strconv.FormatInt(e.Bytes, 10) + "c"
}
