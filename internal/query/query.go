// Package query compiles client requests into immutable queries, orders
// their predicates, and executes them against the index and the content
// search pool.
package query

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bamsammich/ffind/internal/filter"
	"github.com/bamsammich/ffind/internal/index"
	"github.com/bamsammich/ffind/internal/search"
)

// MaxContext caps before/after context lines per match.
const MaxContext = 255

var ErrInvalid = errors.New("invalid query")

// TypeFilter restricts results by entry type.
type TypeFilter uint8

const (
	TypeAny TypeFilter = iota
	TypeFile
	TypeDir
)

// Spec is the uncompiled form of a query as it arrives from a client.
type Spec struct {
	Root       string // absolute; empty searches every watched root
	Name       string // basename glob; empty or "*" matches all
	Path       string // glob over the path relative to the entry's root
	Content    string
	Size       filter.SizeExpr
	MTime      filter.AgeExpr
	Limit      int
	Before     int
	After      int
	Mode       search.Mode
	Type       TypeFilter
	IgnoreCase bool
}

// Query is a validated, compiled Spec. It is immutable and safe to share.
type Query struct {
	now     time.Time
	name    *filter.Pattern
	path    *filter.Pattern
	matcher *search.Matcher
	ID      string
	root    index.PathKey
	spec    Spec
}

// Compile validates spec and compiles its patterns exactly once.
func Compile(spec Spec) (*Query, error) {
	q := &Query{
		ID:   uuid.NewString(),
		spec: spec,
		now:  time.Now(),
	}

	if spec.Root != "" {
		if !filepath.IsAbs(spec.Root) {
			return nil, fmt.Errorf("%w: root %q is not absolute", ErrInvalid, spec.Root)
		}
		q.root = index.ParsePath(spec.Root)
	}
	if spec.Type > TypeDir {
		return nil, fmt.Errorf("%w: unknown type filter %d", ErrInvalid, spec.Type)
	}
	if spec.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", ErrInvalid)
	}
	if spec.Before < 0 || spec.After < 0 || spec.Before > MaxContext || spec.After > MaxContext {
		return nil, fmt.Errorf("%w: context lines must be within 0..%d", ErrInvalid, MaxContext)
	}
	if spec.Content == "" && (spec.Before > 0 || spec.After > 0 || spec.Mode != search.ModeFixed) {
		return nil, fmt.Errorf("%w: context and match mode need a content pattern", ErrInvalid)
	}

	if spec.Name != "" {
		p, err := filter.CompileName(spec.Name, spec.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("%w: name glob: %w", ErrInvalid, err)
		}
		if !p.MatchAll() {
			q.name = p
		}
	}
	if spec.Path != "" {
		p, err := filter.CompilePattern(spec.Path, spec.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("%w: path glob: %w", ErrInvalid, err)
		}
		if !p.MatchAll() {
			q.path = p
		}
	}
	if spec.Content != "" {
		m, err := search.Compile(spec.Mode, spec.Content, spec.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		q.matcher = m
	}
	return q, nil
}

// Spec returns the spec the query was compiled from.
func (q *Query) Spec() Spec { return q.spec }

// HasContent reports whether the query needs content scanning.
func (q *Query) HasContent() bool { return q.matcher != nil }
