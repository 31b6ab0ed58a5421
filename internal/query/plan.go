package query

import (
	"cmp"
	"slices"

	"github.com/bamsammich/ffind/internal/index"
)

// Kind names a metadata predicate.
type Kind uint8

const (
	KindName Kind = iota + 1
	KindPath
	KindType
	KindSize
	KindMTime
	KindContent
)

var kindNames = [...]string{
	KindName:    "name",
	KindPath:    "path",
	KindType:    "type",
	KindSize:    "size",
	KindMTime:   "mtime",
	KindContent: "content",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// cost orders predicates cheapest first. Pattern checks come first because
// they prune the most; content is always last and never a metadata
// predicate.
var cost = map[Kind]int{
	KindName:    10,
	KindPath:    11,
	KindType:    20,
	KindSize:    30,
	KindMTime:   40,
	KindContent: 100,
}

// candidate is what metadata predicates see.
type candidate struct {
	rec *index.FileRecord
	rel string // path relative to the record's root
}

// Predicate is one metadata test.
type Predicate struct {
	match func(c *candidate) bool
	Kind  Kind
}

// Start is one subtree the planner will walk.
type Start struct {
	Prefix   index.PathKey
	RootPath index.PathKey
	Root     int
}

// Plan is the ordered execution strategy for a query.
type Plan struct {
	Starts     []Start
	Predicates []Predicate
	Content    bool
}

// Kinds lists the plan's predicate kinds in evaluation order, content
// included when present.
func (p Plan) Kinds() []Kind {
	out := make([]Kind, 0, len(p.Predicates)+1)
	for _, pr := range p.Predicates {
		out = append(out, pr.Kind)
	}
	if p.Content {
		out = append(out, KindContent)
	}
	return out
}

// NewPlan orders q's predicates and derives the subtrees to walk. A
// directory-anchored path glob's literal prefix is pushed down so only the
// matching subtree of each root is visited.
func NewPlan(q *Query, roots []index.Root) Plan {
	p := Plan{Content: q.HasContent()}

	if q.name != nil {
		name := q.name
		p.Predicates = append(p.Predicates, Predicate{Kind: KindName, match: func(c *candidate) bool {
			return name.Match(c.rec.Path.Base(), c.rec.IsDir())
		}})
	}
	if q.path != nil {
		path := q.path
		p.Predicates = append(p.Predicates, Predicate{Kind: KindPath, match: func(c *candidate) bool {
			return path.Match(c.rel, c.rec.IsDir())
		}})
	}
	if typ, content := q.spec.Type, p.Content; typ != TypeAny || content {
		p.Predicates = append(p.Predicates, Predicate{Kind: KindType, match: func(c *candidate) bool {
			dir := c.rec.IsDir()
			switch {
			case content && dir:
				// Directories have no content to scan.
				return false
			case typ == TypeFile:
				return !dir
			case typ == TypeDir:
				return dir
			default:
				return true
			}
		}})
	}
	if size := q.spec.Size; size.Cmp != 0 {
		p.Predicates = append(p.Predicates, Predicate{Kind: KindSize, match: func(c *candidate) bool {
			return size.Match(c.rec.Size)
		}})
	}
	if age := q.spec.MTime; age.Cmp != 0 {
		now := q.now
		p.Predicates = append(p.Predicates, Predicate{Kind: KindMTime, match: func(c *candidate) bool {
			return age.Match(c.rec.ModTime, now)
		}})
	}
	slices.SortStableFunc(p.Predicates, func(a, b Predicate) int {
		return cmp.Compare(cost[a.Kind], cost[b.Kind])
	})

	var literal index.PathKey
	if q.path != nil && q.path.LiteralPrefix() != "" {
		literal = index.ParsePath(q.path.LiteralPrefix())
	}

	for _, r := range roots {
		start := r.Path
		if len(literal) > 0 {
			start = append(r.Path.Clone(), literal...)
		}
		if q.root != nil {
			switch {
			case start.HasPrefix(q.root):
			case q.root.HasPrefix(start):
				start = q.root
			default:
				continue
			}
		}
		p.Starts = append(p.Starts, Start{Prefix: start, RootPath: r.Path, Root: r.Index})
	}
	return p
}

func (p Plan) accept(c *candidate) bool {
	for _, pr := range p.Predicates {
		if !pr.match(c) {
			return false
		}
	}
	return true
}
