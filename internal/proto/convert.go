package proto

import (
	"fmt"

	"github.com/bamsammich/ffind/internal/filter"
	"github.com/bamsammich/ffind/internal/query"
	"github.com/bamsammich/ffind/internal/search"
)

// ToSpec converts a wire query to a query.Spec. Enum values outside their
// range are rejected here; everything else is validated by query.Compile.
func (m *QueryMsg) ToSpec() (query.Spec, error) {
	if m.Mode > ModeGlob {
		return query.Spec{}, fmt.Errorf("%w: unknown match mode %d", ErrMalformed, m.Mode)
	}
	if m.SizeOp > CmpGreater || m.MTimeOp > CmpGreater {
		return query.Spec{}, fmt.Errorf("%w: unknown comparison operator", ErrMalformed)
	}
	if m.Type > TypeDir {
		return query.Spec{}, fmt.Errorf("%w: unknown type filter %d", ErrMalformed, m.Type)
	}
	return query.Spec{
		Root:       m.Root,
		Name:       m.Name,
		Path:       m.Path,
		Content:    m.Content,
		Size:       filter.SizeExpr{Cmp: filter.Cmp(m.SizeOp), Bytes: m.Size},
		MTime:      filter.AgeExpr{Cmp: filter.Cmp(m.MTimeOp), Days: m.MTimeDays},
		Limit:      m.Limit,
		Before:     m.Before,
		After:      m.After,
		Mode:       search.Mode(m.Mode),
		Type:       query.TypeFilter(m.Type),
		IgnoreCase: m.IgnoreCase,
	}, nil
}

// FromSpec fills a wire query from spec.
func FromSpec(spec query.Spec) QueryMsg {
	return QueryMsg{
		Root:       spec.Root,
		Name:       spec.Name,
		Path:       spec.Path,
		Content:    spec.Content,
		Size:       spec.Size.Bytes,
		SizeOp:     uint8(spec.Size.Cmp),
		MTimeDays:  spec.MTime.Days,
		MTimeOp:    uint8(spec.MTime.Cmp),
		Limit:      spec.Limit,
		Before:     spec.Before,
		After:      spec.After,
		Mode:       uint8(spec.Mode),
		Type:       uint8(spec.Type),
		IgnoreCase: spec.IgnoreCase,
	}
}

// ResultToMsg converts a search result to its wire form.
func ResultToMsg(r search.Result) ResultMsg {
	msg := ResultMsg{Path: r.Path, Warning: r.Warning, IsDir: r.IsDir}
	if len(r.Lines) > 0 {
		msg.Lines = make([]LineMsg, len(r.Lines))
		for i, l := range r.Lines {
			msg.Lines[i] = LineMsg{Text: l.Text, Number: l.Number, Match: l.Match}
		}
	}
	return msg
}

// MsgToResult converts a wire result back to a search result.
func MsgToResult(m ResultMsg) search.Result {
	r := search.Result{Path: m.Path, Warning: m.Warning, IsDir: m.IsDir}
	if len(m.Lines) > 0 {
		r.Lines = make([]search.Line, len(m.Lines))
		for i, l := range m.Lines {
			r.Lines[i] = search.Line{Text: l.Text, Number: l.Number, Match: l.Match}
		}
	}
	return r
}
