package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/ffind/internal/proto"
)

// PrinterConfig configures a Printer.
type PrinterConfig struct {
	Writer    io.Writer
	ErrWriter io.Writer
	// Highlight returns the byte ranges of every match in a line. Nil
	// disables in-line highlighting.
	Highlight func(line string) [][]int
	Color     bool
	// Context is set when before/after lines were requested; groups are
	// then separated by "--".
	Context bool
}

// Printer writes streamed results in grep's layout: "path:N:text" for
// matching lines, "path-N-text" for context lines and a bare path for
// metadata matches.
type Printer struct {
	cfg     PrinterConfig
	groups  int
	results int64
	warns   int64
}

// NewPrinter returns a printer. ErrWriter defaults to Writer.
func NewPrinter(cfg PrinterConfig) *Printer {
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = cfg.Writer
	}
	return &Printer{cfg: cfg}
}

// Print writes one result.
func (p *Printer) Print(r proto.ResultMsg) error {
	if r.Warning != "" {
		p.warns++
		_, err := fmt.Fprintf(p.cfg.ErrWriter, "ffind: %s: %s\n", r.Path, p.style(styleWarn, r.Warning))
		return err
	}
	p.results++

	if len(r.Lines) == 0 {
		path := r.Path
		if r.IsDir {
			path = p.style(styleDir, path)
		} else {
			path = p.style(stylePath, path)
		}
		_, err := fmt.Fprintln(p.cfg.Writer, path)
		return err
	}

	var b strings.Builder
	if p.cfg.Context && p.groups > 0 {
		b.WriteString(p.style(styleSep, "--"))
		b.WriteByte('\n')
	}
	p.groups++

	path := p.style(stylePath, r.Path)
	for _, l := range r.Lines {
		sep := "-"
		text := l.Text
		if l.Match {
			sep = ":"
			text = p.highlight(text)
		}
		b.WriteString(path)
		b.WriteString(p.style(styleSep, sep))
		b.WriteString(p.style(styleLineNo, strconv.Itoa(l.Number)))
		b.WriteString(p.style(styleSep, sep))
		b.WriteString(text)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.cfg.Writer, b.String())
	return err
}

// Results returns the number of non-warning results printed.
func (p *Printer) Results() int64 { return p.results }

// Warnings returns the number of warnings printed.
func (p *Printer) Warnings() int64 { return p.warns }

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.cfg.Color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) highlight(line string) string {
	if !p.cfg.Color || p.cfg.Highlight == nil {
		return line
	}
	spans := p.cfg.Highlight(line)
	if len(spans) == 0 {
		return line
	}
	var b strings.Builder
	last := 0
	for _, s := range spans {
		if s[0] < last || s[1] <= s[0] {
			continue
		}
		b.WriteString(line[last:s[0]])
		b.WriteString(styleMatch.Render(line[s[0]:s[1]]))
		last = s[1]
	}
	b.WriteString(line[last:])
	return b.String()
}
