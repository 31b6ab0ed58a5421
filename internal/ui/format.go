package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bamsammich/ffind/internal/proto"
	"github.com/bamsammich/ffind/internal/stats"
)

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes wraps stats.FormatBytes for UI use.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// sparkWidth is the number of seconds of query activity shown by
// StatusReport.
const sparkWidth = 30

// StatusReport renders the daemon status as aligned "label  value" lines.
func StatusReport(s proto.StatusMsg, color bool) string {
	label := func(l string) string {
		l = fmt.Sprintf("%-10s", l)
		if color {
			return styleLabel.Render(l)
		}
		return l
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", label("version"), s.Version)
	fmt.Fprintf(&b, "%s %s\n", label("uptime"), FormatDuration(time.Duration(s.UptimeMs)*time.Millisecond))
	for i, r := range s.Roots {
		name := "roots"
		if i > 0 {
			name = ""
		}
		fmt.Fprintf(&b, "%s %s\n", label(name), r)
	}
	fmt.Fprintf(&b, "%s %s\n", label("records"), FormatCount(s.Records))
	fmt.Fprintf(&b, "%s %s\n", label("watches"), FormatCount(s.Watches))
	fmt.Fprintf(&b, "%s %s\n", label("queries"), FormatCount(s.Queries))
	if len(s.QueryHistory) > 0 {
		var peak int64
		for _, v := range s.QueryHistory {
			peak = max(peak, v)
		}
		fmt.Fprintf(&b, "%s %s  peak %s/s\n", label("activity"),
			Sparkline(s.QueryHistory, sparkWidth), FormatCount(peak))
	}
	fmt.Fprintf(&b, "%s %d workers, queue %d, %s jobs done\n", label("search"),
		s.Workers, s.QueueSize, FormatCount(s.JobsCompleted))
	fmt.Fprintf(&b, "%s %s resyncs, %s overflows\n", label("events"),
		FormatCount(s.Resyncs), FormatCount(s.Overflows))
	return b.String()
}

// QuerySummary is the one-line trailer printed with --stats.
func QuerySummary(end proto.EndMsg) string {
	s := fmt.Sprintf("%s results  %s candidates  %s scanned  %s",
		FormatCount(end.Results),
		FormatCount(end.Candidates),
		FormatCount(end.Jobs),
		FormatDuration(time.Duration(end.ElapsedMs)*time.Millisecond),
	)
	if end.Truncated {
		s += "  (limit reached)"
	}
	return s
}
