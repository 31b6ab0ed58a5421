// Package event carries structured notifications from the indexer, the
// search pool and the protocol server to whoever is observing the daemon.
package event

import (
	"context"
	"log/slog"
	"time"
)

// Type identifies the kind of event.
type Type int

const (
	WalkStarted Type = iota + 1
	WalkComplete
	RootFailed
	WatchOverflow
	ResyncTriggered
	ResourceExhausted
	MoveExpired
	JobFailed
	QueryStarted
	QueryComplete
	IndexLoaded
	IndexSaved
	IndexDiscarded
	Reconciled
)

var typeNames = [...]string{
	WalkStarted:       "WalkStarted",
	WalkComplete:      "WalkComplete",
	RootFailed:        "RootFailed",
	WatchOverflow:     "WatchOverflow",
	ResyncTriggered:   "ResyncTriggered",
	ResourceExhausted: "ResourceExhausted",
	MoveExpired:       "MoveExpired",
	JobFailed:         "JobFailed",
	QueryStarted:      "QueryStarted",
	QueryComplete:     "QueryComplete",
	IndexLoaded:       "IndexLoaded",
	IndexSaved:        "IndexSaved",
	IndexDiscarded:    "IndexDiscarded",
	Reconciled:        "Reconciled",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Level returns the slog level an event is logged at.
func (t Type) Level() slog.Level {
	switch t {
	case RootFailed, JobFailed:
		return slog.LevelError
	case WatchOverflow, ResourceExhausted, IndexDiscarded:
		return slog.LevelWarn
	case QueryStarted, QueryComplete, MoveExpired:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Event represents a single notification from the daemon.
type Event struct {
	Timestamp time.Time
	Error     error
	Type      Type
	Path      string
	QueryID   string
	Root      int
	Count     int64 // records walked, matches emitted, entries saved...
	Added     int64 // reconciliation only
	Removed   int64 // reconciliation only
	Updated   int64 // reconciliation only
	Duration  time.Duration
}

// Sink receives events. Implementations must not block the caller for long:
// the watch loop emits from its critical path.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// LogSink writes events as slog records.
type LogSink struct {
	Logger *slog.Logger
}

// NewLogSink returns a sink writing to logger, or slog.Default when nil.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{Logger: logger}
}

func (s *LogSink) Emit(e Event) {
	attrs := make([]slog.Attr, 0, 8)
	if e.Path != "" {
		attrs = append(attrs, slog.String("path", e.Path))
	}
	if e.QueryID != "" {
		attrs = append(attrs, slog.String("query", e.QueryID))
	}
	if e.Type == RootFailed || e.Type == WalkStarted || e.Type == WalkComplete {
		attrs = append(attrs, slog.Int("root", e.Root))
	}
	if e.Count != 0 {
		attrs = append(attrs, slog.Int64("count", e.Count))
	}
	if e.Type == Reconciled {
		attrs = append(attrs,
			slog.Int64("added", e.Added),
			slog.Int64("removed", e.Removed),
			slog.Int64("updated", e.Updated))
	}
	if e.Duration != 0 {
		attrs = append(attrs, slog.Duration("elapsed", e.Duration))
	}
	if e.Error != nil {
		attrs = append(attrs, slog.String("error", e.Error.Error()))
	}
	s.Logger.LogAttrs(context.Background(), e.Type.Level(), e.Type.String(), attrs...)
}

// ChanSink forwards events to a buffered channel, dropping them when the
// channel is full.
type ChanSink chan Event

func (c ChanSink) Emit(e Event) {
	select {
	case c <- e:
	default:
	}
}

// Emit stamps e with the current time when unset and hands it to sink. A nil
// sink is allowed.
func Emit(sink Sink, e Event) {
	if sink == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	sink.Emit(e)
}
