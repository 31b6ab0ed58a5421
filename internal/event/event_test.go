package event

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "WalkStarted", typ: WalkStarted},
		{want: "WalkComplete", typ: WalkComplete},
		{want: "RootFailed", typ: RootFailed},
		{want: "WatchOverflow", typ: WatchOverflow},
		{want: "ResyncTriggered", typ: ResyncTriggered},
		{want: "ResourceExhausted", typ: ResourceExhausted},
		{want: "MoveExpired", typ: MoveExpired},
		{want: "JobFailed", typ: JobFailed},
		{want: "QueryStarted", typ: QueryStarted},
		{want: "QueryComplete", typ: QueryComplete},
		{want: "IndexLoaded", typ: IndexLoaded},
		{want: "IndexSaved", typ: IndexSaved},
		{want: "IndexDiscarded", typ: IndexDiscarded},
		{want: "Reconciled", typ: Reconciled},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
}

func TestEventZeroValue(t *testing.T) {
	var e Event
	assert.Equal(t, Type(0), e.Type)
	assert.True(t, e.Timestamp.IsZero())
	assert.Empty(t, e.Path)
	assert.Zero(t, e.Count)
	require.NoError(t, e.Error)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := NewLogSink(logger)

	Emit(sink, Event{Type: JobFailed, Path: "/data/a.txt", Error: errors.New("permission denied")})
	Emit(sink, Event{Type: Reconciled, Added: 3, Removed: 1, Updated: 2, Duration: time.Second})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "msg=JobFailed")
	assert.Contains(t, out, "path=/data/a.txt")
	assert.Contains(t, out, `error="permission denied"`)
	assert.Contains(t, out, "added=3 removed=1 updated=2")
}

func TestChanSinkDropsWhenFull(t *testing.T) {
	ch := make(ChanSink, 1)
	Emit(ch, Event{Type: WatchOverflow})
	Emit(ch, Event{Type: ResyncTriggered}) // dropped

	require.Len(t, ch, 1)
	e := <-ch
	assert.Equal(t, WatchOverflow, e.Type)
	assert.False(t, e.Timestamp.IsZero())
}

func TestEmitNilSink(t *testing.T) {
	assert.NotPanics(t, func() { Emit(nil, Event{Type: WalkStarted}) })
	assert.NotPanics(t, func() { Emit(Discard, Event{Type: WalkStarted}) })
}
