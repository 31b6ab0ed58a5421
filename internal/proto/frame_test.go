package proto_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ffind/internal/proto"
)

func TestFrameRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		frame proto.Frame
	}{
		{
			name:  "query with payload",
			frame: proto.Frame{Kind: proto.KindQuery, Payload: []byte("hello")},
		},
		{
			name:  "batch with sequence",
			frame: proto.Frame{Kind: proto.KindBatch, Seq: 42, Payload: bytes.Repeat([]byte("x"), 1024)},
		},
		{
			name:  "empty payload",
			frame: proto.Frame{Kind: proto.KindPing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, proto.WriteFrame(&buf, tt.frame))

			got, err := proto.ReadFrame(&buf)
			require.NoError(t, err)

			assert.Equal(t, tt.frame.Kind, got.Kind)
			assert.Equal(t, tt.frame.Seq, got.Seq)
			assert.Equal(t, tt.frame.Payload, got.Payload)
		})
	}
}

func TestFrameOversizedRejected(t *testing.T) {
	t.Parallel()

	f := proto.Frame{Kind: proto.KindBatch, Payload: make([]byte, proto.MaxFrameSize)}
	var buf bytes.Buffer
	assert.ErrorIs(t, proto.WriteFrame(&buf, f), proto.ErrFrameTooLarge)
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	t.Parallel()

	hdr := make([]byte, proto.FrameHeaderSize)
	binary.BigEndian.PutUint32(hdr[0:4], proto.MaxFrameSize)
	hdr[4] = proto.Magic

	_, err := proto.ReadFrame(bytes.NewReader(hdr))
	assert.ErrorIs(t, err, proto.ErrFrameTooLarge)
}

func TestReadFrameMalformed(t *testing.T) {
	t.Parallel()

	t.Run("bad magic", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, proto.WriteFrame(&buf, proto.Frame{Kind: proto.KindPing}))
		raw := buf.Bytes()
		raw[4] = 0x00
		_, err := proto.ReadFrame(bytes.NewReader(raw))
		assert.ErrorIs(t, err, proto.ErrMalformed)
	})

	t.Run("truncated header", func(t *testing.T) {
		t.Parallel()
		_, err := proto.ReadFrame(bytes.NewReader([]byte{0, 0, 0}))
		assert.ErrorIs(t, err, proto.ErrMalformed)
	})

	t.Run("clean eof", func(t *testing.T) {
		t.Parallel()
		_, err := proto.ReadFrame(bytes.NewReader(nil))
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestFrameMultipleRoundTrips(t *testing.T) {
	t.Parallel()

	frames := []proto.Frame{
		{Kind: proto.KindBatch, Seq: 1, Payload: []byte("one")},
		{Kind: proto.KindBatch, Seq: 2, Payload: []byte("two")},
		{Kind: proto.KindEnd, Seq: 3, Payload: []byte("end")},
	}

	var buf bytes.Buffer
	for _, f := range frames {
		require.NoError(t, proto.WriteFrame(&buf, f))
	}
	for _, want := range frames {
		got, err := proto.ReadFrame(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestKindTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, proto.KindBatch.Terminal())
	assert.True(t, proto.KindEnd.Terminal())
	assert.True(t, proto.KindError.Terminal())
	assert.Equal(t, "kind(0x7f)", proto.Kind(0x7f).String())
}
