package proto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes:
	// 4 bytes length + 1 byte magic/version + 1 byte kind + 4 bytes sequence.
	FrameHeaderSize = 10

	// MaxFrameSize is the maximum allowed frame size (including header).
	MaxFrameSize = 4 * 1024 * 1024 // 4 MB

	// Magic identifies an ffind frame. The low nibble is the protocol
	// version; bump only on breaking wire changes.
	Magic byte = 0xF0 | ProtocolVersion

	// ProtocolVersion is the wire protocol version.
	ProtocolVersion = 1
)

// Frame is a single protocol message on the wire.
type Frame struct {
	Payload []byte
	Seq     uint32
	Kind    Kind
}

var (
	// ErrFrameTooLarge is returned when a frame exceeds MaxFrameSize.
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
	// ErrMalformed is returned for frames or payloads that cannot be decoded.
	ErrMalformed = errors.New("malformed request")
)

// WriteFrame writes a length-prefixed frame to w.
// Wire format: [4-byte length (big-endian)][1-byte magic][1-byte kind][4-byte seq][payload]
// The length field counts everything after itself. Header and payload are
// combined into a single Write() call.
//
//nolint:gosec // G115: payload length bounded by MaxFrameSize check
func WriteFrame(w io.Writer, f Frame) error {
	totalLen := uint32(1 + 1 + 4 + len(f.Payload))
	if int(totalLen)+4 > MaxFrameSize {
		return ErrFrameTooLarge
	}

	buf := make([]byte, FrameHeaderSize+len(f.Payload))
	binary.BigEndian.PutUint32(buf[0:4], totalLen)
	buf[4] = Magic
	buf[5] = byte(f.Kind)
	binary.BigEndian.PutUint32(buf[6:10], f.Seq)
	copy(buf[FrameHeaderSize:], f.Payload)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadFrame reads a length-prefixed frame from r. A clean EOF before the
// first header byte is returned as io.EOF.
func ReadFrame(r io.Reader) (Frame, error) {
	var header [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, fmt.Errorf("%w: truncated header", ErrMalformed)
		}
		return Frame{}, err
	}

	totalLen := binary.BigEndian.Uint32(header[0:4])
	if uint64(totalLen)+4 > MaxFrameSize {
		return Frame{}, ErrFrameTooLarge
	}
	if totalLen < FrameHeaderSize-4 {
		return Frame{}, fmt.Errorf("%w: frame too small: length %d", ErrMalformed, totalLen)
	}
	if header[4] != Magic {
		return Frame{}, fmt.Errorf("%w: bad magic 0x%02x", ErrMalformed, header[4])
	}

	f := Frame{
		Kind: Kind(header[5]),
		Seq:  binary.BigEndian.Uint32(header[6:10]),
	}

	payloadLen := totalLen - (FrameHeaderSize - 4)
	if payloadLen > 0 {
		f.Payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r, f.Payload); err != nil {
			return Frame{}, fmt.Errorf("read frame payload: %w", err)
		}
	}

	return f, nil
}
