package proto

import (
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// Message is implemented by every payload type.
type Message interface {
	msgp.Marshaler
	msgp.Unmarshaler
}

// Encode marshals m into a frame of the given kind.
func Encode(kind Kind, seq uint32, m Message) (Frame, error) {
	payload, err := m.MarshalMsg(nil)
	if err != nil {
		return Frame{}, fmt.Errorf("encode %s: %w", kind, err)
	}
	return Frame{Kind: kind, Seq: seq, Payload: payload}, nil
}

// Decode unmarshals the payload of f into m. Payload decoding errors wrap
// ErrMalformed.
func Decode(f Frame, m Message) error {
	if _, err := m.UnmarshalMsg(f.Payload); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrMalformed, f.Kind, err)
	}
	return nil
}
