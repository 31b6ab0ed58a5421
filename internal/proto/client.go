package proto

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// ErrRemote wraps error messages reported by the daemon.
var ErrRemote = errors.New("daemon error")

// DefaultDialTimeout bounds connecting to the daemon socket.
const DefaultDialTimeout = 2 * time.Second

// Client talks to a daemon over its Unix socket. Each call opens its own
// connection.
type Client struct {
	SocketPath  string
	DialTimeout time.Duration
	Compress    bool // request a zstd-compressed response stream
}

// NewClient returns a client for the daemon listening on socketPath.
func NewClient(socketPath string) *Client {
	return &Client{SocketPath: socketPath, DialTimeout: DefaultDialTimeout}
}

func (c *Client) dial(ctx context.Context) (net.Conn, func(), error) {
	timeout := c.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "unix", c.SocketPath)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to daemon at %s: %w", c.SocketPath, err)
	}
	// Closing the connection is how the daemon learns we went away.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	return conn, func() {
		stop()
		conn.Close()
	}, nil
}

// Query sends q and calls fn for every result as batches arrive. It returns
// the daemon's summary. An error from fn aborts the query and disconnects,
// which cancels it on the daemon.
func (c *Client) Query(ctx context.Context, q QueryMsg, fn func(ResultMsg) error) (EndMsg, error) {
	conn, closeConn, err := c.dial(ctx)
	if err != nil {
		return EndMsg{}, err
	}
	defer closeConn()

	q.Compress = c.Compress
	f, err := Encode(KindQuery, 0, &q)
	if err != nil {
		return EndMsg{}, err
	}
	if err := WriteFrame(conn, f); err != nil {
		return EndMsg{}, ctxErr(ctx, err)
	}

	var r io.Reader = conn
	if q.Compress {
		br := bufio.NewReader(conn)
		r = br
		// A daemon that fails before starting the compressed stream
		// answers with a plain frame.
		head, err := br.Peek(len(zstdMagic))
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return EndMsg{}, ctxErr(ctx, fmt.Errorf("read response: %w", err))
		}
		if bytes.Equal(head, zstdMagic) {
			dr, err := newDecompressedReader(br)
			if err != nil {
				return EndMsg{}, err
			}
			defer dr.Close()
			r = dr
		}
	}

	var seq uint32
	for {
		f, err := ReadFrame(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return EndMsg{}, ctxErr(ctx, fmt.Errorf("read response: %w", err))
		}
		if f.Seq != seq+1 {
			return EndMsg{}, fmt.Errorf("%w: response sequence %d after %d", ErrMalformed, f.Seq, seq)
		}
		seq = f.Seq

		switch f.Kind {
		case KindBatch:
			var batch BatchMsg
			if err := Decode(f, &batch); err != nil {
				return EndMsg{}, err
			}
			for _, res := range batch.Results {
				if err := fn(res); err != nil {
					return EndMsg{}, err
				}
			}
		case KindEnd:
			var end EndMsg
			if err := Decode(f, &end); err != nil {
				return EndMsg{}, err
			}
			return end, nil
		case KindError:
			return EndMsg{}, remoteError(f)
		default:
			return EndMsg{}, fmt.Errorf("%w: unexpected %s frame", ErrMalformed, f.Kind)
		}
	}
}

// Status asks the daemon for index statistics.
func (c *Client) Status(ctx context.Context) (StatusMsg, error) {
	var msg StatusMsg
	err := c.roundTrip(ctx, KindStatus, KindStatusResp, &msg)
	return msg, err
}

// Ping checks that a daemon is answering on the socket.
func (c *Client) Ping(ctx context.Context) (PongMsg, error) {
	var msg PongMsg
	err := c.roundTrip(ctx, KindPing, KindPong, &msg)
	return msg, err
}

func (c *Client) roundTrip(ctx context.Context, req, want Kind, resp Message) error {
	conn, closeConn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer closeConn()

	if err := WriteFrame(conn, Frame{Kind: req}); err != nil {
		return ctxErr(ctx, err)
	}
	f, err := ReadFrame(conn)
	if err != nil {
		return ctxErr(ctx, fmt.Errorf("read %s response: %w", req, err))
	}
	switch f.Kind {
	case want:
		return Decode(f, resp)
	case KindError:
		return remoteError(f)
	default:
		return fmt.Errorf("%w: unexpected %s frame", ErrMalformed, f.Kind)
	}
}

func remoteError(f Frame) error {
	var msg ErrorMsg
	if err := Decode(f, &msg); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrRemote, msg.Message)
}

// ctxErr prefers the context's error over the I/O error its cancellation
// caused.
func ctxErr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	return err
}
