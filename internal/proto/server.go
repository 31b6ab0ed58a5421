package proto

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/bamsammich/ffind/internal/event"
	"github.com/bamsammich/ffind/internal/index"
	"github.com/bamsammich/ffind/internal/query"
	"github.com/bamsammich/ffind/internal/search"
	"github.com/bamsammich/ffind/internal/stats"
)

const (
	// requestReadTimeout bounds how long a new connection may take to send
	// its request frame.
	requestReadTimeout = 5 * time.Second

	// shutdownGrace is how long active connections get to finish once the
	// server is asked to stop.
	shutdownGrace = 5 * time.Second

	// DefaultWriteTimeout bounds a single response write when
	// ServerConfig.WriteTimeout is unset.
	DefaultWriteTimeout = 10 * time.Second

	// maxLineBytes caps a single result line when a batch would not fit in a
	// frame.
	maxLineBytes = 4096
)

// ServerConfig configures the query server.
type ServerConfig struct {
	Store  *index.Store
	Pool   *search.Pool
	Stats  *stats.Collector
	Events event.Sink

	SocketPath     string
	Version        string
	Batch          BatchConfig
	RequestTimeout time.Duration // 0 disables
	// WriteTimeout is how long one response write may block on a client
	// that is not reading. The query is cancelled when it expires.
	WriteTimeout time.Duration
}

// Server answers requests on a Unix domain socket, one request per
// connection.
type Server struct {
	listener net.Listener
	conns    map[net.Conn]struct{}
	cfg      ServerConfig
	mu       sync.Mutex
}

// ErrAlreadyRunning is returned by NewServer when another daemon answers on
// the socket.
var ErrAlreadyRunning = errors.New("daemon already running")

// NewServer listens on cfg.SocketPath. A stale socket left by a previous
// daemon is removed; a live one is an error.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil || cfg.Pool == nil {
		return nil, errors.New("server needs a store and a search pool")
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	cfg.Batch = cfg.Batch.withDefaults()
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	if err := removeStaleSocket(cfg.SocketPath); err != nil {
		return nil, err
	}
	listener, err := net.Listen("unix", cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.SocketPath, err)
	}
	if err := os.Chmod(cfg.SocketPath, 0o600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("chmod socket: %w", err)
	}

	return &Server{
		cfg:      cfg,
		listener: listener,
		conns:    make(map[net.Conn]struct{}),
	}, nil
}

func removeStaleSocket(path string) error {
	if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if conn, err := net.DialTimeout("unix", path, time.Second); err == nil {
		conn.Close()
		return fmt.Errorf("%s: %w", path, ErrAlreadyRunning)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}
	return nil
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until ctx is cancelled. Blocks until shutdown
// completes and removes the socket on return.
func (s *Server) Serve(ctx context.Context) error {
	slog.Info("ffind daemon listening", "socket", s.cfg.SocketPath)

	var wg sync.WaitGroup

	// Shutdown goroutine: when ctx is cancelled, stop the listener and drain connections.
	go func() {
		<-ctx.Done()
		s.listener.Close()

		time.AfterFunc(shutdownGrace, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for conn := range s.conns {
				conn.Close()
			}
		})
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break // graceful shutdown
			}
			if errors.Is(err, net.ErrClosed) {
				break
			}
			slog.Error("accept error", "error", err)
			continue
		}

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		wg.Go(func() {
			defer func() {
				s.mu.Lock()
				delete(s.conns, conn)
				s.mu.Unlock()
			}()
			s.handleConn(ctx, conn)
		})
	}

	wg.Wait()
	os.Remove(s.cfg.SocketPath) //nolint:errcheck // best-effort cleanup
	return nil
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	w := deadlineWriter{conn: conn, timeout: s.cfg.WriteTimeout}

	conn.SetReadDeadline(time.Now().Add(requestReadTimeout)) //nolint:errcheck // unix sockets support deadlines
	f, err := ReadFrame(conn)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		slog.Debug("bad request frame", "error", err)
		s.cfg.Stats.AddQueriesFailed(1)
		writeError(w, 1, err)
		return
	}
	conn.SetReadDeadline(time.Time{}) //nolint:errcheck // see above

	switch f.Kind {
	case KindPing:
		writeMessage(w, KindPong, 1, &PongMsg{Version: s.cfg.Version, Pid: os.Getpid()})
	case KindStatus:
		status := s.status()
		writeMessage(w, KindStatusResp, 1, &status)
	case KindQuery:
		s.serveQuery(ctx, conn, w, f)
	default:
		s.cfg.Stats.AddQueriesFailed(1)
		writeError(w, 1, fmt.Errorf("%w: unexpected %s frame", ErrMalformed, f.Kind))
	}
}

func (s *Server) status() StatusMsg {
	snap := s.cfg.Stats.Snapshot()
	roots := s.cfg.Store.Roots()
	msg := StatusMsg{
		Version:       s.cfg.Version,
		Roots:         make([]string, len(roots)),
		QueryHistory:  s.cfg.Stats.QueryHistory(),
		Records:       int64(s.cfg.Store.Len()),
		UptimeMs:      snap.Uptime.Milliseconds(),
		Watches:       snap.WatchesActive,
		Queries:       snap.QueriesServed,
		Resyncs:       snap.Resyncs,
		Overflows:     snap.Overflows,
		JobsCompleted: snap.JobsCompleted,
		Workers:       s.cfg.Pool.Workers(),
		QueueSize:     s.cfg.Pool.QueueSize(),
	}
	for i, r := range roots {
		msg.Roots[i] = r.Path.String()
	}
	return msg
}

//nolint:revive // cognitive-complexity: decode, compile, stream, summarize
func (s *Server) serveQuery(ctx context.Context, conn net.Conn, w io.Writer, f Frame) {
	// Decoding stops at the first bad field; a compress flag read before
	// it still selects the framing of the error reply.
	var msg QueryMsg
	decodeErr := Decode(f, &msg)

	// From here on the response stream honors the compress flag.
	out := w
	if msg.Compress {
		cw, err := newCompressedWriter(w)
		if err != nil {
			s.cfg.Stats.AddQueriesFailed(1)
			writeError(w, 1, err)
			return
		}
		defer cw.Close()
		out = cw
	}
	if decodeErr != nil {
		s.cfg.Stats.AddQueriesFailed(1)
		writeError(out, 1, decodeErr)
		return
	}

	spec, err := msg.ToSpec()
	if err == nil {
		var q *query.Query
		if q, err = query.Compile(spec); err == nil {
			s.runQuery(ctx, conn, out, q)
			return
		}
	}
	s.cfg.Stats.AddQueriesFailed(1)
	writeError(out, 1, err)
}

func (s *Server) runQuery(ctx context.Context, conn net.Conn, out io.Writer, q *query.Query) {
	qctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.cfg.RequestTimeout > 0 {
		var tcancel context.CancelFunc
		qctx, tcancel = context.WithTimeout(qctx, s.cfg.RequestTimeout)
		defer tcancel()
	}

	// The client sends nothing after its request, so any read completing
	// means it hung up.
	go func() {
		var b [1]byte
		conn.Read(b[:]) //nolint:errcheck // any outcome means disconnect
		cancel()
	}()

	event.Emit(s.cfg.Events, event.Event{Type: event.QueryStarted, QueryID: q.ID})

	rs := newResponder(out, s.cfg.Batch)
	stopFlusher := rs.startFlusher(s.cfg.Batch.MaxWait)
	sum, err := query.Execute(qctx, s.cfg.Store, s.cfg.Pool, q, func(r search.Result) error {
		return rs.add(ResultToMsg(r))
	})
	stopFlusher()

	s.cfg.Stats.AddResultsSent(sum.Results)
	event.Emit(s.cfg.Events, event.Event{
		Type:     event.QueryComplete,
		QueryID:  q.ID,
		Count:    sum.Results,
		Duration: sum.Elapsed,
		Error:    err,
	})

	if err != nil {
		s.cfg.Stats.AddQueriesFailed(1)
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("request timed out after %s", s.cfg.RequestTimeout)
		}
		if ferr := rs.finish(KindError, &ErrorMsg{Message: err.Error()}); ferr != nil {
			slog.Debug("query response not delivered", "query", q.ID, "error", ferr)
		}
		return
	}

	s.cfg.Stats.AddQueriesServed(1)
	end := &EndMsg{
		QueryID:    q.ID,
		Results:    sum.Results,
		Candidates: sum.Candidates,
		Jobs:       sum.Jobs,
		ElapsedMs:  sum.Elapsed.Milliseconds(),
		Truncated:  sum.Truncated,
	}
	if ferr := rs.finish(KindEnd, end); ferr != nil {
		slog.Debug("query response not delivered", "query", q.ID, "error", ferr)
	}
}

// deadlineWriter gives every write on conn its own deadline. A client that
// stops reading fails the write, which cancels its query and releases the
// search workers blocked on its results.
type deadlineWriter struct {
	conn    net.Conn
	timeout time.Duration
}

func (d deadlineWriter) Write(p []byte) (int, error) {
	if err := d.conn.SetWriteDeadline(time.Now().Add(d.timeout)); err != nil {
		return 0, err
	}
	return d.conn.Write(p)
}

// responder serializes batches and the terminal frame onto one writer.
// Batch sequence numbers start at 1 and increase by one per frame.
type responder struct {
	w   io.Writer
	b   *batcher
	err error
	seq uint32
	mu  sync.Mutex
}

func newResponder(w io.Writer, cfg BatchConfig) *responder {
	return &responder{w: w, b: newBatcher(cfg)}
}

func (r *responder) add(res ResultMsg) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.b.add(res)
	if r.b.ready() {
		return r.flushLocked()
	}
	return nil
}

// startFlusher flushes partial batches every interval until the returned
// function is called.
func (r *responder) startFlusher(interval time.Duration) func() {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.mu.Lock()
				if r.err == nil {
					r.flushLocked() //nolint:errcheck // sticky in r.err
				}
				r.mu.Unlock()
			}
		}
	})
	return func() {
		close(done)
		wg.Wait()
	}
}

func (r *responder) flushLocked() error {
	batch := r.b.flush()
	if batch == nil {
		return nil
	}
	if err := r.writeBatch(batch); err != nil {
		r.err = err
		return err
	}
	return nil
}

// writeBatch writes results as one frame, splitting the batch when it does
// not fit.
func (r *responder) writeBatch(results []ResultMsg) error {
	f, err := Encode(KindBatch, r.seq+1, &BatchMsg{Results: results})
	if err != nil {
		return err
	}
	if len(f.Payload)+FrameHeaderSize > MaxFrameSize {
		if len(results) > 1 {
			mid := len(results) / 2
			if err := r.writeBatch(results[:mid]); err != nil {
				return err
			}
			return r.writeBatch(results[mid:])
		}
		return r.writeBatch([]ResultMsg{shrink(results[0])})
	}
	r.seq++
	return writeFlush(r.w, f)
}

// shrink cuts an oversized result down so it fits in a frame.
func shrink(res ResultMsg) ResultMsg {
	lines := make([]LineMsg, len(res.Lines))
	for i, l := range res.Lines {
		if len(l.Text) > maxLineBytes {
			l.Text = l.Text[:maxLineBytes]
		}
		lines[i] = l
	}
	res.Lines = lines
	if res.estimate() > MaxFrameSize/2 {
		return ResultMsg{Path: res.Path, Warning: "match too large to transfer"}
	}
	return res
}

func (r *responder) finish(kind Kind, m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.flushLocked() //nolint:errcheck // sticky in r.err
	}
	if r.err != nil {
		return r.err
	}
	if end, ok := m.(*EndMsg); ok {
		end.Batches = r.seq
	}
	r.seq++
	f, err := Encode(kind, r.seq, m)
	if err != nil {
		return err
	}
	return writeFlush(r.w, f)
}

func writeFlush(w io.Writer, f Frame) error {
	if err := WriteFrame(w, f); err != nil {
		return err
	}
	if wf, ok := w.(WriteFlusher); ok {
		if err := wf.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}
	return nil
}

func writeMessage(w io.Writer, kind Kind, seq uint32, m Message) {
	f, err := Encode(kind, seq, m)
	if err == nil {
		err = writeFlush(w, f)
	}
	if err != nil {
		slog.Debug("response not delivered", "kind", kind, "error", err)
	}
}

func writeError(w io.Writer, seq uint32, err error) {
	writeMessage(w, KindError, seq, &ErrorMsg{Message: err.Error()})
}
