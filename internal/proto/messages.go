// Package proto implements the ffind request/response protocol: framed,
// MessagePack-encoded messages over a Unix domain socket, one request per
// connection.
package proto

//go:generate msgp
//msgp:ignore Kind

import "fmt"

// Kind identifies a frame's message type.
type Kind byte

// Requests.
const (
	KindQuery  Kind = 0x01
	KindStatus Kind = 0x02
	KindPing   Kind = 0x03
)

// Responses.
const (
	KindBatch      Kind = 0x10
	KindEnd        Kind = 0x11
	KindError      Kind = 0x12
	KindStatusResp Kind = 0x13
	KindPong       Kind = 0x14
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindStatus:
		return "status"
	case KindPing:
		return "ping"
	case KindBatch:
		return "batch"
	case KindEnd:
		return "end"
	case KindError:
		return "error"
	case KindStatusResp:
		return "status-resp"
	case KindPong:
		return "pong"
	default:
		return fmt.Sprintf("kind(0x%02x)", byte(k))
	}
}

// Terminal reports whether a response of this kind ends the exchange.
func (k Kind) Terminal() bool {
	return k == KindEnd || k == KindError || k == KindStatusResp || k == KindPong
}

// Type filter values carried in QueryMsg.Type.
const (
	TypeAny  uint8 = 0
	TypeFile uint8 = 1
	TypeDir  uint8 = 2
)

// Comparison operators for size and mtime, matching filter.Cmp.
const (
	CmpNone    uint8 = 0
	CmpLess    uint8 = 1
	CmpEqual   uint8 = 2
	CmpGreater uint8 = 3
)

// Content match modes, matching search.Mode.
const (
	ModeFixed uint8 = 0
	ModeRegex uint8 = 1
	ModeGlob  uint8 = 2
)

// QueryMsg is the payload of KindQuery.
type QueryMsg struct {
	Root       string `msg:"root"`
	Name       string `msg:"name"`
	Path       string `msg:"path"`
	Content    string `msg:"content"`
	Size       int64  `msg:"size"`
	Limit      int    `msg:"limit"`
	Before     int    `msg:"before"`
	After      int    `msg:"after"`
	MTimeDays  int32  `msg:"mtime_days"`
	Mode       uint8  `msg:"mode"`
	Type       uint8  `msg:"type"`
	SizeOp     uint8  `msg:"size_op"`
	MTimeOp    uint8  `msg:"mtime_op"`
	IgnoreCase bool   `msg:"ignore_case"`
	Compress   bool   `msg:"compress"`
}

// LineMsg is one line inside a ResultMsg.
type LineMsg struct {
	Text   string `msg:"text"`
	Number int    `msg:"number"`
	Match  bool   `msg:"match"`
}

// ResultMsg is one metadata match, one content match group, or a warning.
type ResultMsg struct {
	Path    string    `msg:"path"`
	Warning string    `msg:"warning"`
	Lines   []LineMsg `msg:"lines"`
	IsDir   bool      `msg:"is_dir"`
}

// BatchMsg is the payload of KindBatch. Batches carry increasing frame
// sequence numbers starting at 1.
type BatchMsg struct {
	Results []ResultMsg `msg:"results"`
}

// EndMsg is the payload of KindEnd.
type EndMsg struct {
	QueryID    string `msg:"query_id"`
	Results    int64  `msg:"results"`
	Candidates int64  `msg:"candidates"`
	Jobs       int64  `msg:"jobs"`
	ElapsedMs  int64  `msg:"elapsed_ms"`
	Batches    uint32 `msg:"batches"`
	Truncated  bool   `msg:"truncated"`
}

// ErrorMsg is the payload of KindError.
type ErrorMsg struct {
	Message string `msg:"message"`
}

// StatusMsg is the payload of KindStatusResp.
type StatusMsg struct {
	Version       string   `msg:"version"`
	Roots         []string `msg:"roots"`
	QueryHistory  []int64  `msg:"query_history"` // queries per second, oldest first
	Records       int64    `msg:"records"`
	UptimeMs      int64    `msg:"uptime_ms"`
	Watches       int64    `msg:"watches"`
	Queries       int64    `msg:"queries"`
	Resyncs       int64    `msg:"resyncs"`
	Overflows     int64    `msg:"overflows"`
	JobsCompleted int64    `msg:"jobs_completed"`
	Workers       int      `msg:"workers"`
	QueueSize     int      `msg:"queue_size"`
}

// PongMsg is the payload of KindPong.
type PongMsg struct {
	Version string `msg:"version"`
	Pid     int    `msg:"pid"`
}
