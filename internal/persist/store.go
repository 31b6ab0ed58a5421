// Package persist saves index snapshots to disk and restores them at
// startup. A restored snapshot only seeds the index; the initial walk still
// reconciles it against the filesystem.
package persist

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/bamsammich/ffind/internal/index"
)

// SchemaVersion is bumped whenever the stored record layout changes.
const SchemaVersion = 1

var (
	ErrNoSnapshot   = errors.New("no snapshot stored")
	ErrCorrupt      = errors.New("snapshot checksum mismatch")
	ErrSchema       = errors.New("snapshot schema version mismatch")
	ErrRootsChanged = errors.New("snapshot was taken for a different root set")
	ErrUnknown      = errors.New("unknown persistence backend")
)

// Meta describes a stored snapshot.
type Meta struct {
	SavedAt     time.Time
	Checksum    string // hex blake3 over the encoded records, in order
	Roots       []string
	Records     int64
	Fingerprint uint64 // xxhash of the sorted root set
	Version     int
}

// NewMeta returns the metadata for a snapshot of roots. Save fills in the
// record count and checksum.
func NewMeta(roots []string) Meta {
	return Meta{
		Roots:       slices.Clone(roots),
		Fingerprint: Fingerprint(roots),
		Version:     SchemaVersion,
	}
}

// Store saves and loads whole-index snapshots. Save replaces the previous
// snapshot atomically.
type Store interface {
	Load(ctx context.Context) ([]index.FileRecord, Meta, error)
	Save(ctx context.Context, records iter.Seq[index.FileRecord], meta Meta) error
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBolt   Backend = "bolt"
)

// Open opens (or creates) the snapshot database at path.
func Open(backend Backend, path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(path)
	case BackendBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, backend)
	}
}

// Fingerprint hashes a root set independent of order.
func Fingerprint(roots []string) uint64 {
	sorted := slices.Clone(roots)
	slices.Sort(sorted)
	d := xxhash.New()
	for _, r := range sorted {
		_, _ = d.WriteString(r)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// row is the flat form of a FileRecord both backends store.
type row struct {
	path  string
	dev   uint64
	ino   uint64
	size  int64
	mtime int64
	atime int64
	mode  uint32
	root  int
	typ   uint8
}

func toRow(rec index.FileRecord) row {
	return row{
		path:  rec.Path.String(),
		dev:   rec.Inode.Dev,
		ino:   rec.Inode.Ino,
		size:  rec.Size,
		mtime: rec.ModTime.UnixNano(),
		atime: rec.AccTime.UnixNano(),
		mode:  uint32(rec.Mode),
		root:  rec.Root,
		typ:   uint8(rec.Type),
	}
}

func (r row) record() index.FileRecord {
	return index.FileRecord{
		Path:    index.ParsePath(r.path),
		Inode:   index.Inode{Dev: r.dev, Ino: r.ino},
		Size:    r.size,
		ModTime: time.Unix(0, r.mtime),
		AccTime: time.Unix(0, r.atime),
		Mode:    fs.FileMode(r.mode),
		Root:    r.root,
		Type:    index.FileType(r.typ),
	}
}

// checksum accumulates a blake3 digest over rows in storage order.
type checksum struct {
	h   *blake3.Hasher
	buf []byte
}

func newChecksum() *checksum { return &checksum{h: blake3.New()} }

func (c *checksum) add(r row) {
	b := c.buf[:0]
	b = append(b, r.path...)
	b = append(b, 0)
	b = strconv.AppendUint(b, r.dev, 16)
	b = append(b, ':')
	b = strconv.AppendUint(b, r.ino, 16)
	b = append(b, ':')
	b = strconv.AppendInt(b, r.size, 16)
	b = append(b, ':')
	b = strconv.AppendInt(b, r.mtime, 16)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(r.mode), 16)
	b = append(b, ':', r.typ, '\n')
	c.buf = b
	_, _ = c.h.Write(b)
}

func (c *checksum) hex() string { return hex.EncodeToString(c.h.Sum(nil)) }

// verify checks a loaded snapshot against its stored metadata.
func verify(rows []row, meta Meta) error {
	if meta.Version != SchemaVersion {
		return fmt.Errorf("%w: stored %d, want %d", ErrSchema, meta.Version, SchemaVersion)
	}
	sum := newChecksum()
	for _, r := range rows {
		sum.add(r)
	}
	if int64(len(rows)) != meta.Records || sum.hex() != meta.Checksum {
		return ErrCorrupt
	}
	return nil
}

func toRecords(rows []row) []index.FileRecord {
	out := make([]index.FileRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out
}
