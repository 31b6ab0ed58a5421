package persist

import (
	"context"
	"encoding/binary"
	"fmt"
	"iter"
	"time"

	"github.com/tinylib/msgp/msgp"
	bolt "go.etcd.io/bbolt"

	"github.com/bamsammich/ffind/internal/index"
)

var (
	entriesBucket = []byte("entries")
	metaBucket    = []byte("meta")
	metaKey       = []byte("snapshot")
)

// BoltStore keeps the snapshot in a bbolt file. Entries are keyed by save
// order so a cursor walk returns parents before children.
type BoltStore struct {
	db   *bolt.DB
	path string
}

// OpenBolt opens (or creates) a snapshot database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(entriesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return &BoltStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *BoltStore) Path() string { return s.path }

// Save replaces the stored snapshot in one write transaction.
func (s *BoltStore) Save(ctx context.Context, records iter.Seq[index.FileRecord], meta Meta) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(entriesBucket) != nil {
			if err := tx.DeleteBucket(entriesBucket); err != nil {
				return fmt.Errorf("clear entries: %w", err)
			}
		}
		entries, err := tx.CreateBucket(entriesBucket)
		if err != nil {
			return fmt.Errorf("create entries: %w", err)
		}
		// Keys are appended in increasing order.
		entries.FillPercent = 1.0

		sum := newChecksum()
		var (
			n   int64
			key [8]byte
			buf []byte
		)
		for rec := range records {
			if n%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			r := toRow(rec)
			binary.BigEndian.PutUint64(key[:], uint64(n))
			buf = appendRow(buf[:0], r)
			if err := entries.Put(key[:], buf); err != nil {
				return fmt.Errorf("put %s: %w", r.path, err)
			}
			sum.add(r)
			n++
		}

		if meta.SavedAt.IsZero() {
			meta.SavedAt = time.Now()
		}
		meta.Version = SchemaVersion
		meta.Records = n
		meta.Checksum = sum.hex()
		mb, err := tx.CreateBucketIfNotExists(metaBucket)
		if err != nil {
			return fmt.Errorf("create meta: %w", err)
		}
		if err := mb.Put(metaKey, appendMeta(nil, meta)); err != nil {
			return fmt.Errorf("put meta: %w", err)
		}
		return nil
	})
}

// Load reads the snapshot in save order and verifies its checksum.
func (s *BoltStore) Load(ctx context.Context) ([]index.FileRecord, Meta, error) {
	var (
		meta Meta
		rows []row
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		mb := tx.Bucket(metaBucket)
		if mb == nil {
			return ErrNoSnapshot
		}
		raw := mb.Get(metaKey)
		if raw == nil {
			return ErrNoSnapshot
		}
		var err error
		if meta, err = readMeta(raw); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}

		entries := tx.Bucket(entriesBucket)
		if entries == nil {
			return ErrCorrupt
		}
		rows = make([]row, 0, meta.Records)
		c := entries.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if len(rows)%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			// readRow copies strings out; v is only valid inside the tx.
			r, err := readRow(v)
			if err != nil {
				return fmt.Errorf("%w: entry %x: %w", ErrCorrupt, k, err)
			}
			rows = append(rows, r)
		}
		return nil
	})
	if err != nil {
		return nil, meta, err
	}
	if err := verify(rows, meta); err != nil {
		return nil, meta, err
	}
	return toRecords(rows), meta, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func appendRow(b []byte, r row) []byte {
	b = msgp.AppendArrayHeader(b, 9)
	b = msgp.AppendString(b, r.path)
	b = msgp.AppendUint64(b, r.dev)
	b = msgp.AppendUint64(b, r.ino)
	b = msgp.AppendInt64(b, r.size)
	b = msgp.AppendInt64(b, r.mtime)
	b = msgp.AppendInt64(b, r.atime)
	b = msgp.AppendUint32(b, r.mode)
	b = msgp.AppendInt(b, r.root)
	b = msgp.AppendUint8(b, r.typ)
	return b
}

func readRow(b []byte) (r row, err error) {
	var sz uint32
	if sz, b, err = msgp.ReadArrayHeaderBytes(b); err != nil {
		return r, err
	}
	if sz != 9 {
		return r, msgp.ArrayError{Wanted: 9, Got: sz}
	}
	if r.path, b, err = msgp.ReadStringBytes(b); err != nil {
		return r, msgp.WrapError(err, "path")
	}
	if r.dev, b, err = msgp.ReadUint64Bytes(b); err != nil {
		return r, msgp.WrapError(err, "dev")
	}
	if r.ino, b, err = msgp.ReadUint64Bytes(b); err != nil {
		return r, msgp.WrapError(err, "ino")
	}
	if r.size, b, err = msgp.ReadInt64Bytes(b); err != nil {
		return r, msgp.WrapError(err, "size")
	}
	if r.mtime, b, err = msgp.ReadInt64Bytes(b); err != nil {
		return r, msgp.WrapError(err, "mtime")
	}
	if r.atime, b, err = msgp.ReadInt64Bytes(b); err != nil {
		return r, msgp.WrapError(err, "atime")
	}
	if r.mode, b, err = msgp.ReadUint32Bytes(b); err != nil {
		return r, msgp.WrapError(err, "mode")
	}
	if r.root, b, err = msgp.ReadIntBytes(b); err != nil {
		return r, msgp.WrapError(err, "root")
	}
	if r.typ, _, err = msgp.ReadUint8Bytes(b); err != nil {
		return r, msgp.WrapError(err, "type")
	}
	return r, nil
}

func appendMeta(b []byte, m Meta) []byte {
	b = msgp.AppendMapHeader(b, 6)
	b = msgp.AppendString(b, "version")
	b = msgp.AppendInt(b, m.Version)
	b = msgp.AppendString(b, "fingerprint")
	b = msgp.AppendUint64(b, m.Fingerprint)
	b = msgp.AppendString(b, "checksum")
	b = msgp.AppendString(b, m.Checksum)
	b = msgp.AppendString(b, "records")
	b = msgp.AppendInt64(b, m.Records)
	b = msgp.AppendString(b, "saved_at")
	b = msgp.AppendInt64(b, m.SavedAt.UnixNano())
	b = msgp.AppendString(b, "roots")
	b = msgp.AppendArrayHeader(b, uint32(len(m.Roots)))
	for _, r := range m.Roots {
		b = msgp.AppendString(b, r)
	}
	return b
}

func readMeta(b []byte) (m Meta, err error) {
	var sz uint32
	if sz, b, err = msgp.ReadMapHeaderBytes(b); err != nil {
		return m, err
	}
	for range sz {
		var key []byte
		if key, b, err = msgp.ReadMapKeyZC(b); err != nil {
			return m, err
		}
		switch msgp.UnsafeString(key) {
		case "version":
			m.Version, b, err = msgp.ReadIntBytes(b)
		case "fingerprint":
			m.Fingerprint, b, err = msgp.ReadUint64Bytes(b)
		case "checksum":
			m.Checksum, b, err = msgp.ReadStringBytes(b)
		case "records":
			m.Records, b, err = msgp.ReadInt64Bytes(b)
		case "saved_at":
			var ns int64
			ns, b, err = msgp.ReadInt64Bytes(b)
			m.SavedAt = time.Unix(0, ns)
		case "roots":
			var n uint32
			if n, b, err = msgp.ReadArrayHeaderBytes(b); err != nil {
				return m, msgp.WrapError(err, "roots")
			}
			m.Roots = make([]string, n)
			for i := range m.Roots {
				if m.Roots[i], b, err = msgp.ReadStringBytes(b); err != nil {
					break
				}
			}
		default:
			b, err = msgp.Skip(b)
		}
		if err != nil {
			return m, msgp.WrapError(err, string(key))
		}
	}
	return m, nil
}
