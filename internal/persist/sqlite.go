package persist

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bamsammich/ffind/internal/index"
)

// SQLiteStore keeps the snapshot in a WAL-mode SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) a snapshot database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	// One connection keeps the pragmas and the write transaction on the
	// same handle.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			id     INTEGER PRIMARY KEY,
			path   TEXT UNIQUE NOT NULL,
			dev    INTEGER NOT NULL,
			ino    INTEGER NOT NULL,
			size   INTEGER NOT NULL,
			mtime  INTEGER NOT NULL,
			atime  INTEGER NOT NULL,
			mode   INTEGER NOT NULL,
			root   INTEGER NOT NULL,
			type   INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS roots (
			idx  INTEGER PRIMARY KEY,
			path TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Save replaces the stored snapshot with records in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, records iter.Seq[index.FileRecord], meta Meta) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, stmt := range []string{"DELETE FROM entries", "DELETE FROM roots", "DELETE FROM meta"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	ins, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (id, path, dev, ino, size, mtime, atime, mode, root, type) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer ins.Close()

	sum := newChecksum()
	var n int64
	for rec := range records {
		r := toRow(rec)
		// SQLite integers are signed; dev and ino round-trip through int64.
		if _, err := ins.ExecContext(ctx, n, r.path, int64(r.dev), int64(r.ino), r.size,
			r.mtime, r.atime, r.mode, r.root, r.typ); err != nil {
			return fmt.Errorf("insert %s: %w", r.path, err)
		}
		sum.add(r)
		n++
	}

	for i, root := range meta.Roots {
		if _, err := tx.ExecContext(ctx, "INSERT INTO roots (idx, path) VALUES (?, ?)", i, root); err != nil {
			return fmt.Errorf("store root %s: %w", root, err)
		}
	}

	if meta.SavedAt.IsZero() {
		meta.SavedAt = time.Now()
	}
	kv := map[string]string{
		"version":     strconv.Itoa(SchemaVersion),
		"fingerprint": strconv.FormatUint(meta.Fingerprint, 16),
		"checksum":    sum.hex(),
		"records":     strconv.FormatInt(n, 10),
		"saved_at":    strconv.FormatInt(meta.SavedAt.UnixNano(), 10),
	}
	for k, v := range kv {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("store meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads the stored snapshot in save order and verifies its checksum.
func (s *SQLiteStore) Load(ctx context.Context) ([]index.FileRecord, Meta, error) {
	meta, err := s.loadMeta(ctx)
	if err != nil {
		return nil, Meta{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT path, dev, ino, size, mtime, atime, mode, root, type FROM entries ORDER BY id")
	if err != nil {
		return nil, Meta{}, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	out := make([]row, 0, meta.Records)
	for rows.Next() {
		var (
			r        row
			dev, ino int64
		)
		if err := rows.Scan(&r.path, &dev, &ino, &r.size, &r.mtime, &r.atime, &r.mode, &r.root, &r.typ); err != nil {
			return nil, Meta{}, fmt.Errorf("scan entry: %w", err)
		}
		r.dev, r.ino = uint64(dev), uint64(ino)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, Meta{}, fmt.Errorf("read entries: %w", err)
	}

	if err := verify(out, meta); err != nil {
		return nil, meta, err
	}
	return toRecords(out), meta, nil
}

func (s *SQLiteStore) loadMeta(ctx context.Context) (Meta, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return Meta{}, fmt.Errorf("query meta: %w", err)
	}
	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return Meta{}, fmt.Errorf("scan meta: %w", err)
		}
		kv[k] = v
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Meta{}, fmt.Errorf("read meta: %w", err)
	}
	if len(kv) == 0 {
		return Meta{}, ErrNoSnapshot
	}

	var meta Meta
	if meta.Version, err = strconv.Atoi(kv["version"]); err != nil {
		return Meta{}, fmt.Errorf("%w: bad version %q", ErrCorrupt, kv["version"])
	}
	if meta.Fingerprint, err = strconv.ParseUint(kv["fingerprint"], 16, 64); err != nil {
		return Meta{}, fmt.Errorf("%w: bad fingerprint", ErrCorrupt)
	}
	if meta.Records, err = strconv.ParseInt(kv["records"], 10, 64); err != nil {
		return Meta{}, fmt.Errorf("%w: bad record count", ErrCorrupt)
	}
	saved, err := strconv.ParseInt(kv["saved_at"], 10, 64)
	if err != nil {
		return Meta{}, fmt.Errorf("%w: bad save time", ErrCorrupt)
	}
	meta.SavedAt = time.Unix(0, saved)
	meta.Checksum = kv["checksum"]

	roots, err := s.db.QueryContext(ctx, "SELECT path FROM roots ORDER BY idx")
	if err != nil {
		return Meta{}, fmt.Errorf("query roots: %w", err)
	}
	defer roots.Close()
	for roots.Next() {
		var p string
		if err := roots.Scan(&p); err != nil {
			return Meta{}, fmt.Errorf("scan root: %w", err)
		}
		meta.Roots = append(meta.Roots, p)
	}
	if err := roots.Err(); err != nil {
		return Meta{}, fmt.Errorf("read roots: %w", err)
	}
	return meta, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
