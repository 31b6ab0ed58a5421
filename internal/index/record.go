package index

import (
	"io/fs"
	"time"

	"github.com/bamsammich/ffind/internal/platform"
)

// FileType classifies an indexed entry.
type FileType uint8

const (
	TypeOther FileType = iota
	TypeRegular
	TypeDir
	TypeSymlink
)

var fileTypeNames = [...]string{
	TypeOther:   "other",
	TypeRegular: "file",
	TypeDir:     "dir",
	TypeSymlink: "symlink",
}

func (t FileType) String() string {
	if int(t) < len(fileTypeNames) {
		return fileTypeNames[t]
	}
	return "unknown"
}

// TypeOf maps a file mode to its FileType.
func TypeOf(mode fs.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return TypeRegular
	case mode.IsDir():
		return TypeDir
	case mode&fs.ModeSymlink != 0:
		return TypeSymlink
	default:
		return TypeOther
	}
}

// Inode identifies a file independent of its path.
type Inode struct {
	Dev uint64
	Ino uint64
}

// IsZero reports whether the platform supplied no inode identity.
func (i Inode) IsZero() bool { return i.Dev == 0 && i.Ino == 0 }

// FileRecord is a point-in-time copy of one indexed entry. Path, Inode and
// Type are the entry's identity; the remaining fields are metadata that
// Update may change.
type FileRecord struct {
	ModTime time.Time
	AccTime time.Time
	Path    PathKey
	Inode   Inode
	Size    int64
	Mode    fs.FileMode
	Root    int
	Type    FileType
}

// IsDir reports whether the record is a directory.
func (r FileRecord) IsDir() bool { return r.Type == TypeDir }

// Metadata is the mutable subset of a FileRecord.
type Metadata struct {
	ModTime time.Time
	AccTime time.Time
	Size    int64
	Mode    fs.FileMode
}

// Metadata returns the record's mutable fields.
func (r FileRecord) Metadata() Metadata {
	return Metadata{ModTime: r.ModTime, AccTime: r.AccTime, Size: r.Size, Mode: r.Mode}
}

// FromFileInfo builds a record for path from an lstat result.
func FromFileInfo(path PathKey, info fs.FileInfo, root int) FileRecord {
	rec := FileRecord{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		AccTime: info.ModTime(),
		Mode:    info.Mode(),
		Type:    TypeOf(info.Mode()),
		Root:    root,
	}
	if st, ok := platform.StatOf(info); ok {
		rec.Inode = Inode{Dev: st.Dev, Ino: st.Ino}
		rec.AccTime = st.AccTime
	}
	if rec.Type == TypeDir {
		rec.Size = 0
	}
	return rec
}
