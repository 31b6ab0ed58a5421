// Package platform wraps the OS-specific pieces the daemon needs: read-only
// file mappings for content scanning and raw stat fields (inode, atime) that
// os.FileInfo does not expose portably.
package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxFallbackRead caps how much of a file the buffered fallback will load.
// Special files (pipes, character devices) can be unbounded.
const MaxFallbackRead = 64 << 20 // 64 MiB

// ReadMethod identifies how a Region's bytes were obtained.
type ReadMethod int

const (
	Mmap ReadMethod = iota
	Buffered
)

func (m ReadMethod) String() string {
	switch m {
	case Mmap:
		return "mmap"
	case Buffered:
		return "buffered"
	default:
		return "unknown"
	}
}

// ErrNotRegular is returned by Open for directories.
var ErrNotRegular = errors.New("not a regular file")

// Region is a read-only view of a file's bytes. Close must be called on every
// exit path; it is safe to call more than once.
type Region struct {
	Data    []byte
	Method  ReadMethod
	release func() error
}

// Close releases the mapping (or drops the buffer).
func (r *Region) Close() error {
	if r == nil || r.release == nil {
		return nil
	}
	release := r.release
	r.release = nil
	r.Data = nil
	return release()
}

// Open maps path read-only. Zero-length files, non-regular files and files
// the kernel refuses to map are read into memory instead.
func Open(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	if info.Mode().IsRegular() && info.Size() > 0 {
		if data, mapErr := mapFile(f, info.Size()); mapErr == nil {
			return &Region{
				Data:    data,
				Method:  Mmap,
				release: func() error { return unmapFile(data) },
			}, nil
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFallbackRead))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Region{
		Data:    data,
		Method:  Buffered,
		release: func() error { return nil },
	}, nil
}
