//go:build !unix

package platform

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("mmap not supported on this platform")

func mapFile(_ *os.File, _ int64) ([]byte, error) {
	return nil, errNoMmap
}

func unmapFile(_ []byte) error { return nil }
