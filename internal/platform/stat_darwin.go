//go:build darwin

package platform

import (
	"os"
	"syscall"
	"time"
)

func statOf(info os.FileInfo) (Stat, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Stat{}, false
	}
	return Stat{
		AccTime: time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec),
		Dev:     uint64(st.Dev), //nolint:gosec // G115: dev_t is int32 on darwin, always non-negative
		Ino:     st.Ino,
		Nlink:   uint64(st.Nlink),
	}, true
}
