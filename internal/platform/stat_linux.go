//go:build linux

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
		AccTime: time.Unix(st.Atim.Sec, st.Atim.Nsec),
		Dev:     st.Dev,
		Ino:     st.Ino,
		Nlink:   uint64(st.Nlink),
	}, true
}
