//go:build !linux && !darwin

package platform

import "os"

func statOf(_ os.FileInfo) (Stat, bool) {
	return Stat{}, false
}
