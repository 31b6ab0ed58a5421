package platform

import (
	"os"
	"time"
)

// Stat holds the raw fields the index keys on.
type Stat struct {
	AccTime time.Time
	Dev     uint64
	Ino     uint64
	Nlink   uint64
}

// StatOf extracts raw stat fields from info. ok is false when the platform
// does not expose them; callers then fall back to path identity.
func StatOf(info os.FileInfo) (Stat, bool) {
	return statOf(info)
}
