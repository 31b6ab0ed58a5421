package index

import (
	"path/filepath"
	"strings"
)

// PathKey is a normalized absolute path split into components. The
// filesystem root "/" is the empty key.
type PathKey []string

// ParsePath cleans p and splits it into components. Relative paths are
// treated as if rooted at "/".
func ParsePath(p string) PathKey {
	p = filepath.ToSlash(filepath.Clean("/" + p))
	if p == "/" {
		return PathKey{}
	}
	return PathKey(strings.Split(p[1:], "/"))
}

func (k PathKey) String() string {
	return "/" + strings.Join(k, "/")
}

// Base returns the last component, or "/" for the root key.
func (k PathKey) Base() string {
	if len(k) == 0 {
		return "/"
	}
	return k[len(k)-1]
}

// Parent returns the key one level up. The parent of the root is the root.
func (k PathKey) Parent() PathKey {
	if len(k) == 0 {
		return k
	}
	return k[:len(k)-1:len(k)-1]
}

// Join returns a new key with name appended. The receiver is not modified.
func (k PathKey) Join(name string) PathKey {
	out := make(PathKey, len(k), len(k)+1)
	copy(out, k)
	return append(out, name)
}

// HasPrefix reports whether prefix is k itself or one of its ancestors.
func (k PathKey) HasPrefix(prefix PathKey) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both keys name the same path.
func (k PathKey) Equal(o PathKey) bool {
	return len(k) == len(o) && k.HasPrefix(o)
}

// Compare orders keys component-wise, parents before children. This is the
// order the store's cursors emit records in.
func (k PathKey) Compare(o PathKey) int {
	for i := 0; i < len(k) && i < len(o); i++ {
		if c := strings.Compare(k[i], o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(o):
		return -1
	case len(k) > len(o):
		return 1
	default:
		return 0
	}
}

// Rel returns k relative to base as a slash-separated string. ok is false
// when base is not a prefix of k.
func (k PathKey) Rel(base PathKey) (rel string, ok bool) {
	if !k.HasPrefix(base) {
		return "", false
	}
	if len(k) == len(base) {
		return ".", true
	}
	return strings.Join(k[len(base):], "/"), true
}

// Clone returns a copy that does not share backing storage with k.
func (k PathKey) Clone() PathKey {
	if k == nil {
		return nil
	}
	out := make(PathKey, len(k))
	copy(out, k)
	return out
}
