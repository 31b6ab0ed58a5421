//go:build !linux

package watch

func newNativeSource() (Source, error) {
	return nil, errNoNative
}
