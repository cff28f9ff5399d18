//go:build !linux

package mmap

func osRemap(old []byte, unmap func([]byte) error, size int) ([]byte, func([]byte) error, error) {
	return remapCopy(old, unmap, size)
}
