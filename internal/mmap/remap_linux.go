//go:build linux

package mmap

import (
	"golang.org/x/sys/unix"
)

// osRemap uses mremap(2) so growing a region does not copy page contents.
func osRemap(old []byte, unmap func([]byte) error, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mremap(old, size, unix.MREMAP_MAYMOVE)
	if err != nil {
		return remapCopy(old, unmap, size)
	}
	return data, unix.Munmap, nil
}
