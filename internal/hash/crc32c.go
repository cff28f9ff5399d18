package hash

import (
	"hash/crc32"
	"unsafe"
)

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
// Computing this once avoids repeated MakeTable calls.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
// Uses hardware acceleration when available (SSE4.2, ARM CRC).
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// String computes the CRC32-Castagnoli checksum of s without copying it.
func String(s string) uint32 {
	if len(s) == 0 {
		return 0
	}
	b := unsafe.Slice(unsafe.StringData(s), len(s)) //nolint:gosec // read-only view of the string bytes
	return crc32.Checksum(b, crc32cTable)
}
