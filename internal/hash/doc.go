// Package hash provides hardware-accelerated content hashing.
//
// # CRC32-Castagnoli (CRC32C)
//
// CRC32C is computed with SSE4.2 on x86 and the CRC extension on ARM, which
// makes it far cheaper per byte than the one-at-a-time mixer for long keys.
// Its distribution is good enough for hash tables with power-of-two
// capacity, since the table only looks at the low bits.
//
//	h := hash.String("a_rather_long_module_qualified_identifier")
package hash
