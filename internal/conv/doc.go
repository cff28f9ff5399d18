// Package conv provides safe integer conversion utilities.
//
// These functions perform bounds checking so that arena byte sizes and
// free-list links never wrap silently:
//
//   - IntToInt32 guards the 32-bit index stored inside freed arena elements
//   - MulInt guards element count times element size
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
