// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 8-byte aligned heap buffers for arenas whose elements are viewed
// as typed records.
package mem
