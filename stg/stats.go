package stg

// Stats tracks arena activity.
//
// Counters are cumulative since creation.
type Stats struct {
	Reserves      uint64 // Reserve calls (including AllocFree fallbacks)
	Grows         uint64 // reallocations of the buffer
	FreeHits      uint64 // AllocFree calls served from the free list
	FreeMisses    uint64 // AllocFree calls that fell back to Reserve(1)
	Releases      uint64 // Release calls
	BytesReserved int64  // current buffer size in bytes
}

// Stats returns the arena's counters.
func (a *Arena) Stats() Stats {
	return a.stats
}
