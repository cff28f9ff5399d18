package stg

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/hupe1980/stgkit/internal/mem"
	"github.com/hupe1980/stgkit/internal/mmap"
)

// Memory is the raw allocator behind arena buffers.
//
// Implementations give no initialization guarantee; the arena clears what it
// hands out. Realloc must preserve the first min(len(buf), size) bytes.
type Memory interface {
	Alloc(size int) ([]byte, error)
	Realloc(buf []byte, size int) ([]byte, error)
	Free(buf []byte) error
}

// ErrForeignBuffer is returned by a Memory asked to resize or free a buffer it
// did not allocate.
var ErrForeignBuffer = errors.New("stg: buffer not allocated by this memory")

// HeapMemory returns a Memory backed by the Go heap.
//
// Buffers are word aligned, so At works for any pointer-free element type.
func HeapMemory() Memory {
	return heapMemory{}
}

type heapMemory struct{}

func (heapMemory) Alloc(size int) ([]byte, error) {
	return mem.AllocAligned(size), nil
}

func (heapMemory) Realloc(buf []byte, size int) ([]byte, error) {
	return mem.GrowAligned(buf, size), nil
}

func (heapMemory) Free([]byte) error {
	return nil
}

// MmapMemory returns a Memory that maps anonymous memory outside the Go heap.
//
// Large symbol tables then cost the garbage collector nothing. On Linux,
// growth remaps in place instead of copying. Regions are advised for random
// access, since free-list reuse jumps around the buffer. A single MmapMemory may be shared
// by several arenas, including arenas used from different goroutines.
func MmapMemory() Memory {
	return &mmapMemory{
		regions: make(map[*byte]*mmap.Region),
		advice:  mmap.AccessRandom,
	}
}

type mmapMemory struct {
	mu      sync.Mutex
	regions map[*byte]*mmap.Region
	advice  mmap.AccessPattern
}

func (m *mmapMemory) Alloc(size int) ([]byte, error) {
	r, err := mmap.MapAnon(size)
	if err != nil {
		return nil, err
	}
	if err := r.Advise(m.advice); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("advise %d bytes: %w", size, err)
	}
	buf := r.Bytes()

	m.mu.Lock()
	m.regions[unsafe.SliceData(buf)] = r
	m.mu.Unlock()
	return buf, nil
}

func (m *mmapMemory) Realloc(buf []byte, size int) ([]byte, error) {
	r := m.take(buf)
	if r == nil {
		return nil, ErrForeignBuffer
	}
	if err := r.Grow(size); err != nil {
		m.put(r)
		return nil, err
	}
	// A moved region starts without advice.
	err := r.Advise(m.advice)
	m.put(r)
	if err != nil {
		return nil, fmt.Errorf("advise %d bytes: %w", size, err)
	}
	return r.Bytes()[:size], nil
}

func (m *mmapMemory) Free(buf []byte) error {
	r := m.take(buf)
	if r == nil {
		return ErrForeignBuffer
	}
	return r.Close()
}

func (m *mmapMemory) take(buf []byte) *mmap.Region {
	key := unsafe.SliceData(buf)
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regions[key]
	if !ok {
		return nil
	}
	delete(m.regions, key)
	return r
}

func (m *mmapMemory) put(r *mmap.Region) {
	m.mu.Lock()
	m.regions[unsafe.SliceData(r.Bytes())] = r
	m.mu.Unlock()
}
