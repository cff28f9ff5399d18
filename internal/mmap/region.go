package mmap

// Region is an anonymous read-write mapping outside the Go heap.
//
// A fresh region reads as zero. Grow preserves the existing prefix; the bytes
// past it are zero as well, but callers should not rely on that beyond what
// they clear themselves.
type Region struct {
	data   []byte
	closed bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// MapAnon creates a region of size bytes.
func MapAnon(size int) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	data, unmap, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped memory.
// Warning: The slice is valid only until the next Grow or Close.
func (r *Region) Bytes() []byte {
	if r.closed {
		return nil
	}
	return r.data
}

// Len returns the size of the region in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Grow resizes the region to size bytes, moving it if necessary.
// Shrinking is not supported; a smaller size is a no-op.
func (r *Region) Grow(size int) error {
	if r.closed {
		return ErrClosed
	}
	if size <= len(r.data) {
		return nil
	}
	data, unmap, err := osRemap(r.data, r.unmap, size)
	if err != nil {
		return err
	}
	r.data, r.unmap = data, unmap
	return nil
}

// Advise provides hints to the kernel about how the region will be accessed.
func (r *Region) Advise(pattern AccessPattern) error {
	if r.closed {
		return ErrClosed
	}
	return osAdvise(r.data, pattern)
}

// Close unmaps the memory. It is idempotent.
func (r *Region) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	data := r.data
	r.data = nil
	if r.unmap != nil && data != nil {
		return r.unmap(data)
	}
	return nil
}

// remapCopy grows by mapping a new region and copying the old contents over.
// Used where the platform has no in-place remap.
func remapCopy(old []byte, unmap func([]byte) error, size int) ([]byte, func([]byte) error, error) {
	data, newUnmap, err := osMapAnon(size)
	if err != nil {
		return nil, nil, err
	}
	copy(data, old)
	if unmap != nil {
		if err := unmap(old); err != nil {
			_ = newUnmap(data)
			return nil, nil, err
		}
	}
	return data, newUnmap, nil
}
