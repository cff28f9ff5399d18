package hashtab

// Accu is a streaming hash accumulator (Jenkins one-at-a-time).
//
// It folds any number of fields into a single 32-bit hash without
// serializing them first:
//
//	h := hashtab.NewAccu().Add(kind).AddString(name).Finish().Value()
//
// The result depends on the order in which fields are added. Accu is a value
// type; every method returns the updated accumulator.
type Accu struct {
	a uint32
}

// NewAccu returns the zero accumulator.
func NewAccu() Accu {
	return Accu{}
}

// Add mixes one 32-bit value into the accumulator.
func (h Accu) Add(v uint32) Accu {
	h.a += v
	h.a += h.a << 10
	h.a ^= h.a >> 6
	return h
}

// AddUint64 mixes the low and then the high 32 bits of v.
func (h Accu) AddUint64(v uint64) Accu {
	return h.Add(uint32(v)).Add(uint32(v >> 32))
}

// AddInt mixes v as a 64-bit value.
func (h Accu) AddInt(v int) Accu {
	return h.AddUint64(uint64(v))
}

// AddString mixes each byte of s.
func (h Accu) AddString(s string) Accu {
	for i := 0; i < len(s); i++ {
		h = h.Add(uint32(s[i]))
	}
	return h
}

// AddBytes mixes each byte of b.
func (h Accu) AddBytes(b []byte) Accu {
	for _, c := range b {
		h = h.Add(uint32(c))
	}
	return h
}

// Finish applies the final avalanche. Call it once, after the last Add.
func (h Accu) Finish() Accu {
	h.a += h.a << 3
	h.a ^= h.a >> 11
	h.a += h.a << 15
	return h
}

// Value returns the current hash value.
func (h Accu) Value() uint32 {
	return h.a
}
