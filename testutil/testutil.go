package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex

	// cumulative Zipf weights for the last (n, s) drawn
	zipfN   int
	zipfS   float64
	zipfCDF []float64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Zipf returns a Zipfian-distributed value in [0, n).
// P(k) ∝ 1/k^s where s is the skew parameter; s=1.0 gives standard Zipf.
// Identifier reuse in real programs follows this shape: a few names are
// looked up constantly, most appear once or twice.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	if r.zipfN != n || r.zipfS != s {
		cdf := make([]float64, n)
		var sum float64
		for k := 1; k <= n; k++ {
			sum += 1.0 / math.Pow(float64(k), s)
			cdf[k-1] = sum
		}
		r.zipfN, r.zipfS, r.zipfCDF = n, s, cdf
	}

	u := r.rand.Float64() * r.zipfCDF[n-1]
	if k := sort.SearchFloat64s(r.zipfCDF, u); k < n {
		return k
	}
	return n - 1
}

const identStart = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
const identRest = identStart + "0123456789"

// Identifier returns a random C-like identifier with a length in
// [minLen, maxLen].
func (r *RNG) Identifier(minLen, maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identifierLocked(minLen, maxLen)
}

func (r *RNG) identifierLocked(minLen, maxLen int) string {
	if minLen < 1 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	n := minLen + r.rand.Intn(maxLen-minLen+1)
	buf := make([]byte, n)
	buf[0] = identStart[r.rand.Intn(len(identStart))]
	for i := 1; i < n; i++ {
		buf[i] = identRest[r.rand.Intn(len(identRest))]
	}
	return string(buf)
}

// Identifiers returns num distinct identifiers. Duplicates produced by the
// generator are redrawn, so the result always has exactly num entries.
func (r *RNG) Identifiers(num, minLen, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, num)
	out := make([]string, 0, num)
	for len(out) < num {
		id := r.identifierLocked(minLen, maxLen)
		if _, dup := seen[id]; dup {
			// Short identifiers saturate quickly; widen instead of spinning.
			maxLen++
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// OpKind enumerates the operations produced by Ops.
type OpKind uint8

const (
	OpInsert OpKind = iota
	OpLookup
	OpReplace
	OpErase
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpLookup:
		return "lookup"
	case OpReplace:
		return "replace"
	case OpErase:
		return "erase"
	default:
		return "unknown"
	}
}

// Op is one step of a randomized container workload.
type Op struct {
	Kind  OpKind
	Key   int
	Value int
}

// Ops generates n operations over keys in [0, keySpace). A skew > 0 draws
// keys from a Zipf distribution with that exponent, otherwise keys are
// uniform. Inserts and lookups dominate, erases are the rarest.
func (r *RNG) Ops(n, keySpace int, skew float64) []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		var key int
		if skew > 0 {
			key = r.zipfLocked(keySpace, skew)
		} else {
			key = r.rand.Intn(keySpace)
		}

		var kind OpKind
		switch p := r.rand.Intn(100); {
		case p < 40:
			kind = OpInsert
		case p < 70:
			kind = OpLookup
		case p < 85:
			kind = OpReplace
		default:
			kind = OpErase
		}

		ops[i] = Op{Kind: kind, Key: key, Value: r.rand.Int()}
	}
	return ops
}
