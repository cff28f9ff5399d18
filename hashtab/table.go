package hashtab

import (
	"context"
	"math/bits"

	"github.com/hupe1980/stgkit"
)

// Control bytes. A slot is empty until first filled; erasing leaves a
// tombstone so that probe sequences running through the slot stay intact.
type ctrl uint8

const (
	ctrlEmpty ctrl = iota
	ctrlDeleted
	ctrlFull
)

const (
	minCapacity = 8

	// The table grows when full plus deleted slots reach 7/8 of capacity, so a
	// probe always ends at an empty slot.
	maxLoadNum = 7
	maxLoadDen = 8
)

type slot[K, V any] struct {
	hash  uint32
	key   K
	value V
}

// table is the open-addressing core shared by Set and Map.
//
// Capacity is zero or a power of two. Probing is triangular, which visits
// every slot of a power-of-two table.
type table[K, V any] struct {
	fns   Functions[K]
	ctrls []ctrl
	slots []slot[K, V]

	// used counts full slots.
	used int
	// growthLeft counts empty slots that may still be filled before a
	// rehash. Tombstones do not give it back, so a table filled with
	// tombstones rehashes instead of probing forever.
	growthLeft int

	iterating int
	freed     bool

	kind   string // "Set" or "Map"
	opts   options
	logger *stgkit.Logger
}

func (t *table[K, V]) init(kind string, fns Functions[K], opts []Option) {
	o := applyOptions(opts)
	if fns.Hash == nil || fns.Equals == nil {
		o.logger.Fatal(stgkit.ErrInvalidFunctions, "hashtab.New"+kind, o.name,
			"hash and equality functions are required")
	}
	*t = table[K, V]{
		fns:    fns,
		kind:   kind,
		opts:   o,
		logger: o.logger.WithComponent("hashtab").WithName(o.name),
	}
	if o.capacity > 0 {
		t.resize(capacityFor(o.capacity))
	}
}

// capacityFor returns the smallest power-of-two capacity, at least
// minCapacity, that holds n entries below the load limit.
func capacityFor(n int) int {
	need := (n*maxLoadDen + maxLoadNum - 1) / maxLoadNum
	if need <= minCapacity {
		return minCapacity
	}
	return 1 << bits.Len(uint(need-1))
}

func (t *table[K, V]) limit(capacity int) int {
	return capacity * maxLoadNum / maxLoadDen
}

// find returns the slot holding a key equal to k, or -1, and k's hash.
func (t *table[K, V]) find(k K) (int, uint32) {
	h := t.fns.Hash(k)
	if len(t.slots) == 0 {
		return -1, h
	}
	mask := uint(len(t.slots) - 1)
	i := uint(h) & mask
	for step := uint(1); ; step++ {
		switch t.ctrls[i] {
		case ctrlEmpty:
			return -1, h
		case ctrlFull:
			if s := &t.slots[i]; s.hash == h && t.fns.Equals(s.key, k) {
				return int(i), h
			}
		}
		i = (i + step) & mask
	}
}

// insert stores a new entry without looking for an equal key.
func (t *table[K, V]) insert(h uint32, k K, v V) {
	if t.growthLeft == 0 {
		t.rehash()
	}
	t.place(h, k, v)
}

// place puts an entry into the first empty or deleted slot of its probe
// sequence. The caller guarantees room.
func (t *table[K, V]) place(h uint32, k K, v V) {
	mask := uint(len(t.slots) - 1)
	i := uint(h) & mask
	for step := uint(1); t.ctrls[i] == ctrlFull; step++ {
		i = (i + step) & mask
	}
	if t.ctrls[i] == ctrlEmpty {
		t.growthLeft--
	}
	t.ctrls[i] = ctrlFull
	t.slots[i] = slot[K, V]{hash: h, key: k, value: v}
	t.used++
}

// remove turns slot i into a tombstone.
func (t *table[K, V]) remove(i int) {
	t.ctrls[i] = ctrlDeleted
	t.slots[i] = slot[K, V]{}
	t.used--
}

// rehash makes room for one more entry. It drops tombstones at the same
// capacity when that reclaims at least a third of the table, and doubles the
// capacity otherwise.
func (t *table[K, V]) rehash() {
	capacity := len(t.slots)
	switch {
	case capacity == 0:
		t.resize(minCapacity)
	case t.limit(capacity)-t.used >= capacity/3:
		t.resize(capacity)
	default:
		t.resize(capacity * 2)
	}
}

// resize moves every entry into fresh arrays of the given capacity. Cached
// hashes are reused, so the hash function is not called again.
func (t *table[K, V]) resize(capacity int) {
	oldCtrls, oldSlots := t.ctrls, t.slots
	oldCapacity := len(oldSlots)

	t.ctrls = make([]ctrl, capacity)
	t.slots = make([]slot[K, V], capacity)
	t.used = 0
	t.growthLeft = t.limit(capacity)

	for i, c := range oldCtrls {
		if c == ctrlFull {
			s := &oldSlots[i]
			t.place(s.hash, s.key, s.value)
		}
	}

	t.logger.LogGrow(context.Background(), oldCapacity, capacity, t.used)
}

func (t *table[K, V]) clear() {
	clear(t.ctrls)
	clear(t.slots)
	t.used = 0
	t.growthLeft = t.limit(len(t.slots))
}

func (t *table[K, V]) free() {
	t.ctrls = nil
	t.slots = nil
	t.used = 0
	t.growthLeft = 0
	t.freed = true
}

// all calls yield for every entry in slot order until yield returns false.
func (t *table[K, V]) all(yield func(k K, v V) bool) {
	t.iterating++
	defer func() { t.iterating-- }()

	for i, c := range t.ctrls {
		if c != ctrlFull {
			continue
		}
		if s := &t.slots[i]; !yield(s.key, s.value) {
			return
		}
	}
}

// live checks that the table is usable for op.
func (t *table[K, V]) live(op string) {
	if t.freed {
		t.fatal(stgkit.ErrDestroyed, op, "table used after Free")
	}
}

// mutable checks that op may modify the table.
func (t *table[K, V]) mutable(op string) {
	t.live(op)
	if t.iterating > 0 {
		t.fatal(stgkit.ErrMutationDuringIterate, op,
			"%s called from an iteration callback", op)
	}
}

func (t *table[K, V]) op(name string) string {
	return "hashtab." + t.kind + "." + name
}

// fatal reports a contract violation on the named operation through the
// table's logger.
func (t *table[K, V]) fatal(kind error, name, format string, args ...any) {
	t.opts.logger.Fatal(kind, t.op(name), t.opts.name, format, args...)
}

func (t *table[K, V]) lookup(k K) (*slot[K, V], bool) {
	t.live("Lookup")
	i, _ := t.find(k)
	if i < 0 {
		return nil, false
	}
	return &t.slots[i], true
}

// insertNew stores k without replacing anything. With checks enabled an equal
// key already present is fatal.
func (t *table[K, V]) insertNew(k K, v V) {
	t.mutable("Insert")
	if t.opts.checks {
		i, h := t.find(k)
		if i >= 0 {
			t.fatal(stgkit.ErrDuplicateKey, "Insert",
				"an equal key is already stored (hash %#08x)", h)
		}
		t.insert(h, k, v)
		return
	}
	t.insert(t.fns.Hash(k), k, v)
}

// replace stores k and v, returning the entry they displaced.
func (t *table[K, V]) replace(k K, v V) (slot[K, V], bool) {
	t.mutable("Replace")
	i, h := t.find(k)
	if i < 0 {
		t.insert(h, k, v)
		return slot[K, V]{}, false
	}
	old := t.slots[i]
	t.slots[i] = slot[K, V]{hash: h, key: k, value: v}
	return old, true
}

// erase removes the entry equal to k and returns it.
func (t *table[K, V]) erase(k K) (slot[K, V], bool) {
	t.mutable("Erase")
	i, _ := t.find(k)
	if i < 0 {
		return slot[K, V]{}, false
	}
	old := t.slots[i]
	t.remove(i)
	return old, true
}
