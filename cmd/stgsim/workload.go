package main

import (
	"fmt"

	"github.com/hupe1980/stgkit/hashtab"
	"github.com/hupe1980/stgkit/stg"
	"github.com/hupe1980/stgkit/testutil"
)

// symbol is one symbol-table record. Links are arena indices, 0 meaning none.
type symbol struct {
	Name    int32 // index into the identifier pool
	Scope   int32 // nesting depth at declaration
	Shadow  int32 // symbol of the same name hidden by this one
	Sibling int32 // next symbol declared in the same scope
}

// symtabConfig describes one symbol-table workload.
type symtabConfig struct {
	Symbols  int     // total declarations
	Depth    int     // maximum scope nesting
	Names    int     // size of the identifier pool
	Skew     float64 // Zipf exponent for name reuse
	Seed     int64
	Debug    bool
	ArenaOpt []stg.Option
}

// symtabResult summarizes a finished workload.
type symtabResult struct {
	Declared   int
	Lookups    int
	Hits       int
	Mismatches int
	MaxLive    int
	MaxDepth   int
	ArenaLen   int
	ArenaSize  int
	FreeLen    int
	TableCap   int
	ArenaStats stg.Stats
}

// symtab is a scoped symbol table: records live in an arena with a type
// sidecar, and a hash map binds each visible name to its innermost symbol.
type symtab struct {
	syms  *stg.Arena
	types *stg.Arena
	bound *hashtab.Map[string, int32]
	names []string
	// scopes holds the first symbol of every open scope, innermost last.
	scopes []int32
	live   int
}

func newSymtab(cfg symtabConfig, names []string) *symtab {
	opts := cfg.ArenaOpt
	if cfg.Debug {
		opts = append(opts[:len(opts):len(opts)], stg.WithDebugChecks())
	}
	syms := stg.NewOf[symbol](64, "symtab", opts...)
	tableOpts := []hashtab.Option{hashtab.WithName("symtab.bound")}
	if cfg.Debug {
		tableOpts = append(tableOpts, hashtab.WithChecks())
	}
	return &symtab{
		syms:  syms,
		types: stg.NewSidecarOf[int32](syms, "symtab.dtype"),
		bound: hashtab.NewMap[string, int32](hashtab.Strings(), tableOpts...),
		names: names,
	}
}

func (s *symtab) close() {
	s.syms.DeleteSidecar(s.types)
	s.syms.Destroy()
	s.bound.Free()
}

func (s *symtab) enter() {
	s.scopes = append(s.scopes, 0)
}

// declare adds a symbol named names[name] with type dtype to the innermost
// scope, shadowing any visible symbol of the same name.
func (s *symtab) declare(name int32, dtype int32) int32 {
	depth := len(s.scopes) - 1
	i := s.syms.AllocFree()
	idx := int32(i)

	sym := stg.At[symbol](s.syms, i)
	sym.Name = name
	sym.Scope = int32(depth)
	sym.Sibling = s.scopes[depth]
	if _, prev, ok := s.bound.Replace(s.names[name], idx); ok {
		sym.Shadow = prev
	}
	*stg.At[int32](s.types, i) = dtype

	s.scopes[depth] = idx
	s.live++
	return idx
}

// lookup resolves a name to its innermost visible symbol. consistent is
// false when the bound record carries a different name.
func (s *symtab) lookup(name int32) (idx int32, found, consistent bool) {
	idx, found = s.bound.Get(s.names[name])
	if !found {
		return 0, false, true
	}
	return idx, true, stg.At[symbol](s.syms, int(idx)).Name == name
}

// exit closes the innermost scope, unhiding shadowed symbols and returning
// the scope's records to the free list.
func (s *symtab) exit() {
	depth := len(s.scopes) - 1
	for idx := s.scopes[depth]; idx != 0; {
		sym := *stg.At[symbol](s.syms, int(idx))
		name := s.names[sym.Name]
		if sym.Shadow != 0 {
			s.bound.Replace(name, sym.Shadow)
		} else {
			s.bound.Erase(name)
		}
		s.syms.Release(int(idx))
		s.live--
		idx = sym.Sibling
	}
	s.scopes = s.scopes[:depth]
}

// runSymtab simulates declaring cfg.Symbols symbols in randomly nested
// scopes and checks that everything is released at the end.
func runSymtab(cfg symtabConfig) (symtabResult, error) {
	if cfg.Names <= 0 {
		cfg.Names = max(1, cfg.Symbols/4)
	}
	if cfg.Depth <= 0 {
		cfg.Depth = 1
	}

	rng := testutil.NewRNG(cfg.Seed)
	names := rng.Identifiers(cfg.Names, 1, 12)

	st := newSymtab(cfg, names)
	defer st.close()

	var res symtabResult
	for res.Declared < cfg.Symbols {
		depth := len(st.scopes)
		if depth == 0 || (depth < cfg.Depth && rng.Intn(4) != 0) {
			st.enter()
			res.MaxDepth = max(res.MaxDepth, len(st.scopes))

			batch := min(1+rng.Intn(16), cfg.Symbols-res.Declared)
			for range batch {
				name := int32(rng.Zipf(cfg.Names, cfg.Skew))
				st.declare(name, int32(rng.Intn(32)))
				res.Declared++
			}
			res.MaxLive = max(res.MaxLive, st.live)

			for range 2 * batch {
				res.Lookups++
				_, found, consistent := st.lookup(int32(rng.Zipf(cfg.Names, cfg.Skew)))
				if found {
					res.Hits++
				}
				if !consistent {
					res.Mismatches++
				}
			}
			continue
		}
		st.exit()
	}
	for len(st.scopes) > 0 {
		st.exit()
	}

	res.ArenaLen = st.syms.Len()
	res.ArenaSize = st.syms.Size()
	res.FreeLen = len(st.syms.FreeList())
	res.TableCap = st.bound.Cap()
	res.ArenaStats = st.syms.Stats()

	if res.Mismatches > 0 {
		return res, fmt.Errorf("%d lookups resolved to a record of another name", res.Mismatches)
	}
	if n := st.bound.Len(); n != 0 {
		return res, fmt.Errorf("%d names still bound after closing all scopes", n)
	}
	if res.FreeLen != res.ArenaLen-1 {
		return res, fmt.Errorf("free list holds %d of %d records", res.FreeLen, res.ArenaLen-1)
	}
	if st.types.Len() != st.syms.Len() || st.types.Size() != st.syms.Size() {
		return res, fmt.Errorf("type sidecar out of step: len %d/%d size %d/%d",
			st.types.Len(), st.syms.Len(), st.types.Size(), st.syms.Size())
	}
	return res, nil
}
