package subjects

// This file binds the container variants into the benchmark registry,
// once per element kind. Each subject enters only the operations its
// representation supports; the registry turns the rest into blank
// report cells or fail-fast configuration errors.

import (
	"fmt"

	"github.com/seqbench/seqbench/bench"
	"github.com/seqbench/seqbench/workload"
)

// Subject names as they appear in configuration and report columns.
const (
	NameLinkedList      = "linkedList"
	NameTrieVector      = "trieVector"
	NameContiguousArray = "contiguousArray"
	NameLazySeq         = "lazySeq"
	NameIterator        = "iterator"
	NameHashSet         = "hashSet"
)

// binding fixes the element-kind-specific pieces the generic sequence
// subjects share: how to pull elements out of a workload and the fold,
// map and filter functions applied to them.
type binding[E any] struct {
	elems   func(*workload.Workload) []E
	seed    E
	combine func(E, E) E
	mapFn   func(E) E
	keep    func(E) bool
}

// RegisterAll enters every variant for the given element kind.
func RegisterAll(reg *bench.Registry, kind workload.Kind) error {
	switch kind {
	case workload.KindPrimitive:
		bd := binding[int64]{
			elems:   func(w *workload.Workload) []int64 { return w.Ints },
			seed:    0,
			combine: func(a, b int64) int64 { return a + b },
			mapFn:   func(v int64) int64 { return v*2 + 1 },
			keep:    func(v int64) bool { return v&1 == 0 },
		}
		if err := registerSequences(reg, kind, bd); err != nil {
			return err
		}
		return registerHashSet(reg, kind, bd.elems,
			func(v int64) int64 { return v },
			binding[int64]{
				seed:    0,
				combine: bd.combine,
				mapFn:   bd.mapFn,
				keep:    bd.keep,
			})
	case workload.KindBoxedPair:
		bd := binding[*workload.Pair]{
			elems: func(w *workload.Workload) []*workload.Pair { return w.Pairs },
			seed:  &workload.Pair{},
			combine: func(a, b *workload.Pair) *workload.Pair {
				return &workload.Pair{Key: a.Key + b.Key, Value: a.Value + b.Value}
			},
			mapFn: func(p *workload.Pair) *workload.Pair {
				return &workload.Pair{Key: p.Key, Value: p.Value*2 + 1}
			},
			keep: func(p *workload.Pair) bool { return p.Key&1 == 0 },
		}
		if err := registerSequences(reg, kind, bd); err != nil {
			return err
		}
		// The set is keyed by dereferenced value: pointer identity
		// would make every boxed element spuriously unique.
		return registerHashSet(reg, kind, bd.elems,
			func(p *workload.Pair) workload.Pair { return *p },
			binding[workload.Pair]{
				seed: workload.Pair{},
				combine: func(a, b workload.Pair) workload.Pair {
					return workload.Pair{Key: a.Key + b.Key, Value: a.Value + b.Value}
				},
				mapFn: func(p workload.Pair) workload.Pair {
					return workload.Pair{Key: p.Key, Value: p.Value*2 + 1}
				},
				keep: func(p workload.Pair) bool { return p.Key&1 == 0 },
			})
	}
	return fmt.Errorf("unknown element kind %v", kind)
}

func registerSequences[E any](reg *bench.Registry, kind workload.Kind, bd binding[E]) error {
	for _, s := range []*bench.Subject{
		linkedListSubject(kind, bd),
		trieVectorSubject(kind, bd),
		contiguousArraySubject(kind, bd),
		lazySeqSubject(kind, bd),
		iteratorSubject(kind, bd),
	} {
		if err := reg.Register(s); err != nil {
			return err
		}
	}
	return nil
}

func linkedListSubject[E any](kind workload.Kind, bd binding[E]) *bench.Subject {
	s := bench.NewSubject(NameLinkedList, kind)
	setup := func(w *workload.Workload) any { return ListFrom(bd.elems(w)) }
	get := func(state any) *List[E] { return state.(*List[E]) }

	s.Define(bench.OpBuildFromRange, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any { return ListFrom(bd.elems(w)) },
	})
	s.Define(bench.OpBuildIncrementally, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			var l *List[E]
			for _, e := range bd.elems(w) {
				l = l.Cons(e)
			}
			return l
		},
	})
	s.Define(bench.OpFoldLeft, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return ListFoldLeft(get(state), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpFoldRight, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return ListFoldRight(get(state), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpMap, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return ListMap(get(state), bd.mapFn)
		},
	})
	s.Define(bench.OpFilter, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return ListFilter(get(state), bd.keep)
		},
	})
	s.Define(bench.OpConcat, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			l := get(state)
			return l.Concat(l)
		},
	})
	s.Define(bench.OpHead, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			h, _ := get(state).Head()
			return h
		},
	})
	s.Define(bench.OpTailRecursiveLast, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			last, _ := get(state).Last()
			return last
		},
	})
	return s
}

func trieVectorSubject[E any](kind workload.Kind, bd binding[E]) *bench.Subject {
	s := bench.NewSubject(NameTrieVector, kind)
	setup := func(w *workload.Workload) any { return VectorFrom(bd.elems(w)) }
	get := func(state any) *Vector[E] { return state.(*Vector[E]) }

	s.Define(bench.OpBuildFromRange, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any { return VectorFrom(bd.elems(w)) },
	})
	s.Define(bench.OpBuildIncrementally, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			v := NewVector[E]()
			for _, e := range bd.elems(w) {
				v = v.Append(e)
			}
			return v
		},
	})
	s.Define(bench.OpFoldLeft, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return VectorFoldLeft(get(state), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpFoldRight, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return VectorFoldRight(get(state), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpMap, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return VectorMap(get(state), bd.mapFn)
		},
	})
	s.Define(bench.OpFilter, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return VectorFilter(get(state), bd.keep)
		},
	})
	s.Define(bench.OpConcat, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			v := get(state)
			return v.Concat(v)
		},
	})
	s.Define(bench.OpHead, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			h, _ := get(state).Head()
			return h
		},
	})
	s.Define(bench.OpTailRecursiveLast, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			last, _ := get(state).Last()
			return last
		},
	})
	return s
}

func contiguousArraySubject[E any](kind workload.Kind, bd binding[E]) *bench.Subject {
	s := bench.NewSubject(NameContiguousArray, kind)
	setup := func(w *workload.Workload) any { return ArrayFrom(bd.elems(w)) }
	get := func(state any) *Array[E] { return state.(*Array[E]) }

	s.Define(bench.OpBuildFromRange, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any { return ArrayFrom(bd.elems(w)) },
	})
	s.Define(bench.OpBuildIncrementally, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any { return ArrayAppend(bd.elems(w)) },
	})
	s.Define(bench.OpFoldLeft, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return ArrayFoldLeft(get(state), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpFoldRight, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return ArrayFoldRight(get(state), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpMap, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return ArrayMap(get(state), bd.mapFn)
		},
	})
	s.Define(bench.OpFilter, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return ArrayFilter(get(state), bd.keep)
		},
	})
	s.Define(bench.OpConcat, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			a := get(state)
			return a.Concat(a)
		},
	})
	s.Define(bench.OpHead, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			h, _ := get(state).Head()
			return h
		},
	})
	s.Define(bench.OpTailRecursiveLast, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			last, _ := get(state).Last()
			return last
		},
	})
	return s
}

func lazySeqSubject[E any](kind workload.Kind, bd binding[E]) *bench.Subject {
	s := bench.NewSubject(NameLazySeq, kind)
	// The shared instance is fully realized once so that the measured
	// operations walk memoized cells; the memoization is the property
	// under test for this variant.
	setup := func(w *workload.Workload) any {
		seq := LazyFrom(bd.elems(w))
		seq.Force()
		return seq
	}
	get := func(state any) *Lazy[E] { return state.(*Lazy[E]) }

	s.Define(bench.OpBuildFromRange, bench.Benchmark{
		// Realization cost is the build cost here; the blackhole forces
		// the returned sequence.
		Func: func(w *workload.Workload, _ any) any { return LazyFrom(bd.elems(w)) },
	})
	s.Define(bench.OpFoldLeft, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return LazyFoldLeft(get(state), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpFoldRight, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return LazyFoldRight(get(state), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpMap, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return LazyMap(get(state), bd.mapFn)
		},
	})
	s.Define(bench.OpFilter, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return LazyFilter(get(state), bd.keep)
		},
	})
	s.Define(bench.OpConcat, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			seq := get(state)
			return seq.Concat(seq)
		},
	})
	s.Define(bench.OpHead, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			h, _ := get(state).Head()
			return h
		},
	})
	s.Define(bench.OpTailRecursiveLast, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			last, _ := get(state).Last()
			return last
		},
	})
	return s
}

func iteratorSubject[E any](kind workload.Kind, bd binding[E]) *bench.Subject {
	s := bench.NewSubject(NameIterator, kind)
	// Single-pass: every op constructs a fresh iterator inside the
	// measured call. The wrap is constant-time; the blackhole drains
	// lazy results.

	s.Define(bench.OpBuildFromRange, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any { return IterFrom(bd.elems(w)) },
	})
	s.Define(bench.OpFoldLeft, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			return IterFoldLeft(IterFrom(bd.elems(w)), bd.seed, bd.combine)
		},
	})
	s.Define(bench.OpMap, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			return IterMap(IterFrom(bd.elems(w)), bd.mapFn)
		},
	})
	s.Define(bench.OpFilter, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			return IterFilter(IterFrom(bd.elems(w)), bd.keep)
		},
	})
	s.Define(bench.OpConcat, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			elems := bd.elems(w)
			return IterFrom(elems).Concat(IterFrom(elems))
		},
	})
	s.Define(bench.OpHead, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			h, _ := IterFrom(bd.elems(w)).Next()
			return h
		},
	})
	s.Define(bench.OpTailRecursiveLast, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			last, _ := IterFrom(bd.elems(w)).Last()
			return last
		},
	})
	return s
}

func registerHashSet[E any, K comparable](
	reg *bench.Registry,
	kind workload.Kind,
	elems func(*workload.Workload) []E,
	key func(E) K,
	kb binding[K],
) error {
	s := bench.NewSubject(NameHashSet, kind)
	setup := func(w *workload.Workload) any {
		src := elems(w)
		set := NewHashSet[K](len(src))
		for _, e := range src {
			set.Insert(key(e))
		}
		return set
	}
	get := func(state any) *HashSet[K] { return state.(*HashSet[K]) }

	s.Define(bench.OpBuildFromRange, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			src := elems(w)
			set := NewHashSet[K](len(src))
			for _, e := range src {
				set.Insert(key(e))
			}
			return set
		},
	})
	s.Define(bench.OpBuildIncrementally, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			set := NewHashSet[K](0)
			for _, e := range elems(w) {
				set.Insert(key(e))
			}
			return set
		},
	})
	s.Define(bench.OpInsertUnique, bench.Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			src := elems(w)
			set := NewHashSet[K](len(src))
			accepted := 0
			for _, e := range src {
				if set.Insert(key(e)) {
					accepted++
				}
			}
			return accepted
		},
	})
	s.Define(bench.OpFoldLeft, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return HashSetFoldLeft(get(state), kb.seed, kb.combine)
		},
	})
	s.Define(bench.OpMap, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return HashSetMap(get(state), kb.mapFn)
		},
	})
	s.Define(bench.OpFilter, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			return HashSetFilter(get(state), kb.keep)
		},
	})
	s.Define(bench.OpConcat, bench.Benchmark{
		Setup: setup,
		Func: func(_ *workload.Workload, state any) any {
			set := get(state)
			return set.Union(set)
		},
	})
	return reg.Register(s)
}
