package subjects

// HashSet is the mutable uniqueness accumulator. It is keyed by
// element value, so boxed elements are inserted by dereferenced value
// rather than pointer identity. Unordered: it enters no head, right
// fold, or deconstruction benchmark.
type HashSet[K comparable] struct {
	m map[K]struct{}
}

// NewHashSet returns an empty set with room for capacity elements.
func NewHashSet[K comparable](capacity int) *HashSet[K] {
	return &HashSet[K]{m: make(map[K]struct{}, capacity)}
}

// HashSetFrom builds a presized set from elems.
func HashSetFrom[K comparable](elems []K) *HashSet[K] {
	s := NewHashSet[K](len(elems))
	for _, e := range elems {
		s.m[e] = struct{}{}
	}
	return s
}

// HashSetGrow builds a set from an empty map, growing as it inserts:
// the incremental-build idiom for the hashed representation.
func HashSetGrow[K comparable](elems []K) *HashSet[K] {
	s := &HashSet[K]{m: make(map[K]struct{})}
	for _, e := range elems {
		s.m[e] = struct{}{}
	}
	return s
}

// Insert adds e, reporting whether it was absent.
func (s *HashSet[K]) Insert(e K) bool {
	if _, ok := s.m[e]; ok {
		return false
	}
	s.m[e] = struct{}{}
	return true
}

func (s *HashSet[K]) Contains(e K) bool {
	_, ok := s.m[e]
	return ok
}

func (s *HashSet[K]) Len() int { return len(s.m) }

// Union copies both sets into a new one.
func (s *HashSet[K]) Union(other *HashSet[K]) *HashSet[K] {
	out := NewHashSet[K](len(s.m) + len(other.m))
	for e := range s.m {
		out.m[e] = struct{}{}
	}
	for e := range other.m {
		out.m[e] = struct{}{}
	}
	return out
}

// HashSetFoldLeft reduces over the elements in map order. Iteration
// order is unspecified, so the benchmarks fold with commutative
// functions.
func HashSetFoldLeft[K comparable, A any](s *HashSet[K], seed A, fn func(A, K) A) A {
	acc := seed
	for e := range s.m {
		acc = fn(acc, e)
	}
	return acc
}

// HashSetMap builds a new set of transformed elements.
func HashSetMap[K, R comparable](s *HashSet[K], fn func(K) R) *HashSet[R] {
	out := NewHashSet[R](len(s.m))
	for e := range s.m {
		out.m[fn(e)] = struct{}{}
	}
	return out
}

// HashSetFilter builds a new set keeping the elements pred accepts.
func HashSetFilter[K comparable](s *HashSet[K], pred func(K) bool) *HashSet[K] {
	out := NewHashSet[K](len(s.m))
	for e := range s.m {
		if pred(e) {
			out.m[e] = struct{}{}
		}
	}
	return out
}
