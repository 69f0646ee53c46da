package subjects

import (
	"github.com/seqbench/seqbench/bench"
)

// Lazy is a memoizing lazy sequence: a cons cell whose tail is a
// suspended computation, realized at most once. Scheduling is
// single-threaded, so memoization is a plain flag rather than a lock.
// The memoization here is the property under test for this variant,
// not an accident.
type Lazy[E any] struct {
	head   E
	thunk  func() *Lazy[E]
	tail   *Lazy[E]
	forced bool
}

// LazyCons suspends tail behind thunk. A nil *Lazy is the empty
// sequence.
func LazyCons[E any](head E, thunk func() *Lazy[E]) *Lazy[E] {
	return &Lazy[E]{head: head, thunk: thunk}
}

// LazyFrom wraps elems without realizing anything beyond the first
// cell; each Tail realizes exactly one more.
func LazyFrom[E any](elems []E) *Lazy[E] {
	return lazyFromIndex(elems, 0)
}

func lazyFromIndex[E any](elems []E, i int) *Lazy[E] {
	if i >= len(elems) {
		return nil
	}
	return LazyCons(elems[i], func() *Lazy[E] {
		return lazyFromIndex(elems, i+1)
	})
}

func (s *Lazy[E]) Head() (E, bool) {
	if s == nil {
		var zero E
		return zero, false
	}
	return s.head, true
}

// Tail realizes and memoizes the next cell.
func (s *Lazy[E]) Tail() *Lazy[E] {
	if s == nil {
		return nil
	}
	if !s.forced {
		s.tail = s.thunk()
		s.thunk = nil
		s.forced = true
	}
	return s.tail
}

// Force realizes the entire sequence. The blackhole calls this so lazy
// results cannot hide the work they represent.
func (s *Lazy[E]) Force() {
	for cur := s; cur != nil; cur = cur.Tail() {
	}
}

// Last forces the sequence cell by cell and returns the final head.
func (s *Lazy[E]) Last() (E, bool) {
	if s == nil {
		var zero E
		return zero, false
	}
	cur := s
	for next := cur.Tail(); next != nil; next = cur.Tail() {
		cur = next
	}
	return cur.head, true
}

// Concat lazily appends other after s.
func (s *Lazy[E]) Concat(other *Lazy[E]) *Lazy[E] {
	if s == nil {
		return other
	}
	return LazyCons(s.head, func() *Lazy[E] {
		return s.Tail().Concat(other)
	})
}

// LazyFoldLeft reduces front to back iteratively, realizing cells as it
// goes.
func LazyFoldLeft[E, A any](s *Lazy[E], seed A, fn func(A, E) A) A {
	acc := seed
	for cur := s; cur != nil; cur = cur.Tail() {
		acc = fn(acc, cur.head)
	}
	return acc
}

// LazyFoldRight reduces back to front. A forward-only suspended
// structure admits no efficient right fold; the non-tail recursion
// here is depth-guarded and fails as unbounded growth on long inputs.
func LazyFoldRight[E, A any](s *Lazy[E], seed A, fn func(E, A) A) A {
	return lazyFoldRight(s, seed, fn, 0)
}

func lazyFoldRight[E, A any](s *Lazy[E], seed A, fn func(E, A) A, depth int) A {
	if s == nil {
		return seed
	}
	if depth >= maxFoldDepth {
		panic(&bench.UnboundedGrowthError{Limit: maxFoldDepth})
	}
	return fn(s.head, lazyFoldRight(s.Tail(), seed, fn, depth+1))
}

// LazyMap applies fn lazily; no element is transformed until the
// result is realized.
func LazyMap[E, R any](s *Lazy[E], fn func(E) R) *Lazy[R] {
	if s == nil {
		return nil
	}
	return LazyCons(fn(s.head), func() *Lazy[R] {
		return LazyMap(s.Tail(), fn)
	})
}

// LazyFilter keeps the elements pred accepts, lazily. Skipping a run
// of rejected elements is iterative so long gaps cannot deepen the
// stack.
func LazyFilter[E any](s *Lazy[E], pred func(E) bool) *Lazy[E] {
	cur := s
	for cur != nil && !pred(cur.head) {
		cur = cur.Tail()
	}
	if cur == nil {
		return nil
	}
	matched := cur
	return LazyCons(matched.head, func() *Lazy[E] {
		return LazyFilter(matched.Tail(), pred)
	})
}
