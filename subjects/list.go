package subjects

// Package subjects holds the container variants entered into the
// benchmark registry. Each type implements the subset of the
// capability surface that makes sense for its representation; the fold
// family lives in free generic functions because Go methods cannot
// take type parameters.

import (
	"github.com/seqbench/seqbench/bench"
)

// maxFoldDepth bounds non-tail recursion in the right folds. Exceeding
// it panics with bench.UnboundedGrowthError, which the runner records
// as a failure outcome.
const maxFoldDepth = 1 << 16

// List is a persistent singly-linked list. The nil *List is the empty
// list; Cons shares the tail structurally.
type List[E any] struct {
	head E
	tail *List[E]
}

// ListFrom builds a list holding elems in order.
func ListFrom[E any](elems []E) *List[E] {
	var l *List[E]
	for i := len(elems) - 1; i >= 0; i-- {
		l = l.Cons(elems[i])
	}
	return l
}

// Cons prepends e, sharing the receiver as tail.
func (l *List[E]) Cons(e E) *List[E] {
	return &List[E]{head: e, tail: l}
}

func (l *List[E]) Head() (E, bool) {
	if l == nil {
		var zero E
		return zero, false
	}
	return l.head, true
}

func (l *List[E]) Tail() *List[E] {
	if l == nil {
		return nil
	}
	return l.tail
}

func (l *List[E]) Len() int {
	n := 0
	for cur := l; cur != nil; cur = cur.tail {
		n++
	}
	return n
}

// Last walks the tails to the final element: the structural
// deconstruction idiom for a forward-linked representation.
func (l *List[E]) Last() (E, bool) {
	if l == nil {
		var zero E
		return zero, false
	}
	cur := l
	for cur.tail != nil {
		cur = cur.tail
	}
	return cur.head, true
}

// Reverse returns the list with element order flipped.
func (l *List[E]) Reverse() *List[E] {
	var out *List[E]
	for cur := l; cur != nil; cur = cur.tail {
		out = out.Cons(cur.head)
	}
	return out
}

// Concat returns a list holding l's elements followed by other's. The
// prefix is rebuilt; other is shared.
func (l *List[E]) Concat(other *List[E]) *List[E] {
	out := other
	for cur := l.Reverse(); cur != nil; cur = cur.tail {
		out = out.Cons(cur.head)
	}
	return out
}

// ListFoldLeft reduces front to back in constant stack space.
func ListFoldLeft[E, A any](l *List[E], seed A, fn func(A, E) A) A {
	acc := seed
	for cur := l; cur != nil; cur = cur.tail {
		acc = fn(acc, cur.head)
	}
	return acc
}

// ListFoldRight reduces back to front by non-tail recursion, the shape
// the right fold has on a forward-linked structure. Depth-guarded.
func ListFoldRight[E, A any](l *List[E], seed A, fn func(E, A) A) A {
	return listFoldRight(l, seed, fn, 0)
}

func listFoldRight[E, A any](l *List[E], seed A, fn func(E, A) A, depth int) A {
	if l == nil {
		return seed
	}
	if depth >= maxFoldDepth {
		panic(&bench.UnboundedGrowthError{Limit: maxFoldDepth})
	}
	return fn(l.head, listFoldRight(l.tail, seed, fn, depth+1))
}

// ListMap builds a new list by applying fn to every element.
func ListMap[E, R any](l *List[E], fn func(E) R) *List[R] {
	var reversed *List[R]
	for cur := l; cur != nil; cur = cur.tail {
		reversed = reversed.Cons(fn(cur.head))
	}
	return reversed.Reverse()
}

// ListFilter builds a new list keeping the elements pred accepts.
func ListFilter[E any](l *List[E], pred func(E) bool) *List[E] {
	var reversed *List[E]
	for cur := l; cur != nil; cur = cur.tail {
		if pred(cur.head) {
			reversed = reversed.Cons(cur.head)
		}
	}
	return reversed.Reverse()
}
