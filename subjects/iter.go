package subjects

// Iter is a single-pass pull iterator. It is consumed by use, so
// benchmarks construct a fresh one inside the measured operation; the
// wrap itself is constant-time.
type Iter[E any] struct {
	next func() (E, bool)
}

// IterFrom returns an iterator over elems.
func IterFrom[E any](elems []E) *Iter[E] {
	i := 0
	return &Iter[E]{next: func() (E, bool) {
		if i >= len(elems) {
			var zero E
			return zero, false
		}
		e := elems[i]
		i++
		return e, true
	}}
}

// Next pulls the next element.
func (it *Iter[E]) Next() (E, bool) {
	return it.next()
}

// Force drains the iterator. The blackhole calls this so that wrapped
// transforms cannot stay unevaluated.
func (it *Iter[E]) Force() {
	for {
		if _, ok := it.next(); !ok {
			return
		}
	}
}

// Last drains the iterator and returns the final element.
func (it *Iter[E]) Last() (E, bool) {
	var last E
	seen := false
	for {
		e, ok := it.next()
		if !ok {
			return last, seen
		}
		last = e
		seen = true
	}
}

// Concat chains other after it.
func (it *Iter[E]) Concat(other *Iter[E]) *Iter[E] {
	first := true
	return &Iter[E]{next: func() (E, bool) {
		if first {
			if e, ok := it.next(); ok {
				return e, true
			}
			first = false
		}
		return other.next()
	}}
}

// IterFoldLeft consumes the iterator front to back.
func IterFoldLeft[E, A any](it *Iter[E], seed A, fn func(A, E) A) A {
	acc := seed
	for {
		e, ok := it.next()
		if !ok {
			return acc
		}
		acc = fn(acc, e)
	}
}

// IterMap wraps it with a transforming pull; nothing is computed until
// the result is drained.
func IterMap[E, R any](it *Iter[E], fn func(E) R) *Iter[R] {
	return &Iter[R]{next: func() (R, bool) {
		e, ok := it.next()
		if !ok {
			var zero R
			return zero, false
		}
		return fn(e), true
	}}
}

// IterFilter wraps it with a filtering pull.
func IterFilter[E any](it *Iter[E], pred func(E) bool) *Iter[E] {
	return &Iter[E]{next: func() (E, bool) {
		for {
			e, ok := it.next()
			if !ok {
				var zero E
				return zero, false
			}
			if pred(e) {
				return e, true
			}
		}
	}}
}
