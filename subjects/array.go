package subjects

// Array is the contiguous mutable representation: a growable slice.
// Benchmarks construct a fresh instance per measured call, so no
// mutation leaks across iterations.
type Array[E any] struct {
	elems []E
}

// ArrayFrom copies elems into a freshly allocated array.
func ArrayFrom[E any](elems []E) *Array[E] {
	out := make([]E, len(elems))
	copy(out, elems)
	return &Array[E]{elems: out}
}

// ArrayAppend grows a fresh array one element at a time, the
// incremental-build idiom for the contiguous representation.
func ArrayAppend[E any](elems []E) *Array[E] {
	var out []E
	for _, e := range elems {
		out = append(out, e)
	}
	return &Array[E]{elems: out}
}

func (a *Array[E]) Len() int { return len(a.elems) }

func (a *Array[E]) Head() (E, bool) {
	if len(a.elems) == 0 {
		var zero E
		return zero, false
	}
	return a.elems[0], true
}

// Last deconstructs by repeatedly reslicing off the head.
func (a *Array[E]) Last() (E, bool) {
	if len(a.elems) == 0 {
		var zero E
		return zero, false
	}
	rest := a.elems
	for len(rest) > 1 {
		rest = rest[1:]
	}
	return rest[0], true
}

// Concat copies both inputs into a new array.
func (a *Array[E]) Concat(other *Array[E]) *Array[E] {
	out := make([]E, 0, len(a.elems)+len(other.elems))
	out = append(out, a.elems...)
	out = append(out, other.elems...)
	return &Array[E]{elems: out}
}

// ArrayFoldLeft reduces front to back.
func ArrayFoldLeft[E, A any](a *Array[E], seed A, fn func(A, E) A) A {
	acc := seed
	for _, e := range a.elems {
		acc = fn(acc, e)
	}
	return acc
}

// ArrayFoldRight reduces back to front by index.
func ArrayFoldRight[E, A any](a *Array[E], seed A, fn func(E, A) A) A {
	acc := seed
	for i := len(a.elems) - 1; i >= 0; i-- {
		acc = fn(a.elems[i], acc)
	}
	return acc
}

// ArrayMap builds a new array by applying fn to every element.
func ArrayMap[E, R any](a *Array[E], fn func(E) R) *Array[R] {
	out := make([]R, len(a.elems))
	for i, e := range a.elems {
		out[i] = fn(e)
	}
	return &Array[R]{elems: out}
}

// ArrayFilter builds a new array keeping the elements pred accepts.
func ArrayFilter[E any](a *Array[E], pred func(E) bool) *Array[E] {
	var out []E
	for _, e := range a.elems {
		if pred(e) {
			out = append(out, e)
		}
	}
	return &Array[E]{elems: out}
}
