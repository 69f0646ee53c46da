package subjects

// Vector is a persistent random-access sequence: a 32-way
// bit-partitioned trie with a tail buffer, the tree/array hybrid
// representation. Appends copy one path; reads descend log32(n)
// levels; dropping the head is a constant-size view adjustment.

const (
	vectorBits  = 5
	vectorWidth = 1 << vectorBits
	vectorMask  = vectorWidth - 1
)

type vnode[E any] struct {
	children [vectorWidth]*vnode[E]
	values   []E
}

type Vector[E any] struct {
	count  int // elements appended, including any dropped prefix
	offset int // elements dropped from the front
	shift  uint
	root   *vnode[E]
	tail   []E
}

// NewVector returns the empty vector.
func NewVector[E any]() *Vector[E] {
	return &Vector[E]{shift: vectorBits, root: &vnode[E]{}}
}

// VectorFrom builds a vector holding elems in order.
func VectorFrom[E any](elems []E) *Vector[E] {
	v := NewVector[E]()
	for _, e := range elems {
		v = v.Append(e)
	}
	return v
}

func (v *Vector[E]) Len() int { return v.count - v.offset }

// tailoff is the internal index the tail buffer starts at.
func (v *Vector[E]) tailoff() int {
	if v.count < vectorWidth {
		return 0
	}
	return ((v.count - 1) >> vectorBits) << vectorBits
}

// arrayFor returns the 32-element chunk holding internal index j.
func (v *Vector[E]) arrayFor(j int) []E {
	if j >= v.tailoff() {
		return v.tail
	}
	node := v.root
	for level := v.shift; level > 0; level -= vectorBits {
		node = node.children[(j>>level)&vectorMask]
	}
	return node.values
}

// Get returns the element at index i (relative to any dropped prefix).
func (v *Vector[E]) Get(i int) E {
	j := i + v.offset
	return v.arrayFor(j)[j&vectorMask]
}

func (v *Vector[E]) Head() (E, bool) {
	if v.Len() == 0 {
		var zero E
		return zero, false
	}
	return v.Get(0), true
}

// Drop1 returns a view of the vector without its first element.
func (v *Vector[E]) Drop1() *Vector[E] {
	if v.Len() == 0 {
		return v
	}
	w := *v
	w.offset++
	return &w
}

// Last returns the final element by repeatedly dropping the head, the
// structural-deconstruction idiom shared across subjects.
func (v *Vector[E]) Last() (E, bool) {
	if v.Len() == 0 {
		var zero E
		return zero, false
	}
	cur := v
	for cur.Len() > 1 {
		cur = cur.Drop1()
	}
	return cur.Get(0), true
}

// Append returns a vector with e added at the back.
func (v *Vector[E]) Append(e E) *Vector[E] {
	n := v.count
	// Room in the tail buffer.
	if n-v.tailoff() < vectorWidth {
		newTail := make([]E, len(v.tail)+1)
		copy(newTail, v.tail)
		newTail[len(v.tail)] = e
		w := *v
		w.count = n + 1
		w.tail = newTail
		return &w
	}

	// Tail is full: push it into the trie.
	tailNode := &vnode[E]{values: v.tail}
	newShift := v.shift
	var newRoot *vnode[E]
	if (n >> vectorBits) > (1 << v.shift) {
		// Root overflow: grow a level.
		newRoot = &vnode[E]{}
		newRoot.children[0] = v.root
		newRoot.children[1] = newPath(v.shift, tailNode)
		newShift += vectorBits
	} else {
		newRoot = v.pushTail(v.shift, v.root, tailNode)
	}
	return &Vector[E]{
		count:  n + 1,
		offset: v.offset,
		shift:  newShift,
		root:   newRoot,
		tail:   []E{e},
	}
}

func (v *Vector[E]) pushTail(level uint, parent *vnode[E], tailNode *vnode[E]) *vnode[E] {
	sub := ((v.count - 1) >> level) & vectorMask
	out := &vnode[E]{children: parent.children}
	if level == vectorBits {
		out.children[sub] = tailNode
		return out
	}
	child := parent.children[sub]
	if child != nil {
		out.children[sub] = v.pushTail(level-vectorBits, child, tailNode)
	} else {
		out.children[sub] = newPath(level-vectorBits, tailNode)
	}
	return out
}

func newPath[E any](level uint, node *vnode[E]) *vnode[E] {
	if level == 0 {
		return node
	}
	out := &vnode[E]{}
	out.children[0] = newPath(level-vectorBits, node)
	return out
}

// ForEach visits elements front to back, chunk by chunk, without a
// per-element trie descent.
func (v *Vector[E]) ForEach(fn func(E)) {
	for i := v.offset; i < v.count; {
		chunkStart := i &^ vectorMask
		arr := v.arrayFor(i)
		end := chunkStart + len(arr)
		if end > v.count {
			end = v.count
		}
		for _, e := range arr[i-chunkStart : end-chunkStart] {
			fn(e)
		}
		i = end
	}
}

// Concat returns a vector holding v's elements followed by other's.
func (v *Vector[E]) Concat(other *Vector[E]) *Vector[E] {
	out := v
	other.ForEach(func(e E) {
		out = out.Append(e)
	})
	return out
}

// VectorFoldLeft reduces front to back.
func VectorFoldLeft[E, A any](v *Vector[E], seed A, fn func(A, E) A) A {
	acc := seed
	v.ForEach(func(e E) {
		acc = fn(acc, e)
	})
	return acc
}

// VectorFoldRight reduces back to front by indexed access; random
// access makes the right fold iterative here, unlike the linked
// representations.
func VectorFoldRight[E, A any](v *Vector[E], seed A, fn func(E, A) A) A {
	acc := seed
	for i := v.Len() - 1; i >= 0; i-- {
		acc = fn(v.Get(i), acc)
	}
	return acc
}

// VectorMap builds a new vector by applying fn to every element.
func VectorMap[E, R any](v *Vector[E], fn func(E) R) *Vector[R] {
	out := NewVector[R]()
	v.ForEach(func(e E) {
		out = out.Append(fn(e))
	})
	return out
}

// VectorFilter builds a new vector keeping the elements pred accepts.
func VectorFilter[E any](v *Vector[E], pred func(E) bool) *Vector[E] {
	out := NewVector[E]()
	v.ForEach(func(e E) {
		if pred(e) {
			out = out.Append(e)
		}
	})
	return out
}
