package workload

// Package workload generates deterministic input datasets for benchmark
// iterations. The generator never allocates the container type under
// test, only neutral element slices; construction cost belongs to the
// operation being measured.

import (
	"fmt"
	"math/rand"
)

// Kind identifies the element representation a workload carries.
type Kind uint8

const (
	// KindPrimitive is an unboxed 64-bit integer element.
	KindPrimitive Kind = iota
	// KindBoxedPair is a heap-allocated two-field wrapper element.
	KindBoxedPair
)

const (
	kindPrimitiveName = "primitive-numeric"
	kindBoxedPairName = "boxed-pair"
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return kindPrimitiveName
	case KindBoxedPair:
		return kindBoxedPairName
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind parses the configuration spelling of an element kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case kindPrimitiveName:
		return KindPrimitive, nil
	case kindBoxedPairName:
		return KindBoxedPair, nil
	}
	return 0, fmt.Errorf("unknown element kind %q (want %q or %q)", s, kindPrimitiveName, kindBoxedPairName)
}

// Pair is the boxed element: a pair-like wrapper carried by pointer so
// each element is a distinct heap allocation.
type Pair struct {
	Key   int64
	Value int64
}

// Workload is an ordered sequence of generated elements of a fixed size
// and kind. Exactly one of Ints or Pairs is populated.
type Workload struct {
	Size int
	Kind Kind
	Seed int64

	Ints  []int64
	Pairs []*Pair
}

// Generate produces a workload of size elements. Output is identical
// for identical (size, kind, seed). Values are drawn from [0, size) so
// workloads contain duplicates, which the uniqueness-accumulation
// benchmarks depend on. Boxed pairs are freshly allocated per position;
// equal values never share a pointer.
func Generate(size int, kind Kind, seed int64) (*Workload, error) {
	if size <= 0 {
		return nil, fmt.Errorf("workload size must be positive, got %d", size)
	}

	rng := rand.New(rand.NewSource(seed))
	w := &Workload{Size: size, Kind: kind, Seed: seed}

	switch kind {
	case KindPrimitive:
		w.Ints = make([]int64, size)
		for i := range w.Ints {
			w.Ints[i] = rng.Int63n(int64(size))
		}
	case KindBoxedPair:
		w.Pairs = make([]*Pair, size)
		for i := range w.Pairs {
			w.Pairs[i] = &Pair{
				Key:   rng.Int63n(int64(size)),
				Value: rng.Int63n(int64(size)),
			}
		}
	default:
		return nil, fmt.Errorf("unknown element kind %d", kind)
	}

	return w, nil
}
