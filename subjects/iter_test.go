package subjects

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func iterToSlice[E any](it *Iter[E]) []E {
	var out []E
	for {
		e, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func TestIter_SinglePass(t *testing.T) {
	it := IterFrom([]int64{1, 2, 3})
	require.Equal(t, []int64{1, 2, 3}, iterToSlice(it))

	// Consumed: another pull yields nothing.
	_, ok := it.Next()
	require.False(t, ok)
}

func TestIter_Last(t *testing.T) {
	last, ok := IterFrom(int64s(100)).Last()
	require.True(t, ok)
	require.EqualValues(t, 99, last)

	_, ok = IterFrom([]int64{}).Last()
	require.False(t, ok)
}

func TestIter_Concat(t *testing.T) {
	a := IterFrom([]int64{1, 2})
	b := IterFrom([]int64{3, 4})
	require.Equal(t, []int64{1, 2, 3, 4}, iterToSlice(a.Concat(b)))

	empty := IterFrom([]int64{})
	require.Equal(t, []int64{5}, iterToSlice(empty.Concat(IterFrom([]int64{5}))))
}

func TestIter_FoldLeft(t *testing.T) {
	sum := IterFoldLeft(IterFrom(int64s(100)), int64(0), func(acc, e int64) int64 {
		return acc + e
	})
	require.EqualValues(t, 4950, sum)
}

func TestIter_MapIsPull(t *testing.T) {
	applied := 0
	it := IterMap(IterFrom([]int64{1, 2, 3}), func(e int64) int64 {
		applied++
		return e * 2
	})

	// Nothing computed until pulled.
	require.Equal(t, 0, applied)

	e, ok := it.Next()
	require.True(t, ok)
	require.EqualValues(t, 2, e)
	require.Equal(t, 1, applied)

	require.Equal(t, []int64{4, 6}, iterToSlice(it))
	require.Equal(t, 3, applied)
}

func TestIter_Filter(t *testing.T) {
	it := IterFilter(IterFrom(int64s(10)), func(e int64) bool { return e%2 == 0 })
	require.Equal(t, []int64{0, 2, 4, 6, 8}, iterToSlice(it))
}

func TestIter_Force(t *testing.T) {
	pulled := 0
	it := IterMap(IterFrom(int64s(50)), func(e int64) int64 {
		pulled++
		return e
	})
	it.Force()
	require.Equal(t, 50, pulled)
}
