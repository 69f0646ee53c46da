package subjects

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seqbench/seqbench/bench"
)

func int64s(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

func listToSlice[E any](l *List[E]) []E {
	var out []E
	for cur := l; cur != nil; cur = cur.Tail() {
		e, _ := cur.Head()
		out = append(out, e)
	}
	return out
}

func TestList_Basics(t *testing.T) {
	var empty *List[int64]
	_, ok := empty.Head()
	require.False(t, ok)
	_, ok = empty.Last()
	require.False(t, ok)
	require.Equal(t, 0, empty.Len())

	l := ListFrom([]int64{1, 2, 3})
	require.Equal(t, 3, l.Len())
	require.Equal(t, []int64{1, 2, 3}, listToSlice(l))

	head, ok := l.Head()
	require.True(t, ok)
	require.EqualValues(t, 1, head)

	last, ok := l.Last()
	require.True(t, ok)
	require.EqualValues(t, 3, last)

	require.Equal(t, []int64{3, 2, 1}, listToSlice(l.Reverse()))
}

func TestList_ConsSharesTail(t *testing.T) {
	base := ListFrom([]int64{2, 3})
	extended := base.Cons(1)
	require.Same(t, base, extended.Tail())
	// The original is untouched.
	require.Equal(t, []int64{2, 3}, listToSlice(base))
}

func TestList_Concat(t *testing.T) {
	a := ListFrom([]int64{1, 2})
	b := ListFrom([]int64{3, 4})
	require.Equal(t, []int64{1, 2, 3, 4}, listToSlice(a.Concat(b)))
	// The suffix is shared, not rebuilt.
	require.Same(t, b, a.Concat(b).Tail().Tail())
}

func TestList_Folds(t *testing.T) {
	l := ListFrom([]int64{1, 2, 3, 4})

	sum := ListFoldLeft(l, int64(0), func(acc, e int64) int64 { return acc + e })
	require.EqualValues(t, 10, sum)

	// Order-sensitive fold distinguishes left from right.
	left := ListFoldLeft(l, "", func(acc string, e int64) string {
		return acc + string(rune('0'+e))
	})
	require.Equal(t, "1234", left)

	right := ListFoldRight(l, "", func(e int64, acc string) string {
		return string(rune('0'+e)) + acc
	})
	require.Equal(t, "1234", right)
}

func TestList_FoldRightDepthGuard(t *testing.T) {
	l := ListFrom(int64s(maxFoldDepth + 1))
	defer func() {
		p := recover()
		require.NotNil(t, p)
		growth, ok := p.(*bench.UnboundedGrowthError)
		require.True(t, ok)
		require.Equal(t, maxFoldDepth, growth.Limit)
	}()
	ListFoldRight(l, int64(0), func(e, acc int64) int64 { return e + acc })
	t.Fatal("expected depth guard to fire")
}

func TestList_MapFilter(t *testing.T) {
	l := ListFrom([]int64{1, 2, 3, 4})

	doubled := ListMap(l, func(e int64) int64 { return e * 2 })
	require.Equal(t, []int64{2, 4, 6, 8}, listToSlice(doubled))

	even := ListFilter(l, func(e int64) bool { return e%2 == 0 })
	require.Equal(t, []int64{2, 4}, listToSlice(even))

	none := ListFilter(l, func(int64) bool { return false })
	require.Equal(t, 0, none.Len())
}
