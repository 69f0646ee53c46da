package subjects

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seqbench/seqbench/bench"
	"github.com/seqbench/seqbench/workload"
)

func registryFor(t *testing.T, kind workload.Kind) *bench.Registry {
	t.Helper()
	reg := bench.NewRegistry()
	require.NoError(t, RegisterAll(reg, kind))
	return reg
}

func TestRegisterAll_SubjectOrder(t *testing.T) {
	for _, kind := range []workload.Kind{workload.KindPrimitive, workload.KindBoxedPair} {
		reg := registryFor(t, kind)
		var names []string
		for _, s := range reg.Subjects() {
			names = append(names, s.Name())
			require.Equal(t, kind, s.Kind())
		}
		require.Equal(t, []string{
			NameLinkedList,
			NameTrieVector,
			NameContiguousArray,
			NameLazySeq,
			NameIterator,
			NameHashSet,
		}, names)
	}
}

func TestRegisterAll_CapabilityMatrix(t *testing.T) {
	reg := registryFor(t, workload.KindPrimitive)

	supports := func(name string, op bench.Op) bool {
		s, ok := reg.Lookup(name)
		require.True(t, ok)
		return s.Supports(op)
	}

	tests := []struct {
		subject string
		op      bench.Op
		want    bool
	}{
		{NameLinkedList, bench.OpFoldRight, true},
		{NameLinkedList, bench.OpInsertUnique, false},
		{NameTrieVector, bench.OpBuildIncrementally, true},
		{NameTrieVector, bench.OpInsertUnique, false},
		{NameContiguousArray, bench.OpTailRecursiveLast, true},
		// A suspended sequence has no incremental-build idiom.
		{NameLazySeq, bench.OpBuildIncrementally, false},
		{NameLazySeq, bench.OpFoldRight, true},
		// Single-pass: no right fold or incremental build, but it does
		// deconstruct to the last element by draining.
		{NameIterator, bench.OpFoldRight, false},
		{NameIterator, bench.OpBuildIncrementally, false},
		{NameIterator, bench.OpHead, true},
		{NameIterator, bench.OpTailRecursiveLast, true},
		// Unordered: no positional operations.
		{NameHashSet, bench.OpInsertUnique, true},
		{NameHashSet, bench.OpHead, false},
		{NameHashSet, bench.OpFoldRight, false},
		{NameHashSet, bench.OpTailRecursiveLast, false},
		{NameHashSet, bench.OpConcat, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, supports(tt.subject, tt.op), "%s/%s", tt.subject, tt.op)
	}
}

func TestRegisterAll_RejectsUnknownKind(t *testing.T) {
	err := RegisterAll(bench.NewRegistry(), workload.Kind(99))
	require.Error(t, err)
}

func TestRegisteredBenchmarks_AgreeOnFoldLeft(t *testing.T) {
	reg := registryFor(t, workload.KindPrimitive)
	w, err := workload.Generate(500, workload.KindPrimitive, 42)
	require.NoError(t, err)

	var want int64
	for _, v := range w.Ints {
		want += v
	}

	// Every subject's left fold reduces the same workload to the same sum.
	for _, s := range reg.Supporting(bench.OpFoldLeft) {
		b, ok := s.Benchmark(bench.OpFoldLeft)
		require.True(t, ok)

		var state any
		if b.Setup != nil {
			state = b.Setup(w)
		}
		got := b.Func(w, state)
		if s.Name() == NameHashSet {
			// The set deduplicates, so its sum differs; it still runs.
			require.IsType(t, int64(0), got)
			continue
		}
		require.EqualValues(t, want, got, s.Name())
	}
}

func TestRegisteredBenchmarks_InsertUniqueCountsDistinct(t *testing.T) {
	reg := registryFor(t, workload.KindBoxedPair)
	w, err := workload.Generate(1000, workload.KindBoxedPair, 42)
	require.NoError(t, err)

	distinct := make(map[workload.Pair]struct{})
	for _, p := range w.Pairs {
		distinct[*p] = struct{}{}
	}

	s, ok := reg.Lookup(NameHashSet)
	require.True(t, ok)
	b, ok := s.Benchmark(bench.OpInsertUnique)
	require.True(t, ok)

	require.Equal(t, len(distinct), b.Func(w, nil))
}
