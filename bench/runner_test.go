package bench

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/seqbench/seqbench/workload"
)

type forceProbe struct {
	forced bool
}

func (f *forceProbe) Force() { f.forced = true }

func TestBlackhole_ConsumeForcesLazyResults(t *testing.T) {
	var hole Blackhole
	probe := &forceProbe{}
	hole.Consume(probe)
	require.True(t, probe.forced)
}

func TestBlackhole_Calibrate(t *testing.T) {
	var hole Blackhole
	require.GreaterOrEqual(t, hole.Calibrate(1024), time.Duration(0))
	require.Equal(t, time.Duration(0), hole.Calibrate(0))
}

func testRunner(t *testing.T, reg *Registry, opts Options) *Runner {
	t.Helper()
	if opts.WarmupIterations == 0 {
		opts.WarmupIterations = 2
	}
	if opts.MeasuredIterations == 0 {
		opts.MeasuredIterations = 5
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	return NewRunner(zerolog.Nop(), reg, NewAggregator(), opts)
}

// sleepBenchmark gives the clock something comfortably above its
// resolution to measure.
func sleepBenchmark() Benchmark {
	return Benchmark{
		Func: func(w *workload.Workload, _ any) any {
			time.Sleep(100 * time.Microsecond)
			return w.Size
		},
	}
}

func TestRunner_RunTuple(t *testing.T) {
	reg := NewRegistry()
	subject := NewSubject("sleepy", workload.KindPrimitive)
	subject.Define(OpFoldLeft, sleepBenchmark())
	require.NoError(t, reg.Register(subject))

	r := testRunner(t, reg, Options{})
	out := r.RunTuple(Tuple{Subject: "sleepy", Op: OpFoldLeft, Size: 10})

	require.False(t, out.Failed())
	require.NotNil(t, out.Aggregate)
	require.EqualValues(t, 5, out.Aggregate.Count)
	require.Greater(t, out.Aggregate.Mean, 50*time.Microsecond)
}

func TestRunner_SetupStateReachesFunc(t *testing.T) {
	reg := NewRegistry()
	subject := NewSubject("stateful", workload.KindPrimitive)
	setups := 0
	subject.Define(OpHead, Benchmark{
		Setup: func(w *workload.Workload) any {
			setups++
			return w.Ints
		},
		Func: func(_ *workload.Workload, state any) any {
			time.Sleep(50 * time.Microsecond)
			return state.([]int64)[0]
		},
	})
	require.NoError(t, reg.Register(subject))

	r := testRunner(t, reg, Options{})
	out := r.RunTuple(Tuple{Subject: "stateful", Op: OpHead, Size: 10})

	require.False(t, out.Failed())
	// Setup runs once per tuple, shared across warm-up and measuring.
	require.Equal(t, 1, setups)
}

func TestRunner_ClassifiesUnboundedGrowth(t *testing.T) {
	reg := NewRegistry()
	subject := NewSubject("deep", workload.KindPrimitive)
	subject.Define(OpFoldRight, Benchmark{
		Func: func(*workload.Workload, any) any {
			panic(&UnboundedGrowthError{Limit: 4})
		},
	})
	require.NoError(t, reg.Register(subject))

	r := testRunner(t, reg, Options{})
	out := r.RunTuple(Tuple{Subject: "deep", Op: OpFoldRight, Size: 10})

	require.True(t, out.Failed())
	require.Equal(t, FailureUnboundedGrowth, out.Failure.Class)
	require.Nil(t, out.Aggregate)
}

func TestRunner_ClassifiesPanic(t *testing.T) {
	reg := NewRegistry()
	subject := NewSubject("broken", workload.KindPrimitive)
	subject.Define(OpMap, Benchmark{
		Func: func(*workload.Workload, any) any {
			panic("operation exploded")
		},
	})
	require.NoError(t, reg.Register(subject))

	r := testRunner(t, reg, Options{})
	out := r.RunTuple(Tuple{Subject: "broken", Op: OpMap, Size: 10})

	require.True(t, out.Failed())
	require.Equal(t, FailurePanic, out.Failure.Class)
	require.ErrorContains(t, out.Failure.Err, "operation exploded")
}

func TestRunner_FailureIsolation(t *testing.T) {
	reg := NewRegistry()
	broken := NewSubject("broken", workload.KindPrimitive)
	broken.Define(OpFoldLeft, Benchmark{
		Func: func(*workload.Workload, any) any { panic("boom") },
	})
	healthy := NewSubject("healthy", workload.KindPrimitive)
	healthy.Define(OpFoldLeft, sleepBenchmark())
	require.NoError(t, reg.Register(broken))
	require.NoError(t, reg.Register(healthy))

	r := testRunner(t, reg, Options{})
	plan, err := reg.Plan(nil, []Op{OpFoldLeft}, []int{10})
	require.NoError(t, err)

	outcomes := r.RunAll(plan)
	require.Len(t, outcomes, 2)
	require.True(t, outcomes[0].Failed())
	require.False(t, outcomes[1].Failed())
}

func TestRunner_DeadlineSkipsUnstartedTuples(t *testing.T) {
	reg := NewRegistry()
	subject := NewSubject("sleepy", workload.KindPrimitive)
	subject.Define(OpFoldLeft, sleepBenchmark())
	require.NoError(t, reg.Register(subject))

	r := testRunner(t, reg, Options{Deadline: time.Now().Add(-time.Second)})
	outcomes := r.RunAll([]Tuple{{Subject: "sleepy", Op: OpFoldLeft, Size: 10}})

	require.Len(t, outcomes, 1)
	require.True(t, outcomes[0].Failed())
	require.Equal(t, FailureDeadline, outcomes[0].Failure.Class)
}
