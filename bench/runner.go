package bench

// This file contains the measurement scheduler: the per-tuple state
// machine that takes a benchmark from Cold through WarmingUp and
// Measuring to a terminal Outcome.

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/seqbench/seqbench/workload"
)

// calibrationIterations sizes the blackhole overhead measurement taken
// once per runner.
const calibrationIterations = 1 << 16

// Options configure a Runner.
type Options struct {
	// WarmupIterations executes before any timing is recorded, enough
	// to reach steady-state dispatch and inlining behavior.
	WarmupIterations int
	// MeasuredIterations is the number of recorded samples per tuple.
	MeasuredIterations int
	// Seed feeds the workload generator so runs are comparable.
	Seed int64
	// GCBetweenIterations forces a collection before every measured
	// iteration. Applied uniformly to every subject so the pause cost
	// does not bias the comparison.
	GCBetweenIterations bool
	// Deadline, if non-zero, stops tuples that have not started yet.
	// A tuple that has begun measuring always runs to completion.
	Deadline time.Time
}

// Runner executes benchmark tuples strictly sequentially: one tuple at
// a time, start to finish, with no overlap. Concurrent execution would
// introduce cache and scheduler contention that invalidates the
// comparison.
type Runner struct {
	logger   zerolog.Logger
	registry *Registry
	agg      *Aggregator
	hole     *Blackhole
	opts     Options

	// overhead is the calibrated per-sample blackhole cost, subtracted
	// from every sample.
	overhead time.Duration
	// clockRes is the smallest resolvable elapsed delta; raw samples
	// below it are anomalies.
	clockRes time.Duration
}

// NewRunner calibrates the blackhole and clock and returns a runner.
func NewRunner(logger zerolog.Logger, registry *Registry, agg *Aggregator, opts Options) *Runner {
	hole := &Blackhole{}
	r := &Runner{
		logger:   logger,
		registry: registry,
		agg:      agg,
		hole:     hole,
		opts:     opts,
		overhead: hole.Calibrate(calibrationIterations),
		clockRes: clockResolution(),
	}
	logger.Debug().
		Dur("blackhole_overhead", r.overhead).
		Dur("clock_resolution", r.clockRes).
		Msg("Runner calibrated")
	return r
}

// Aggregator returns the aggregator measurements are recorded into.
func (r *Runner) Aggregator() *Aggregator { return r.agg }

// RunAll executes every tuple in plan order and returns one outcome
// per tuple. Per-tuple failures are isolated: they are recorded and
// the remaining tuples still run.
func (r *Runner) RunAll(plan []Tuple) []Outcome {
	outcomes := make([]Outcome, 0, len(plan))
	for _, t := range plan {
		if !r.opts.Deadline.IsZero() && time.Now().After(r.opts.Deadline) {
			r.logger.Warn().Stringer("tuple", t).Msg("Report deadline passed, tuple not scheduled")
			outcomes = append(outcomes, Outcome{
				Tuple:   t,
				Failure: &Failure{Class: FailureDeadline},
			})
			continue
		}
		outcomes = append(outcomes, r.RunTuple(t))
	}
	return outcomes
}

// RunTuple drives one tuple through the full state machine. Transitions
// are triggered by iteration counts only; once started, a tuple runs
// to completion or to a recorded failure.
func (r *Runner) RunTuple(t Tuple) Outcome {
	fail := func(f *Failure) Outcome {
		r.logger.Warn().Stringer("tuple", t).Str("class", string(f.Class)).Err(f.Err).Msg("Tuple failed")
		return Outcome{Tuple: t, Failure: f}
	}

	// Cold: resolve the benchmark, generate the workload, build shared
	// state. The workload is owned by this tuple and discarded after.
	subject, ok := r.registry.Lookup(t.Subject)
	if !ok {
		return fail(&Failure{Class: FailurePanic, Err: fmt.Errorf("subject %q not registered", t.Subject)})
	}
	b, ok := subject.Benchmark(t.Op)
	if !ok {
		return fail(&Failure{Class: FailurePanic, Err: fmt.Errorf("subject %q does not support %q", t.Subject, t.Op)})
	}

	w, err := workload.Generate(t.Size, subject.Kind(), r.opts.Seed)
	if err != nil {
		return fail(&Failure{Class: FailurePanic, Err: err})
	}

	r.logger.Debug().Stringer("tuple", t).Str("phase", PhaseCold.String()).Msg("Tuple starting")

	var state any
	if b.Setup != nil {
		state, err = r.setup(b, w)
		if err != nil {
			return fail(classify(err))
		}
	}

	// WarmingUp: run the operation, discard all timings.
	r.logger.Debug().Stringer("tuple", t).Str("phase", PhaseWarmingUp.String()).Msg("Warming up")
	for i := 0; i < r.opts.WarmupIterations; i++ {
		if _, err := r.iterate(b, w, state); err != nil {
			return fail(classify(err))
		}
	}

	// Full collection between phases, applied identically to every
	// subject, so warm-up garbage does not leak into measured samples.
	runtime.GC()

	// Measuring: record one sample per iteration. Implausible deltas
	// are discarded with a warning, never averaged in.
	r.logger.Debug().Stringer("tuple", t).Str("phase", PhaseMeasuring.String()).Msg("Measuring")
	anomalies := 0
	for i := 0; i < r.opts.MeasuredIterations; i++ {
		if r.opts.GCBetweenIterations {
			runtime.GC()
		}
		elapsed, err := r.iterate(b, w, state)
		if err != nil {
			return fail(classify(err))
		}
		if elapsed < r.clockRes {
			anomalies++
			r.logger.Warn().
				Stringer("tuple", t).
				Int("iteration", i).
				Dur("elapsed", elapsed).
				Dur("clock_resolution", r.clockRes).
				Msg("Discarding anomalous sample")
			continue
		}
		corrected := elapsed - r.overhead
		if corrected < time.Nanosecond {
			corrected = time.Nanosecond
		}
		r.agg.Record(Measurement{
			Tuple:     t,
			Iteration: i,
			Phase:     PhaseMeasuring,
			Elapsed:   corrected,
		})
	}

	if r.agg.Count(t) == 0 {
		return fail(&Failure{
			Class: FailureNoValidSamples,
			Err:   fmt.Errorf("all %d iterations discarded", r.opts.MeasuredIterations),
		})
	}
	if anomalies > 0 {
		r.logger.Warn().Stringer("tuple", t).Int("discarded", anomalies).Msg("Tuple had anomalous samples")
	}

	agg, err := r.agg.Summarize(t)
	if err != nil {
		return fail(&Failure{Class: FailureNoValidSamples, Err: err})
	}

	r.logger.Debug().
		Stringer("tuple", t).
		Str("phase", PhaseDone.String()).
		Dur("mean", agg.Mean).
		Dur("stderr", agg.StdErr).
		Msg("Tuple done")
	return Outcome{Tuple: t, Aggregate: agg}
}

// setup runs the untimed setup stage with panic isolation.
func (r *Runner) setup(b Benchmark, w *workload.Workload) (state any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = recoveredError(p)
		}
	}()
	return b.Setup(w), nil
}

// iterate executes one operation call under the clock, feeding the
// result through the blackhole inside the timed region so the sink
// cannot be reordered out of it. Panics are converted to errors.
func (r *Runner) iterate(b Benchmark, w *workload.Workload, state any) (elapsed time.Duration, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = recoveredError(p)
		}
	}()
	start := time.Now()
	v := b.Func(w, state)
	r.hole.Consume(v)
	return time.Since(start), nil
}

func recoveredError(p any) error {
	if e, ok := p.(error); ok {
		return e
	}
	return fmt.Errorf("panic: %v", p)
}

// classify maps an iteration error onto the failure taxonomy.
func classify(err error) *Failure {
	var growth *UnboundedGrowthError
	if errors.As(err, &growth) {
		return &Failure{Class: FailureUnboundedGrowth, Err: err}
	}
	return &Failure{Class: FailurePanic, Err: err}
}
