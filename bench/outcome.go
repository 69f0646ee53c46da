package bench

import "fmt"

// FailureClass categorizes why a tuple produced no aggregate.
type FailureClass string

const (
	// FailureUnboundedGrowth marks an operation whose implementation
	// strategy cannot complete within available resources, e.g. deep
	// non-tail recursion over a long lazy sequence.
	FailureUnboundedGrowth FailureClass = "unbounded-growth"
	// FailureNoValidSamples marks a tuple whose every measured
	// iteration was discarded as anomalous.
	FailureNoValidSamples FailureClass = "no-valid-samples"
	// FailurePanic marks an unclassified panic inside the operation.
	FailurePanic FailureClass = "panic"
	// FailureDeadline marks a tuple that was never started because the
	// whole-report deadline passed first.
	FailureDeadline FailureClass = "deadline-exceeded"
)

// Failure is a recorded per-tuple failure, distinct from a timing
// result.
type Failure struct {
	Class FailureClass
	Err   error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Class, f.Err)
	}
	return string(f.Class)
}

// Outcome is the terminal marker for one benchmark tuple: an aggregate
// timing or a classified failure, never both.
type Outcome struct {
	Tuple     Tuple
	Aggregate *Aggregate
	Failure   *Failure
}

// Failed reports whether the tuple ended in a failure rather than an
// aggregate.
func (o Outcome) Failed() bool { return o.Failure != nil }

// UnboundedGrowthError is the panic value raised by depth-guarded
// recursive operations when they exceed the recursion limit. A true
// goroutine stack overflow is a fatal runtime error that cannot be
// recovered, so recursive subject operations guard their depth and
// panic with this instead; the runner recovers it and records the
// tuple as an unbounded-growth failure.
type UnboundedGrowthError struct {
	Limit int
}

func (e *UnboundedGrowthError) Error() string {
	return fmt.Sprintf("recursion exceeded depth limit %d", e.Limit)
}
