package bench

// This file contains the subject registry: the set of container
// variants under test and the benchmark each variant enters per
// operation.

import (
	"fmt"

	"github.com/seqbench/seqbench/workload"
)

// Benchmark is one (subject, operation) entry: an optional untimed
// setup stage and the timed operation itself.
type Benchmark struct {
	// Setup builds shared per-tuple state (typically the pre-built
	// container the operation runs over). It runs once per tuple,
	// before warm-up, outside any timed section. May be nil.
	// Operations whose semantics forbid a pre-built target (incremental
	// build, uniqueness accumulation) construct everything inside Func.
	Setup func(w *workload.Workload) any

	// Func executes the measured operation. state is the Setup result,
	// nil when Setup is nil. The returned value is handed to the
	// blackhole, which forces lazily-represented results.
	Func func(w *workload.Workload, state any) any
}

// Subject describes one container variant: its name, the element kind
// it is registered for, and the operations it supports. Variants enter
// only the operations that make sense for their representation; the
// missing ones stay blank in the report.
type Subject struct {
	name string
	kind workload.Kind
	ops  map[Op]Benchmark
}

// NewSubject returns an empty subject for the given element kind.
func NewSubject(name string, kind workload.Kind) *Subject {
	return &Subject{
		name: name,
		kind: kind,
		ops:  make(map[Op]Benchmark),
	}
}

func (s *Subject) Name() string        { return s.name }
func (s *Subject) Kind() workload.Kind { return s.kind }

// Define enters the subject into an operation.
func (s *Subject) Define(op Op, b Benchmark) {
	s.ops[op] = b
}

// Supports reports whether the subject declares the operation.
func (s *Subject) Supports(op Op) bool {
	_, ok := s.ops[op]
	return ok
}

// Benchmark returns the entry for op.
func (s *Subject) Benchmark(op Op) (Benchmark, bool) {
	b, ok := s.ops[op]
	return b, ok
}

// Ops returns the supported operations in report order.
func (s *Subject) Ops() []Op {
	var ops []Op
	for _, op := range AllOps {
		if s.Supports(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

// Registry holds the subjects under test in insertion order. It is
// populated once at startup and read-only afterwards.
type Registry struct {
	subjects []*Subject
	byName   map[string]*Subject
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Subject)}
}

// Register adds a uniquely-named subject.
func (r *Registry) Register(s *Subject) error {
	if _, exists := r.byName[s.Name()]; exists {
		return fmt.Errorf("subject %q already registered", s.Name())
	}
	r.subjects = append(r.subjects, s)
	r.byName[s.Name()] = s
	return nil
}

// Lookup returns the subject with the given name.
func (r *Registry) Lookup(name string) (*Subject, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Subjects returns all subjects in insertion order.
func (r *Registry) Subjects() []*Subject {
	return r.subjects
}

// Supporting returns, in insertion order, the subjects that declare
// support for op.
func (r *Registry) Supporting(op Op) []*Subject {
	var out []*Subject
	for _, s := range r.subjects {
		if s.Supports(op) {
			out = append(out, s)
		}
	}
	return out
}

// Tuple is one scheduled benchmark unit.
type Tuple struct {
	Subject string
	Op      Op
	Size    int
}

func (t Tuple) String() string {
	return fmt.Sprintf("%s/%s/%d", t.Subject, t.Op, t.Size)
}

// ConfigurationError marks an invalid benchmark selection. It is fatal
// at setup time; nothing is measured once one is raised.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Plan expands a selection into the schedule of tuples, validating it
// against the registry. An empty subject set means every registered
// subject; an empty operation set means every operation. Naming a
// subject explicitly for an operation it does not support is a
// ConfigurationError: unsupported pairs fail fast here, never silently
// at measurement time. With a defaulted subject set each operation
// runs against the subjects that declare it, so blank cells fall out
// of the registry.
func (r *Registry) Plan(subjectNames []string, ops []Op, sizes []int) ([]Tuple, error) {
	if len(sizes) == 0 {
		return nil, &ConfigurationError{Reason: "no sizes configured"}
	}
	for _, size := range sizes {
		if size <= 0 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("size must be positive, got %d", size)}
		}
	}
	if len(ops) == 0 {
		ops = AllOps
	}

	explicit := len(subjectNames) > 0
	var selected []*Subject
	if explicit {
		seen := make(map[string]bool, len(subjectNames))
		for _, name := range subjectNames {
			// A repeated name would schedule the same tuples twice and
			// mix both executions into one aggregate series.
			if seen[name] {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("subject %q selected twice", name)}
			}
			seen[name] = true
			s, ok := r.Lookup(name)
			if !ok {
				return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown subject %q", name)}
			}
			selected = append(selected, s)
		}
	} else {
		selected = r.Subjects()
	}
	if len(selected) == 0 {
		return nil, &ConfigurationError{Reason: "no subjects registered"}
	}

	var plan []Tuple
	for _, op := range ops {
		for _, s := range selected {
			if !s.Supports(op) {
				if explicit {
					return nil, &ConfigurationError{
						Reason: fmt.Sprintf("subject %q does not support operation %q", s.Name(), op),
					}
				}
				continue
			}
			for _, size := range sizes {
				plan = append(plan, Tuple{Subject: s.Name(), Op: op, Size: size})
			}
		}
	}
	if len(plan) == 0 {
		return nil, &ConfigurationError{Reason: "selection matches no (subject, operation) pair"}
	}
	return plan, nil
}
