package report

// Package report renders aggregated benchmark outcomes: one table per
// operation with a column per subject and a row per input size, plus a
// machine-parseable record stream.

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/seqbench/seqbench/bench"
)

// unitSwitchCeiling selects the table unit: a table whose slowest mean
// stays under this renders in nanoseconds, matching the convention of
// switching units for very fast comparisons.
const unitSwitchCeiling = 10 * time.Microsecond

// Failure markers as rendered in table cells. Failures are never shown
// as a numeric zero, so a failed operation cannot read as an
// instantaneous one.
var failureMarkers = map[bench.FailureClass]string{
	bench.FailureUnboundedGrowth: "overflow!",
	bench.FailureNoValidSamples:  "no-samples!",
	bench.FailurePanic:           "panic!",
	bench.FailureDeadline:        "skipped!",
}

// Record is one machine-readable result row.
type Record struct {
	Benchmark string  `json:"benchmark"`
	Subject   string  `json:"subject"`
	Size      int     `json:"size"`
	Mean      float64 `json:"mean,omitempty"`
	StdErr    float64 `json:"stderr,omitempty"`
	P99       float64 `json:"p99,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Outcome   string  `json:"outcome"`
}

// Report assembles the outcomes of one run.
type Report struct {
	outcomes []bench.Outcome
}

func New(outcomes []bench.Outcome) *Report {
	return &Report{outcomes: outcomes}
}

// ops returns the operations present, in canonical order.
func (r *Report) ops() []bench.Op {
	present := make(map[bench.Op]bool)
	for _, o := range r.outcomes {
		present[o.Tuple.Op] = true
	}
	var ops []bench.Op
	for _, op := range bench.AllOps {
		if present[op] {
			ops = append(ops, op)
		}
	}
	return ops
}

// subjectsFor returns the subjects with outcomes for op, in first-seen
// (registration) order.
func (r *Report) subjectsFor(op bench.Op) []string {
	var subjects []string
	seen := make(map[string]bool)
	for _, o := range r.outcomes {
		if o.Tuple.Op != op || seen[o.Tuple.Subject] {
			continue
		}
		seen[o.Tuple.Subject] = true
		subjects = append(subjects, o.Tuple.Subject)
	}
	return subjects
}

func (r *Report) sizesFor(op bench.Op) []int {
	seen := make(map[int]bool)
	var sizes []int
	for _, o := range r.outcomes {
		if o.Tuple.Op != op || seen[o.Tuple.Size] {
			continue
		}
		seen[o.Tuple.Size] = true
		sizes = append(sizes, o.Tuple.Size)
	}
	sort.Ints(sizes)
	return sizes
}

func (r *Report) lookup(t bench.Tuple) (bench.Outcome, bool) {
	for _, o := range r.outcomes {
		if o.Tuple == t {
			return o, true
		}
	}
	return bench.Outcome{}, false
}

// unitFor picks one explicit unit per operation table, driven by the
// slowest successful mean in the table.
func (r *Report) unitFor(op bench.Op) (string, time.Duration) {
	var slowest time.Duration
	for _, o := range r.outcomes {
		if o.Tuple.Op != op || o.Failed() {
			continue
		}
		if o.Aggregate.Mean > slowest {
			slowest = o.Aggregate.Mean
		}
	}
	if slowest < unitSwitchCeiling {
		return "ns", time.Nanosecond
	}
	return "us", time.Microsecond
}

func formatMean(d time.Duration, unit time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d)/float64(unit))
}

// WriteTables renders the per-operation comparison tables.
func (r *Report) WriteTables(w io.Writer) error {
	for _, op := range r.ops() {
		unitName, unit := r.unitFor(op)
		subjects := r.subjectsFor(op)
		sizes := r.sizesFor(op)

		if _, err := fmt.Fprintf(w, "=== %s (mean, %s) ===\n", op, unitName); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprint(tw, "size")
		for _, s := range subjects {
			fmt.Fprintf(tw, "\t%s", s)
		}
		fmt.Fprintln(tw, "\t")

		for _, size := range sizes {
			fmt.Fprintf(tw, "%d", size)
			for _, s := range subjects {
				o, ok := r.lookup(bench.Tuple{Subject: s, Op: op, Size: size})
				switch {
				case !ok:
					fmt.Fprint(tw, "\t")
				case o.Failed():
					fmt.Fprintf(tw, "\t%s", failureMarkers[o.Failure.Class])
				default:
					cell := formatMean(o.Aggregate.Mean, unit)
					if o.Aggregate.Noisy {
						cell += "~"
					}
					fmt.Fprintf(tw, "\t%s", cell)
				}
			}
			fmt.Fprintln(tw, "\t")
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// Records returns one machine-readable row per outcome, in schedule
// order.
func (r *Report) Records() []Record {
	records := make([]Record, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		rec := Record{
			Benchmark: string(o.Tuple.Op),
			Subject:   o.Tuple.Subject,
			Size:      o.Tuple.Size,
		}
		if o.Failed() {
			rec.Outcome = string(o.Failure.Class)
		} else {
			unitName, unit := r.unitFor(o.Tuple.Op)
			rec.Outcome = "ok"
			rec.Unit = unitName
			rec.Mean = float64(o.Aggregate.Mean) / float64(unit)
			rec.StdErr = float64(o.Aggregate.StdErr) / float64(unit)
			rec.P99 = float64(o.Aggregate.P99) / float64(unit)
		}
		records = append(records, rec)
	}
	return records
}

// WriteJSON writes the record stream, one JSON object per line.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, rec := range r.Records() {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
