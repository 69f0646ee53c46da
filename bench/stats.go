package bench

// This file contains the statistics aggregator: per-tuple series of
// measured-phase samples and the summary derived from them.

import (
	"fmt"
	"math"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// histogramCeiling bounds the recordable sample; a single iteration
// above five minutes is clamped rather than dropped.
const histogramCeiling = 5 * time.Minute

// noisyStdErrRatio classifies an aggregate as noisy when the standard
// error exceeds this share of the mean.
const noisyStdErrRatio = 0.10

// Phase is the scheduler state a measurement was taken in.
type Phase uint8

const (
	PhaseCold Phase = iota
	PhaseWarmingUp
	PhaseMeasuring
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseCold:
		return "cold"
	case PhaseWarmingUp:
		return "warming-up"
	case PhaseMeasuring:
		return "measuring"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Measurement is one elapsed-time sample for one tuple, immutable once
// recorded.
type Measurement struct {
	Tuple     Tuple
	Iteration int
	Phase     Phase
	Elapsed   time.Duration
}

// series accumulates one tuple's measured-phase samples. Mean and
// variance use Welford's running moments, which stay numerically
// stable across samples spanning sub-microsecond to multi-millisecond
// magnitudes; a naive sum of squares would lose precision at scale.
type series struct {
	count int64
	mean  float64
	m2    float64
	min   float64
	max   float64
	hist  *hdrhistogram.Histogram
}

func newSeries() *series {
	return &series{
		hist: hdrhistogram.New(1, histogramCeiling.Nanoseconds(), 3),
	}
}

func (s *series) push(d time.Duration) {
	n := float64(d.Nanoseconds())
	if s.count == 0 {
		s.min = n
		s.max = n
	} else {
		if n < s.min {
			s.min = n
		}
		if n > s.max {
			s.max = n
		}
	}
	s.count++
	delta := n - s.mean
	s.mean += delta / float64(s.count)
	s.m2 += delta * (n - s.mean)

	v := d.Nanoseconds()
	if v < 1 {
		v = 1
	}
	if v > s.hist.HighestTrackableValue() {
		v = s.hist.HighestTrackableValue()
	}
	// Range is pre-clamped; RecordValue cannot fail.
	_ = s.hist.RecordValue(v)
}

// Aggregate is the summary for one tuple, derived only from
// measured-phase samples.
type Aggregate struct {
	Count  int64
	Mean   time.Duration
	StdDev time.Duration
	StdErr time.Duration
	Min    time.Duration
	Max    time.Duration
	P50    time.Duration
	P99    time.Duration
	// Noisy flags a dispersion estimate too wide to trust for close
	// comparisons.
	Noisy bool
}

// Aggregator collects measurements into per-tuple series.
type Aggregator struct {
	series map[Tuple]*series
}

func NewAggregator() *Aggregator {
	return &Aggregator{series: make(map[Tuple]*series)}
}

// Record appends a measurement to its tuple's series. Warm-up samples
// are dropped: aggregates derive from the measuring phase only.
func (a *Aggregator) Record(m Measurement) {
	if m.Phase != PhaseMeasuring {
		return
	}
	s, ok := a.series[m.Tuple]
	if !ok {
		s = newSeries()
		a.series[m.Tuple] = s
	}
	s.push(m.Elapsed)
}

// Count returns the number of recorded measured-phase samples for t.
func (a *Aggregator) Count(t Tuple) int64 {
	s, ok := a.series[t]
	if !ok {
		return 0
	}
	return s.count
}

// Summarize computes the aggregate for one tuple.
func (a *Aggregator) Summarize(t Tuple) (*Aggregate, error) {
	s, ok := a.series[t]
	if !ok || s.count == 0 {
		return nil, fmt.Errorf("no measured samples for tuple %s", t)
	}

	agg := &Aggregate{
		Count: s.count,
		Mean:  time.Duration(s.mean),
		Min:   time.Duration(s.min),
		Max:   time.Duration(s.max),
		P50:   time.Duration(s.hist.ValueAtQuantile(50)),
		P99:   time.Duration(s.hist.ValueAtQuantile(99)),
	}
	if s.count > 1 {
		variance := s.m2 / float64(s.count-1)
		agg.StdDev = time.Duration(math.Sqrt(variance))
		agg.StdErr = time.Duration(math.Sqrt(variance / float64(s.count)))
	}
	if s.mean > 0 && float64(agg.StdErr) > noisyStdErrRatio*s.mean {
		agg.Noisy = true
	}
	return agg, nil
}
