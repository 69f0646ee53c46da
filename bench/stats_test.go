package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregator_WarmupSamplesExcluded(t *testing.T) {
	tuple := Tuple{Subject: "a", Op: OpFoldLeft, Size: 10}
	agg := NewAggregator()

	agg.Record(Measurement{Tuple: tuple, Phase: PhaseWarmingUp, Elapsed: time.Hour})
	agg.Record(Measurement{Tuple: tuple, Phase: PhaseWarmingUp, Elapsed: time.Hour})
	for i := 0; i < 5; i++ {
		agg.Record(Measurement{Tuple: tuple, Iteration: i, Phase: PhaseMeasuring, Elapsed: time.Microsecond})
	}

	require.EqualValues(t, 5, agg.Count(tuple))

	summary, err := agg.Summarize(tuple)
	require.NoError(t, err)
	require.EqualValues(t, 5, summary.Count)
	// The hour-long warm-up samples must not leak into the mean.
	require.Equal(t, time.Microsecond, summary.Mean)
	require.Equal(t, time.Microsecond, summary.Max)
}

func TestAggregator_Summarize(t *testing.T) {
	tuple := Tuple{Subject: "a", Op: OpMap, Size: 10}
	agg := NewAggregator()
	for _, d := range []time.Duration{
		100 * time.Nanosecond,
		200 * time.Nanosecond,
		300 * time.Nanosecond,
		400 * time.Nanosecond,
	} {
		agg.Record(Measurement{Tuple: tuple, Phase: PhaseMeasuring, Elapsed: d})
	}

	summary, err := agg.Summarize(tuple)
	require.NoError(t, err)
	require.EqualValues(t, 4, summary.Count)
	require.Equal(t, 250*time.Nanosecond, summary.Mean)
	require.Equal(t, 100*time.Nanosecond, summary.Min)
	require.Equal(t, 400*time.Nanosecond, summary.Max)
	// Sample stddev of {100,200,300,400} is sqrt(50000/3) ~= 129ns.
	require.InDelta(t, 129, float64(summary.StdDev.Nanoseconds()), 1)
	require.InDelta(t, 64, float64(summary.StdErr.Nanoseconds()), 1)
	require.True(t, summary.Noisy)
	require.GreaterOrEqual(t, summary.P99, summary.P50)
}

func TestAggregator_TightSeriesIsNotNoisy(t *testing.T) {
	tuple := Tuple{Subject: "a", Op: OpHead, Size: 10}
	agg := NewAggregator()
	for i := 0; i < 100; i++ {
		agg.Record(Measurement{Tuple: tuple, Phase: PhaseMeasuring, Elapsed: time.Microsecond})
	}

	summary, err := agg.Summarize(tuple)
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), summary.StdErr)
	require.False(t, summary.Noisy)
}

func TestAggregator_SummarizeEmpty(t *testing.T) {
	agg := NewAggregator()
	_, err := agg.Summarize(Tuple{Subject: "a", Op: OpHead, Size: 10})
	require.Error(t, err)
}

func TestAggregator_CeilingClampsInsteadOfDropping(t *testing.T) {
	tuple := Tuple{Subject: "a", Op: OpConcat, Size: 10}
	agg := NewAggregator()
	agg.Record(Measurement{Tuple: tuple, Phase: PhaseMeasuring, Elapsed: time.Hour})

	summary, err := agg.Summarize(tuple)
	require.NoError(t, err)
	require.EqualValues(t, 1, summary.Count)
	require.Equal(t, time.Hour, summary.Mean)
	// Quantiles come from the clamped histogram and sit at the ceiling,
	// give or take bucket resolution.
	require.InEpsilon(t, float64(histogramCeiling), float64(summary.P99), 0.01)
}
