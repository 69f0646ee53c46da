package bench

import (
	"runtime"
	"time"
)

// Forcer is implemented by lazily-represented results. The blackhole
// forces them so the computation that produced them cannot be elided.
type Forcer interface {
	Force()
}

// Blackhole is a forced-observation sink. Every measured result is
// stored into an externally-visible location the compiler cannot prove
// dead, so no correct optimizing backend can remove the computation
// that produced it.
type Blackhole struct {
	sink any
}

//go:noinline
func (b *Blackhole) store(v any) {
	b.sink = v
}

// Consume observes v. Lazy results are fully evaluated first.
func (b *Blackhole) Consume(v any) {
	if f, ok := v.(Forcer); ok {
		f.Force()
	}
	b.store(v)
	runtime.KeepAlive(v)
}

// Calibrate measures the mean cost of one Consume call over iters
// calls. The runner subtracts this from every sample; for
// sub-microsecond operations the sink would otherwise dominate.
func (b *Blackhole) Calibrate(iters int) time.Duration {
	if iters <= 0 {
		return 0
	}
	probe := int64(1)
	start := time.Now()
	for i := 0; i < iters; i++ {
		b.Consume(probe)
		probe++
	}
	return time.Since(start) / time.Duration(iters)
}

// clockResolution estimates the smallest elapsed delta the monotonic
// clock can resolve. Samples below it are discarded as anomalies.
func clockResolution() time.Duration {
	best := time.Duration(1<<63 - 1)
	for i := 0; i < 64; i++ {
		start := time.Now()
		var d time.Duration
		for d == 0 {
			d = time.Since(start)
		}
		if d < best {
			best = d
		}
	}
	return best
}
