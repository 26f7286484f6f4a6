// Package metrics records a per-operation constraint-emission histogram,
// exposed as a github.com/google/pprof profile.Profile so it can be
// inspected with the standard pprof toolchain (go tool pprof). Recording is
// opt-in and a no-op until Enable is called, matching the corpus's
// preference for profiling hooks that cost nothing unless asked for.
package metrics

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/pprof/profile"
)

var enabled atomic.Bool

// Enable turns on constraint-emission recording.
func Enable() { enabled.Store(true) }

// Disable turns off constraint-emission recording and clears accumulated
// counts.
func Disable() {
	enabled.Store(false)
	defaultRecorder.reset()
}

// Enabled reports whether recording is currently active.
func Enabled() bool { return enabled.Load() }

type opCount struct {
	samples     int64
	constraints int64
}

// Recorder accumulates constraint counts keyed by operation name
// ("enforce_add", "enforce_mul", "c_mux3", ...).
type Recorder struct {
	mu     sync.Mutex
	counts map[string]*opCount
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[string]*opCount)}
}

func (r *Recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = make(map[string]*opCount)
}

// Observe records nbConstraints new R1C rows attributed to op. It is a
// no-op when recording is disabled.
func (r *Recorder) Observe(op string, nbConstraints int) {
	if !enabled.Load() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counts[op]
	if !ok {
		c = &opCount{}
		r.counts[op] = c
	}
	c.samples++
	c.constraints += int64(nbConstraints)
}

// Snapshot renders the accumulated counts as a pprof profile with two
// sample values: "operations" (a count) and "constraints" (R1C rows).
func (r *Recorder) Snapshot() *profile.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "operations", Unit: "count"},
			{Type: "constraints", Unit: "count"},
		},
		DefaultSampleType: "constraints",
	}

	var nextID uint64 = 1
	for op, c := range r.counts {
		fn := &profile.Function{ID: nextID, Name: op}
		nextID++
		loc := &profile.Location{
			ID:   nextID,
			Line: []profile.Line{{Function: fn}},
		}
		nextID++
		p.Function = append(p.Function, fn)
		p.Location = append(p.Location, loc)
		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{c.samples, c.constraints},
		})
	}
	return p
}

// WriteTo serializes the current snapshot in pprof's gzip wire format.
func (r *Recorder) WriteTo(w io.Writer) error {
	return r.Snapshot().Write(w)
}

var defaultRecorder = NewRecorder()

// Default returns the process-wide Recorder used by the circuit packages.
func Default() *Recorder { return defaultRecorder }

// Observe records against the process-wide Recorder.
func Observe(op string, nbConstraints int) { defaultRecorder.Observe(op, nbConstraints) }
