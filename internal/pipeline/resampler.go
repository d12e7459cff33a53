package pipeline

// Resampler converts a stream nominally sampled at rateIn Hz into one at
// rateOut Hz, one output sample per pull. It keeps a fractional position
// between the two most recently pulled source samples and emits the linear
// interpolation between them.
//
// Linear interpolation trades a little aliasing for O(1) allocation-free
// cost per sample, which is what matters inside an audio callback. This is
// a monitoring tool, not a mastering pipeline.
type Resampler struct {
	src  Source
	step float64 // source samples consumed per output sample
	pos  float64 // fractional position between s0 and s1
	// The interpolation anchors. Both start at Equilibrium so the first
	// outputs ramp from silence instead of replaying garbage state.
	s0, s1 float32
}

// NewResampler creates a converter pulling from src at rateIn and producing
// samples at rateOut. Both rates must be positive.
func NewResampler(src Source, rateIn, rateOut int) *Resampler {
	return &Resampler{
		src:  src,
		step: float64(rateIn) / float64(rateOut),
	}
}

// Next produces one output sample. Whenever the accumulated position
// crosses an integer source boundary the anchors slide forward by pulling
// from the source.
func (r *Resampler) Next() float32 {
	for r.pos >= 1 {
		r.s0, r.s1 = r.s1, r.src.Next()
		r.pos--
	}
	v := r.s0 + (r.s1-r.s0)*float32(r.pos)
	r.pos += r.step
	return v
}
