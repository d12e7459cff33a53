package pipeline

// Equilibrium is the silence value substituted when no captured audio is
// available.
const Equilibrium float32 = 0

// Source is a pull-based stream of samples. Next always succeeds; a source
// that runs dry is expected to substitute Equilibrium rather than block.
type Source interface {
	Next() float32
}

// RingSource adapts the consumer side of a Ring into a Source. When the
// ring is empty (capture has not started yet, or has fallen behind) it
// produces silence, which keeps the downstream resampler's pull model
// total.
type RingSource struct {
	ring *Ring
}

// NewRingSource wraps the consumer side of ring.
func NewRingSource(ring *Ring) *RingSource {
	return &RingSource{ring: ring}
}

// Next pops the oldest captured sample, or Equilibrium on underrun.
func (s *RingSource) Next() float32 {
	v, ok := s.ring.Pop()
	if !ok {
		return Equilibrium
	}
	return v
}
