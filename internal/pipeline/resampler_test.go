package pipeline

import (
	"math"
	"testing"
)

// sliceSource replays a fixed sequence and then produces silence, the same
// contract a starved RingSource has.
type sliceSource struct {
	samples []float32
	pos     int
}

func (s *sliceSource) Next() float32 {
	if s.pos >= len(s.samples) {
		return Equilibrium
	}
	v := s.samples[s.pos]
	s.pos++
	return v
}

func pull(src Source, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = src.Next()
	}
	return out
}

func approxEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-6 {
			return false
		}
	}
	return true
}

func TestResamplerIdentity(t *testing.T) {
	src := &sliceSource{samples: []float32{0.1, -0.2, 0.3, -0.4}}
	r := NewResampler(src, 48000, 48000)

	got := pull(r, 6)

	// Both anchors start at equilibrium, so the stream opens with silence
	// before each source sample appears exactly once, in order.
	want := []float32{0, 0, 0.1, -0.2, 0.3, -0.4}
	if !approxEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResamplerUpsampleDoubles(t *testing.T) {
	src := &sliceSource{samples: []float32{0.0, 1.0, 0.0, -1.0}}
	r := NewResampler(src, 8000, 16000)

	got := pull(r, 10)

	// The accumulator steps by 0.5 per output, so each anchor pair yields
	// the anchor followed by its midpoint. After the equilibrium warmup
	// the ramp 0 -> 0.5 -> 1 -> 0.5 appears.
	want := []float32{0, 0, 0, 0, 0, 0.5, 1, 0.5, 0, -0.5}
	if !approxEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResamplerDownsampleSkips(t *testing.T) {
	src := &sliceSource{samples: []float32{1, 2, 3, 4, 5, 6, 7, 8}}
	r := NewResampler(src, 16000, 8000)

	got := pull(r, 5)

	// Step of 2.0 lands exactly on every other source sample.
	want := []float32{0, 1, 3, 5, 7}
	if !approxEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResamplerExhaustedSourceRampsToSilence(t *testing.T) {
	src := &sliceSource{samples: []float32{1.0}}
	r := NewResampler(src, 8000, 8000)

	got := pull(r, 5)

	// Once the source runs dry the anchors refill with equilibrium and the
	// output settles back to silence instead of holding the last value.
	want := []float32{0, 0, 1.0, 0, 0}
	if !approxEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRingSourceSubstitutesSilence(t *testing.T) {
	ring := NewRing(4)
	src := NewRingSource(ring)

	if v := src.Next(); v != Equilibrium {
		t.Fatalf("expected silence from empty ring, got %f", v)
	}

	ring.Push([]float32{0.5})
	if v := src.Next(); v != 0.5 {
		t.Fatalf("expected buffered sample, got %f", v)
	}
	if v := src.Next(); v != Equilibrium {
		t.Fatalf("expected silence after draining, got %f", v)
	}
}
