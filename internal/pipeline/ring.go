// Package pipeline implements the real-time audio path between the capture
// and playback callbacks: a lock-free handoff buffer, a pull-based sample
// source, a linear-interpolation resampler, and a channel-layout converter.
//
// Everything in this package is wait-free and allocation-free once
// constructed, because it runs inside driver-invoked audio callbacks.
package pipeline

import "sync/atomic"

// Ring is a bounded single-producer single-consumer queue of samples.
// The producer owns tail, the consumer owns head; each side only loads the
// other's cursor, so push and pop need no locks. Cursors grow without
// wrapping and are reduced modulo the capacity on access.
type Ring struct {
	buf  []float32
	head atomic.Uint64 // consumer cursor, next slot to pop
	tail atomic.Uint64 // producer cursor, next slot to fill
}

// NewRing creates a ring holding at most capacity samples.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]float32, capacity)}
}

// Push appends as many samples as fit and returns how many were written.
// Excess samples are dropped rather than blocking: the capture callback
// must never stall, so bounded latency wins over completeness.
func (r *Ring) Push(samples []float32) int {
	head := r.head.Load()
	tail := r.tail.Load()

	free := len(r.buf) - int(tail-head)
	n := len(samples)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	// At most two copies when the write wraps the end of the buffer.
	start := int(tail % uint64(len(r.buf)))
	m := copy(r.buf[start:], samples[:n])
	copy(r.buf, samples[m:n])

	r.tail.Store(tail + uint64(n))
	return n
}

// Pop removes and returns the oldest sample. ok is false when the ring is
// empty; Pop never blocks waiting for the producer.
func (r *Ring) Pop() (v float32, ok bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return 0, false
	}
	v = r.buf[head%uint64(len(r.buf))]
	r.head.Store(head + 1)
	return v, true
}

// Len reports how many samples are currently buffered.
func (r *Ring) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap reports the fixed capacity in samples.
func (r *Ring) Cap() int {
	return len(r.buf)
}
