// Package stream wires the audio pipeline between two device streams and
// owns their lifecycle: buffer sizing, transactional start, and idempotent
// stop.
package stream

import (
	"fmt"
	"sync"

	"github.com/miccheck/miccheck/internal/device"
	"github.com/miccheck/miccheck/internal/pipeline"
	"github.com/rs/zerolog"
)

// DefaultDelaySeconds is the echo-test buffer duration used when no
// override is configured. It also sizes the handoff ring, bounding
// worst-case latency.
const DefaultDelaySeconds = 2

// Session describes one capture-to-playback run. The stream configs are
// the resolved device shapes; FramesPerBuffer is filled in from the buffer
// policy before the streams are opened.
type Session struct {
	Input        device.Device
	Output       device.Device
	InputConfig  device.StreamConfig
	OutputConfig device.StreamConfig

	// Delayed selects the large echo-test buffer sizing instead of the
	// lowest-latency one.
	Delayed      bool
	DelaySeconds int
}

// BufferSize chooses the per-period buffer size in frames. With a known
// supported range it picks the minimum for lowest latency, or
// delaySeconds worth of audio clamped to the maximum when delayed. An
// unknown range defers to the device default (zero).
func BufferSize(r device.BufferRange, sampleRate int, delayed bool, delaySeconds int) int {
	if r.Unknown() {
		return 0
	}
	if !delayed {
		return r.Min
	}
	frames := sampleRate * delaySeconds
	if frames > r.Max {
		frames = r.Max
	}
	return frames
}

// Orchestrator owns the pipeline and the two opened streams for the
// duration of a session.
type Orchestrator struct {
	opener device.Opener
	log    zerolog.Logger

	mu      sync.Mutex
	input   device.Stream
	output  device.Stream
	running bool
}

// New creates an orchestrator that opens streams through opener.
func New(opener device.Opener, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{opener: opener, log: log}
}

// Start builds the ring/resampler/converter chain, registers both
// callbacks, and starts both streams. Setup is transactional: if anything
// fails, whatever was already opened or started is torn down before the
// error is returned, so a failure never leaves one stream running
// half-connected.
func (o *Orchestrator) Start(s Session) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return fmt.Errorf("streams already running")
	}

	delaySeconds := s.DelaySeconds
	if delaySeconds <= 0 {
		delaySeconds = DefaultDelaySeconds
	}

	inCfg, outCfg := s.InputConfig, s.OutputConfig
	inCfg.FramesPerBuffer = BufferSize(s.Input.BufferRange(), inCfg.SampleRate, s.Delayed, delaySeconds)
	outCfg.FramesPerBuffer = BufferSize(s.Output.BufferRange(), outCfg.SampleRate, s.Delayed, delaySeconds)

	// The ring holds delaySeconds worth of interleaved capture, which
	// bounds worst-case latency when the consumer falls behind.
	ring := pipeline.NewRing(inCfg.SampleRate * inCfg.Channels * delaySeconds)
	resampler := pipeline.NewResampler(pipeline.NewRingSource(ring), inCfg.SampleRate, outCfg.SampleRate)
	converter := pipeline.NewChannelConverter(inCfg.Channels, outCfg.Channels)

	output, err := o.opener.OpenOutput(s.Output, outCfg, func(out []float32) {
		converter.Fill(out, resampler)
	}, o.faultHandler("output"))
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}

	input, err := o.opener.OpenInput(s.Input, inCfg, func(in []float32) {
		ring.Push(in)
	}, o.faultHandler("input"))
	if err != nil {
		output.Close()
		return fmt.Errorf("failed to open input stream: %w", err)
	}

	if err := output.Start(); err != nil {
		input.Close()
		output.Close()
		return fmt.Errorf("failed to start output stream: %w", err)
	}

	if err := input.Start(); err != nil {
		output.Stop()
		input.Close()
		output.Close()
		return fmt.Errorf("failed to start input stream: %w", err)
	}

	o.input, o.output = input, output
	o.running = true

	o.log.Info().
		Int("in_rate", inCfg.SampleRate).
		Int("out_rate", outCfg.SampleRate).
		Int("in_channels", inCfg.Channels).
		Int("out_channels", outCfg.Channels).
		Int("ring_capacity", ring.Cap()).
		Msg("Streams started")
	return nil
}

// Stop tears both streams down. In-flight callback invocations complete
// naturally. Stopping an already-stopped orchestrator is a no-op.
func (o *Orchestrator) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running {
		return nil
	}
	o.running = false

	// Stop capture first so playback drains rather than dropping.
	var firstErr error
	if err := o.input.Stop(); err != nil {
		firstErr = fmt.Errorf("failed to stop input stream: %w", err)
	}
	if err := o.output.Stop(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to stop output stream: %w", err)
	}
	o.input.Close()
	o.output.Close()
	o.input, o.output = nil, nil

	o.log.Info().Msg("Streams stopped")
	return firstErr
}

// Running reports whether a session is active.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// faultHandler logs asynchronous driver faults. Streaming faults are
// reported but never stop the process; audio for the affected stream
// simply degrades.
func (o *Orchestrator) faultHandler(name string) device.FaultFunc {
	return func(err error) {
		o.log.Error().Err(err).Str("stream", name).Msg("Streaming fault")
	}
}
