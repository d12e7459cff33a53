package device

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Driver-level fault conditions reported through the fault callback while
// streaming. They do not stop the stream.
var (
	ErrInputOverflow   = errors.New("input overflowed before the callback ran")
	ErrOutputUnderflow = errors.New("output underflowed before the callback ran")
)

// Stream is an opened device stream handle.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// FaultFunc is invoked from the callback context when the driver reports a
// streaming fault. It must not block.
type FaultFunc func(error)

// Opener registers periodic sample callbacks against audio devices. The
// input callback receives each captured block of interleaved samples; the
// output callback must fill the block it is handed. Faults observed during
// streaming are delivered through the fault callback.
type Opener interface {
	OpenInput(dev Device, cfg StreamConfig, deliver func([]float32), fault FaultFunc) (Stream, error)
	OpenOutput(dev Device, cfg StreamConfig, fill func([]float32), fault FaultFunc) (Stream, error)
}

// PortAudio is the Opener backed by real devices.
type PortAudio struct{}

func (PortAudio) OpenInput(dev Device, cfg StreamConfig, deliver func([]float32), fault FaultFunc) (Stream, error) {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev.info,
			Channels: cfg.Channels,
			Latency:  dev.info.DefaultLowInputLatency,
		},
		SampleRate:      float64(cfg.SampleRate),
		FramesPerBuffer: cfg.FramesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, func(in []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
		if fault != nil && flags&portaudio.InputOverflow != 0 {
			fault(ErrInputOverflow)
		}
		deliver(in)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open input stream: %w", err)
	}
	return stream, nil
}

func (PortAudio) OpenOutput(dev Device, cfg StreamConfig, fill func([]float32), fault FaultFunc) (Stream, error) {
	params := portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   dev.info,
			Channels: cfg.Channels,
			Latency:  dev.info.DefaultLowOutputLatency,
		},
		SampleRate:      float64(cfg.SampleRate),
		FramesPerBuffer: cfg.FramesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, func(out []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
		if fault != nil && flags&portaudio.OutputUnderflow != 0 {
			fault(ErrOutputUnderflow)
		}
		fill(out)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}
	return stream, nil
}
