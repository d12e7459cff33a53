// Package device wraps PortAudio: enumeration of capture and playback
// devices, resolution of their stream configuration, and registration of
// the periodic sample callbacks the pipeline runs inside.
package device

import (
	"fmt"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

// Kind distinguishes capture devices from playback devices.
type Kind int

const (
	Input Kind = iota
	Output
)

// Device is an audio device with a display name resolved up front. Default
// devices render as "Default (<name>)" and devices without a usable name
// as "Unknown".
type Device struct {
	info    *portaudio.DeviceInfo
	Name    string
	Kind    Kind
	Default bool
}

// StreamConfig is the resolved shape of one stream. Immutable once the
// stream is opened. FramesPerBuffer of zero defers to the device default.
type StreamConfig struct {
	Channels        int
	SampleRate      int
	FramesPerBuffer int
}

// BufferRange is the supported per-period buffer size range in frames,
// derived from the device's default latencies. The zero value means the
// device reports no constraints.
type BufferRange struct {
	Min, Max int
}

// Unknown reports whether the device gave us no usable range.
func (r BufferRange) Unknown() bool {
	return r.Min == 0 && r.Max == 0
}

// Initialize prepares the PortAudio host. Must be called before any other
// function in this package and balanced with Terminate.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return nil
}

// Terminate releases the PortAudio host.
func Terminate() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

func named(info *portaudio.DeviceInfo, kind Kind, isDefault bool) Device {
	name := info.Name
	if name == "" {
		name = "Unknown"
	}
	if isDefault {
		name = fmt.Sprintf("Default (%s)", name)
	}
	return Device{info: info, Name: name, Kind: kind, Default: isDefault}
}

// DefaultInput returns the system default capture device.
func DefaultInput() (Device, error) {
	info, err := portaudio.DefaultInputDevice()
	if err != nil {
		return Device{}, fmt.Errorf("failed to get default input device: %w", err)
	}
	return named(info, Input, true), nil
}

// DefaultOutput returns the system default playback device.
func DefaultOutput() (Device, error) {
	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return Device{}, fmt.Errorf("failed to get default output device: %w", err)
	}
	return named(info, Output, true), nil
}

// Inputs lists capture devices, the default device first (it also appears
// again under its plain name, matching how it shows up in the picker).
func Inputs() ([]Device, error) {
	return list(Input)
}

// Outputs lists playback devices, the default device first.
func Outputs() ([]Device, error) {
	return list(Output)
}

func list(kind Kind) ([]Device, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	var devices []Device
	switch kind {
	case Input:
		if def, err := DefaultInput(); err == nil {
			devices = append(devices, def)
		}
		for _, info := range infos {
			if info.MaxInputChannels > 0 {
				devices = append(devices, named(info, Input, false))
			}
		}
	case Output:
		if def, err := DefaultOutput(); err == nil {
			devices = append(devices, def)
		}
		for _, info := range infos {
			if info.MaxOutputChannels > 0 {
				devices = append(devices, named(info, Output, false))
			}
		}
	}
	return devices, nil
}

// Find returns the device of the given kind whose reported name matches.
func Find(name string, kind Kind) (Device, error) {
	devices, err := list(kind)
	if err != nil {
		return Device{}, err
	}
	for _, d := range devices {
		if !d.Default && d.Name == name {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("device not found: %s", name)
}

// Config resolves the stream shape for the device: its default sample rate
// and its channel count capped at stereo, since the pipeline converts only
// mono/stereo layouts.
func (d Device) Config() StreamConfig {
	if d.info == nil {
		return StreamConfig{}
	}
	maxChannels := d.info.MaxInputChannels
	if d.Kind == Output {
		maxChannels = d.info.MaxOutputChannels
	}
	channels := maxChannels
	if channels > 2 {
		channels = 2
	}
	if channels < 1 {
		channels = 1
	}
	return StreamConfig{
		Channels:   channels,
		SampleRate: int(d.info.DefaultSampleRate),
	}
}

// BufferRange derives the supported per-period size range from the
// device's default low and high latencies at its default sample rate.
func (d Device) BufferRange() BufferRange {
	if d.info == nil {
		return BufferRange{}
	}
	var low, high time.Duration
	if d.Kind == Input {
		low, high = d.info.DefaultLowInputLatency, d.info.DefaultHighInputLatency
	} else {
		low, high = d.info.DefaultLowOutputLatency, d.info.DefaultHighOutputLatency
	}
	rate := d.info.DefaultSampleRate
	if low <= 0 || high <= 0 || rate <= 0 {
		return BufferRange{}
	}
	return BufferRange{
		Min: framesFor(low, rate),
		Max: framesFor(high, rate),
	}
}

func framesFor(latency time.Duration, rate float64) int {
	return int(math.Round(latency.Seconds() * rate))
}
