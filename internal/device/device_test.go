package device

import (
	"testing"
	"time"

	"github.com/gordonklaus/portaudio"
)

func TestNamedDefaultWrapsName(t *testing.T) {
	d := named(&portaudio.DeviceInfo{Name: "USB Mic"}, Input, true)
	if d.Name != "Default (USB Mic)" {
		t.Fatalf("expected default naming, got %q", d.Name)
	}
	if !d.Default {
		t.Fatal("expected device to be marked default")
	}
}

func TestNamedUnknownWhenEmpty(t *testing.T) {
	d := named(&portaudio.DeviceInfo{}, Output, false)
	if d.Name != "Unknown" {
		t.Fatalf("expected Unknown name, got %q", d.Name)
	}
}

func TestConfigCapsChannelsAtStereo(t *testing.T) {
	d := named(&portaudio.DeviceInfo{
		Name:              "Surround",
		MaxOutputChannels: 6,
		DefaultSampleRate: 48000,
	}, Output, false)

	cfg := d.Config()
	if cfg.Channels != 2 {
		t.Fatalf("expected 2 channels, got %d", cfg.Channels)
	}
	if cfg.SampleRate != 48000 {
		t.Fatalf("expected 48000Hz, got %d", cfg.SampleRate)
	}
}

func TestBufferRangeFromLatencies(t *testing.T) {
	d := named(&portaudio.DeviceInfo{
		Name:                    "Mic",
		MaxInputChannels:        1,
		DefaultSampleRate:       48000,
		DefaultLowInputLatency:  10 * time.Millisecond,
		DefaultHighInputLatency: 100 * time.Millisecond,
	}, Input, false)

	r := d.BufferRange()
	if r.Unknown() {
		t.Fatal("expected a known range")
	}
	if r.Min != 480 || r.Max != 4800 {
		t.Fatalf("expected [480, 4800], got [%d, %d]", r.Min, r.Max)
	}
}

func TestBufferRangeUnknownWithoutLatencies(t *testing.T) {
	d := named(&portaudio.DeviceInfo{Name: "Odd", DefaultSampleRate: 44100}, Input, false)
	if !d.BufferRange().Unknown() {
		t.Fatal("expected unknown range when latencies are unreported")
	}
}
