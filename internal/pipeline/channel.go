package pipeline

// ChannelMode is the fixed channel-layout conversion chosen at setup from
// the input and output channel counts. The set is closed: supporting other
// channel pairs means adding a mode and its pull arity here.
type ChannelMode int

const (
	// Passthrough forwards one source pull per output slot.
	Passthrough ChannelMode = iota
	// StereoToMono averages a left/right pair into each output slot.
	StereoToMono
	// MonoToStereo duplicates each source sample into both slots of a
	// stereo frame.
	MonoToStereo
)

// ModeFor selects the conversion for an (input, output) channel-count
// pair. Only 1<->2 mismatches get converted; everything else passes
// through unchanged.
func ModeFor(inChannels, outChannels int) ChannelMode {
	switch {
	case inChannels == 1 && outChannels == 2:
		return MonoToStereo
	case inChannels == 2 && outChannels == 1:
		return StereoToMono
	default:
		return Passthrough
	}
}

// ChannelConverter reconciles channel-count mismatches between the
// resampled capture stream and the playback device. Next is called once
// per output sample slot, i.e. once per channel per frame, by the output
// callback.
type ChannelConverter struct {
	mode ChannelMode

	// pending holds a mono sample emitted as the left slot of a stereo
	// frame and awaiting its right-slot duplicate. Pairing is tracked by
	// hasPending rather than a call counter so left/right ordering stays
	// correct across output buffer refills.
	pending    float32
	hasPending bool
}

// NewChannelConverter picks the conversion mode for the given channel
// counts.
func NewChannelConverter(inChannels, outChannels int) *ChannelConverter {
	return &ChannelConverter{mode: ModeFor(inChannels, outChannels)}
}

// Mode reports the conversion selected at construction.
func (c *ChannelConverter) Mode() ChannelMode {
	return c.mode
}

// Next produces the sample for one output slot, pulling from src as many
// times as the mode requires.
func (c *ChannelConverter) Next(src Source) float32 {
	switch c.mode {
	case StereoToMono:
		left := src.Next()
		right := src.Next()
		return (left + right) / 2
	case MonoToStereo:
		if c.hasPending {
			c.hasPending = false
			return c.pending
		}
		v := src.Next()
		c.pending = v
		c.hasPending = true
		return v
	default:
		return src.Next()
	}
}

// Fill populates an interleaved output buffer one slot at a time.
func (c *ChannelConverter) Fill(dst []float32, src Source) {
	for i := range dst {
		dst[i] = c.Next(src)
	}
}
