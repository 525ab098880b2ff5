package apu

// accumulator is the band-limited synthesis primitive each channel emits
// amplitude deltas into. *blip.Buffer is the real implementation; the
// channel only relies on this subset.
type accumulator interface {
	AddDelta(time uint64, delta int32)
	EndFrame(clockDuration int)
	SamplesAvailable() int
	ReadSamples(out []int16, count int, stereo bool) int
}
