package apu

import (
	"fmt"

	"github.com/arl/blip"
)

// Samples move from the channel buffers to the sink in fixed-size runs.
const mixChunkSize = 2048

// activeChannels counts the channels that are both routed to the given side
// and currently audible. The mix gain is divided by it so that two voices on
// the same side cannot clip.
func (a *APU) activeChannels(right bool) int {
	shift := uint(0)
	if right {
		shift = 4
	}
	routing := (a.regs[NR51-RegisterBase] >> shift) & 0x0F

	n := 0
	if routing&1 != 0 && a.ch1.on() {
		n++
	}
	if routing&2 != 0 && a.ch2.on() {
		n++
	}
	return n
}

// sideGain is the per-sample gain applied to every channel routed to one
// side: active-channel normalization, master volume, the 4-bit amplitude
// range, and a final 0.5 of headroom.
func (a *APU) sideGain(right bool) float32 {
	n := a.activeChannels(right)
	if n == 0 {
		return 0
	}
	vol := a.volumeLeft
	if right {
		vol = a.volumeRight
	}
	return (1.0 / float32(n)) * (float32(vol) / 7.0) * (1.0 / 15.0) * 0.5
}

// mix drains both channel buffers and hands the routed, scaled result to the
// sink. Both channels were finalized at the same clock, so they must hold
// the same number of samples; anything else is an internal-consistency fault.
func (a *APU) mix() {
	avail1 := a.ch1.buf.SamplesAvailable()
	avail2 := a.ch2.buf.SamplesAvailable()
	if avail1 != avail2 {
		panic(fmt.Sprintf("apu: channel buffers diverged (%d != %d samples)", avail1, avail2))
	}

	leftVol := a.sideGain(false)
	rightVol := a.sideGain(true)
	routing := a.regs[NR51-RegisterBase]

	for outputted := 0; outputted < avail1; {
		var bufLeft, bufRight [mixChunkSize]float32
		var buf1, buf2 [mixChunkSize]int16

		count1 := a.ch1.buf.ReadSamples(buf1[:], mixChunkSize, blip.Mono)
		for i, v := range buf1[:count1] {
			if routing&0x01 != 0 {
				bufLeft[i] += float32(v) * leftVol
			}
			if routing&0x10 != 0 {
				bufRight[i] += float32(v) * rightVol
			}
		}

		count2 := a.ch2.buf.ReadSamples(buf2[:], mixChunkSize, blip.Mono)
		for i, v := range buf2[:count2] {
			if routing&0x02 != 0 {
				bufLeft[i] += float32(v) * leftVol
			}
			if routing&0x20 != 0 {
				bufRight[i] += float32(v) * rightVol
			}
		}

		if count1 != count2 {
			panic(fmt.Sprintf("apu: channel reads diverged (%d != %d samples)", count1, count2))
		}

		a.sink.Play(bufLeft[:count1], bufRight[:count1])
		outputted += count1
	}
}
