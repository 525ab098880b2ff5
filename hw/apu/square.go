package apu

import (
	"gbapu/emu/log"
	"gbapu/hw/hwio"
)

// The four duty cycles, as 8-step ±1 amplitude sequences.
var wavePatterns = [4][8]int32{
	{-1, -1, -1, -1, 1, -1, -1, -1},
	{-1, -1, -1, -1, 1, 1, -1, -1},
	{-1, -1, 1, 1, 1, 1, -1, -1},
	{1, 1, 1, 1, -1, -1, 1, 1},
}

// squareChannel is one pulse voice: a duty-cycled square wave gated by a
// length counter, scaled by a volume envelope, and (channel 1 only) shifted
// by the frequency sweep. It emits amplitude deltas into its own band
// limited buffer; actual sample synthesis happens there.
type squareChannel struct {
	enabled       bool
	duty          uint8
	phase         uint8 // 0..7, position in the duty pattern
	length        uint8 // counts up, 64 silences the channel
	lengthEnabled bool
	frequency     uint16 // 11-bit
	period        uint32 // clocks per waveform phase step, 0 means silent
	lastAmp       int32
	delay         uint32 // carry-over clocks into the next run call

	hasSweep bool
	sweep    sweep

	env volumeEnvelope
	buf accumulator
}

func newSquareChannel(buf accumulator, withSweep bool) squareChannel {
	return squareChannel{
		duty:     1,
		phase:    1,
		hasSweep: withSweep,
		buf:      buf,
	}
}

// on reports whether the channel is audible: triggered, and not silenced by
// an expired length counter.
func (ch *squareChannel) on() bool {
	return ch.enabled && (!ch.lengthEnabled || ch.length < 64)
}

func (ch *squareChannel) writeReg(addr uint16, val uint8) {
	switch addr {
	case NR10:
		if ch.hasSweep {
			ch.sweep.writeReg(val)
		}
	case NR11, NR21:
		ch.duty = val >> 6
		ch.length = val & 0x3F
	case NR13, NR23:
		ch.frequency = ch.frequency&0xFF00 | uint16(val)
		ch.calculatePeriod()
	case NR14, NR24:
		ch.frequency = ch.frequency&0x00FF | uint16(val&0x07)<<8
		ch.calculatePeriod()
		ch.lengthEnabled = hwio.GetBit8(val, 6)
		ch.enabled = hwio.GetBit8(val, 7)
		ch.delay = 0

		// The sweep works on its own copy of the frequency, reloaded on
		// every trigger. When the sweep is active, hardware performs one
		// recalculation immediately, not at the next 128 Hz tick: a trigger
		// with an already-overflowing shifted frequency silences the channel
		// right away.
		ch.sweep.shadow = ch.frequency
		if ch.hasSweep && ch.sweep.period > 0 && ch.sweep.shift > 0 {
			ch.sweep.delay = 1
			ch.stepSweep()
		}
	}
	ch.env.writeReg(addr, val)
}

// calculatePeriod derives the waveform step period from the frequency
// register. Period 0 is the single source of truth for "this channel is
// inaudible": both the generator and the sweep overflow path rely on it.
func (ch *squareChannel) calculatePeriod() {
	if ch.frequency > 2048 {
		ch.period = 0
	} else {
		ch.period = (2048 - uint32(ch.frequency)) * 4
	}
}

// run generates amplitude deltas covering [start, end). It assumes no
// volume, frequency or sweep change happens strictly inside the interval;
// APU.run upholds that by never spanning more than one sequencer tick per
// call.
func (ch *squareChannel) run(start, end uint32) {
	if !ch.enabled || (ch.length == 64 && ch.lengthEnabled) || ch.period == 0 {
		if ch.lastAmp != 0 {
			ch.buf.AddDelta(uint64(start), -ch.lastAmp)
			ch.lastAmp = 0
			ch.delay = 0
		}
		return
	}

	time := start + ch.delay
	pattern := wavePatterns[ch.duty]
	vol := int32(ch.env.volume)
	for time <= end {
		amp := vol * pattern[ch.phase]
		if amp != ch.lastAmp {
			ch.buf.AddDelta(uint64(time), amp-ch.lastAmp)
			ch.lastAmp = amp
		}
		time += ch.period
		ch.phase = (ch.phase + 1) % 8
	}

	// The overshoot carries into the next call.
	ch.delay = time - end
}

// stepLength runs one 256 Hz length counter tick. The counter saturates at
// 64; only a new trigger write re-arms the channel once it gets there.
func (ch *squareChannel) stepLength() {
	if ch.lengthEnabled && ch.length < 64 {
		ch.length++
	}
}

// stepSweep runs one 128 Hz sweep tick: commit the shadow frequency to the
// live one, then shift the shadow for the next tick. An additive overflow
// past the 11-bit range stops the sweep and parks the shadow at 2048, which
// calculatePeriod turns into period 0, silencing the channel with no
// explicit disable flag.
func (ch *squareChannel) stepSweep() {
	if !ch.hasSweep || ch.sweep.period == 0 {
		return
	}

	if ch.sweep.delay > 1 {
		ch.sweep.delay--
		return
	}

	ch.sweep.delay = ch.sweep.period
	ch.frequency = ch.sweep.shadow
	ch.calculatePeriod()

	offset := ch.sweep.shadow >> ch.sweep.shift
	if ch.sweep.adding {
		if ch.sweep.shadow >= 2048-offset {
			ch.sweep.delay = 0
			ch.sweep.shadow = 2048
			log.ModAPU.DebugZ("sweep overflow").Uint16("freq", ch.frequency).End()
		} else {
			ch.sweep.shadow += offset
		}
	} else {
		if ch.sweep.shadow <= offset {
			ch.sweep.shadow = 0
		} else {
			ch.sweep.shadow -= offset
		}
	}
}
