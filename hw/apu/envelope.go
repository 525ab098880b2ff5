package apu

import "gbapu/hw/hwio"

// volumeEnvelope ramps a channel's 4-bit volume up or down at 64 Hz. A
// period of 0 pauses the ramp: the delay parks at 0 and never reaches the
// adjust branch again until the next trigger.
type volumeEnvelope struct {
	period  uint8 // clocks (in 64 Hz steps) between volume adjustments
	goesUp  bool
	delay   uint8
	initial uint8
	volume  uint8 // current volume, always in [0,15]
}

// writeReg receives every register write addressed to the owning channel and
// reacts only to the ones the envelope cares about: the envelope control
// byte, and trigger writes.
func (env *volumeEnvelope) writeReg(addr uint16, val uint8) {
	switch {
	case addr == NR12 || addr == NR22:
		env.period = val & 0x7
		env.goesUp = hwio.GetBit8(val, 3)
		env.initial = val >> 4
		env.volume = env.initial
	case (addr == NR14 || addr == NR24) && hwio.GetBit8(val, 7):
		env.delay = env.period
		env.volume = env.initial
	}
}

// step runs one 64 Hz envelope tick.
func (env *volumeEnvelope) step() {
	switch {
	case env.delay > 1:
		env.delay--
	case env.delay == 1:
		env.delay = env.period
		if env.goesUp && env.volume < 15 {
			env.volume++
		} else if !env.goesUp && env.volume > 0 {
			env.volume--
		}
	}
}
