package apu

import "gbapu/hw/hwio"

// sweep is channel 1's frequency sweep state. It works on shadow, a private
// copy of the channel frequency, and only commits it to the live register on
// a sweep tick; squareChannel.stepSweep owns that commit since it also
// recomputes the waveform period.
type sweep struct {
	shadow uint16 // 11-bit working copy; 2048 is the overflow sentinel
	delay  uint8
	period uint8 // 0 disables sweeping
	shift  uint8
	adding bool
}

func (sw *sweep) writeReg(val uint8) {
	sw.period = (val >> 4) & 0x7
	sw.shift = val & 0x7
	sw.adding = hwio.GetBit8(val, 3)
}
