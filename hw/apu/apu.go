package apu

import (
	"github.com/arl/blip"

	"gbapu/emu/log"
	"gbapu/hw/hwio"
)

// ClocksPerSecond is the reference clock the sound unit runs at.
const ClocksPerSecond = 1 << 22

// The frame sequencer fires at 256 Hz, every 16384 clocks.
const sequencerPeriod = ClocksPerSecond / 256

// Sound register addresses, as seen from the system bus.
const (
	NR10 = 0xFF10 // channel 1 sweep
	NR11 = 0xFF11 // channel 1 duty / length load
	NR12 = 0xFF12 // channel 1 volume envelope
	NR13 = 0xFF13 // channel 1 frequency low
	NR14 = 0xFF14 // channel 1 frequency high / trigger
	NR21 = 0xFF16 // channel 2 duty / length load
	NR22 = 0xFF17 // channel 2 volume envelope
	NR23 = 0xFF18 // channel 2 frequency low
	NR24 = 0xFF19 // channel 2 frequency high / trigger
	NR50 = 0xFF24 // master volume left/right
	NR51 = 0xFF25 // per-channel stereo routing
	NR52 = 0xFF26 // master power / channel status
)

// RegisterBase and RegisterBlockSize delimit the register block. Every
// writable byte in [RegisterBase, RegisterBase+RegisterBlockSize) is
// shadowed verbatim for read-back.
const (
	RegisterBase      = NR10
	RegisterBlockSize = NR52 - NR10 + 1
)

// Sink is the audio output device the unit delivers mixed samples to. Play
// may block when the device buffer is full; the unit keeps no backlog of its
// own, so a slow sink stalls the caller.
type Sink interface {
	SampleRate() int
	BufferSize() int // samples per device buffer
	Play(left, right []float32)
}

// APU is the two-voice pulse-wave sound unit. It is driven externally: the
// host clock calls Cycle after every emulated instruction, register accesses
// arrive through Read8/Write8, and Output is called periodically (typically
// once per video frame) to deliver finished audio to the sink.
//
// All of it is single-threaded by contract: clock driver and register
// accessors are the same logical thread.
type APU struct {
	powered bool
	regs    [RegisterBlockSize]uint8

	// Absolute clock counters. nextTime stays a whole number of sequencer
	// periods ahead of prevTime; everything is rebased to zero on flush.
	time     uint32
	prevTime uint32
	nextTime uint32
	seqPhase uint8 // 0..3, selects length/envelope/sweep sub-steps

	ch1 squareChannel
	ch2 squareChannel

	volumeLeft  uint8
	volumeRight uint8

	sink        Sink
	flushPeriod uint32 // device buffer period, in clocks
}

// New creates the sound unit bound to the given output sink. Channel buffers
// are sized for one second of audio at the sink's sample rate.
func New(sink Sink) *APU {
	rate := sink.SampleRate()
	a := &APU{
		ch1:         newSquareChannel(newBlipBuffer(rate), true),
		ch2:         newSquareChannel(newBlipBuffer(rate), false),
		volumeLeft:  7,
		volumeRight: 7,
		nextTime:    sequencerPeriod,
		sink:        sink,
		flushPeriod: uint32(uint64(sink.BufferSize()) * ClocksPerSecond / uint64(rate)),
	}
	return a
}

func newBlipBuffer(sampleRate int) *blip.Buffer {
	buf := blip.NewBuffer(sampleRate)
	buf.SetRates(ClocksPerSecond, float64(sampleRate))
	return buf
}

// Read8 returns the value of the addressed sound register, catching the
// frame sequencer up first so that the status bits reflect all generated
// audio. Out-of-range reads return 0. Peek reads skip the catch-up.
func (a *APU) Read8(addr uint16, peek bool) uint8 {
	if !peek {
		a.run()
	}
	switch {
	case addr >= NR10 && addr < NR52:
		return a.regs[addr-RegisterBase]
	case addr == NR52:
		// Upper nibble reads back as written, low bits are the live
		// per-channel status.
		val := a.regs[addr-RegisterBase] & 0xF0
		if a.ch1.on() {
			hwio.SetBit8(&val, 0)
		}
		if a.ch2.on() {
			hwio.SetBit8(&val, 1)
		}
		return val
	}
	return 0
}

// Write8 stores and decodes a sound register write. While the unit is
// powered off every register but NR52 is read-only. Out-of-range writes are
// dropped.
func (a *APU) Write8(addr uint16, val uint8) {
	if addr != NR52 && !a.powered {
		return
	}
	a.run()

	if addr >= NR10 && addr <= NR52 {
		// Mirror the raw byte before decoding: several bits are write-only
		// in decoded form but must still read back as written.
		a.regs[addr-RegisterBase] = val
	}

	switch {
	case addr >= NR10 && addr <= NR14:
		a.ch1.writeReg(addr, val)
	case addr >= NR21 && addr <= NR24:
		a.ch2.writeReg(addr, val)
	case addr == NR50:
		a.volumeLeft = val & 0x7
		a.volumeRight = (val >> 4) & 0x7
	case addr == NR52:
		a.powered = hwio.GetBit8(val, 7)
		log.ModAPU.InfoZ("write power").Bool("on", a.powered).End()
	}
}

// Cycle advances virtual time by the given number of clocks. A no-op while
// the unit is powered off.
func (a *APU) Cycle(clocks uint32) {
	if !a.powered {
		return
	}
	a.time += clocks
}

// Output delivers pending audio to the sink once at least one device buffer
// period has accumulated, rebasing all clock counters to zero. Called
// unconditionally by the host, typically once per rendered video frame.
func (a *APU) Output() {
	if a.time < a.flushPeriod {
		return
	}
	a.run()
	a.ch1.buf.EndFrame(int(a.prevTime))
	a.ch2.buf.EndFrame(int(a.prevTime))
	a.time -= a.prevTime
	a.nextTime -= a.prevTime
	a.prevTime = 0
	a.mix()
}

// run catches the frame sequencer up to current virtual time. Waveform
// generation only ever covers the span between two sequencer ticks, so
// envelope, sweep and length updates always land on generation boundaries
// (squareChannel.run relies on this).
func (a *APU) run() {
	for a.nextTime <= a.time {
		a.ch1.run(a.prevTime, a.nextTime)
		a.ch2.run(a.prevTime, a.nextTime)

		a.ch1.stepLength()
		a.ch2.stepLength()

		if a.seqPhase == 0 {
			// 64 Hz
			a.ch1.env.step()
			a.ch2.env.step()
		} else if a.seqPhase&1 == 1 {
			// 128 Hz, channel 1 only
			a.ch1.stepSweep()
		}

		a.seqPhase = (a.seqPhase + 1) % 4
		a.prevTime = a.nextTime
		a.nextTime += sequencerPeriod
	}
}

// AddLogContext stamps log lines with the unit's clock, so interleaved
// register traffic can be correlated with generated audio.
func (a *APU) AddLogContext(z *log.EntryZ) {
	z.Uint32("clk", a.time)
}
