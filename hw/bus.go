package hw

import (
	"gbapu/hw/apu"
	"gbapu/hw/hwio"
)

// NewSoundBus maps the sound register block into an address table at its
// hardware location. Accesses outside the block read back 0 and drop writes.
// A non-nil tracer sees every non-peek access before the unit does.
func NewSoundBus(a *apu.APU, tr *Tracer) *hwio.Table {
	tbl := hwio.NewTable("snd")
	tbl.MapDevice(apu.RegisterBase, &hwio.Device{
		Name: "apu",
		Size: apu.RegisterBlockSize,
		ReadCb: func(addr uint16) uint8 {
			val := a.Read8(addr, false)
			tr.Read(addr, val)
			return val
		},
		PeekCb: func(addr uint16) uint8 {
			return a.Read8(addr, true)
		},
		WriteCb: func(addr uint16, val uint8) {
			tr.Write(addr, val)
			a.Write8(addr, val)
		},
	})
	return tbl
}
