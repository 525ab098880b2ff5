package hwio

import (
	"fmt"

	"gbapu/emu/log"
)

// log unmapped accesses (useful for debugging but verbose since hosts probe
// freely around the sound block)
const logUnmapped = false

type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/tracing).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

func Write16(b BankIO8, addr uint16, val uint16) {
	lo := uint8(val & 0xff)
	hi := uint8(val >> 8)
	b.Write8(addr, lo)
	b.Write8(addr+1, hi)
}

func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, false)
	hi := b.Read8(addr+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

type mapping struct {
	begin, end uint16 // inclusive
	io         BankIO8
}

// Table routes 8-bit accesses over an address space to the devices and
// registers mapped into it. Lookup is a linear scan: a sound unit maps a
// handful of ranges, nothing that justifies a smarter structure.
type Table struct {
	Name string

	mappings []mapping
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	return t
}

func (t *Table) Reset() {
	t.mappings = t.mappings[:0]
}

func (t *Table) mapBus8(begin, end uint16, io BankIO8) {
	for _, m := range t.mappings {
		if begin <= m.end && m.begin <= end {
			panic(fmt.Sprintf("hwio: [%04x,%04x] overlaps existing mapping [%04x,%04x] on bus %s",
				begin, end, m.begin, m.end, t.Name))
		}
	}
	t.mappings = append(t.mappings, mapping{begin: begin, end: end, io: io})
}

func (t *Table) MapReg8(addr uint16, reg *Reg8) {
	t.mapBus8(addr, addr, reg)
}

func (t *Table) MapDevice(addr uint16, d *Device) {
	log.ModHwIo.DebugZ("mapping device").
		Hex16("addr", addr).
		Hex16("size", uint16(d.Size)).
		String("area", d.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, addr+uint16(d.Size)-1, d)
}

func (t *Table) Unmap(begin, end uint16) {
	filtered := t.mappings[:0]
	for _, m := range t.mappings {
		if m.end < begin || m.begin > end {
			filtered = append(filtered, m)
		}
	}
	t.mappings = filtered
}

func (t *Table) search(addr uint16) BankIO8 {
	for _, m := range t.mappings {
		if m.begin <= addr && addr <= m.end {
			return m.io
		}
	}
	return nil
}

// Read8 searches in the table for the device mapped at the given address and
// forwards the read to it. Accesses to unmapped addresses read back 0.
func (t *Table) Read8(addr uint16, peek bool) uint8 {
	io := t.search(addr)
	if io == nil {
		if logUnmapped && !peek {
			log.ModHwIo.ErrorZ("unmapped Read8").
				String("name", t.Name).
				Hex16("addr", addr).
				End()
		}
		return 0
	}
	return io.Read8(addr, peek)
}

// Peek8 is a convenience function.
func (t *Table) Peek8(addr uint16) uint8 {
	return t.Read8(addr, true)
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.search(addr)
	if io == nil {
		if logUnmapped {
			log.ModHwIo.ErrorZ("unmapped Write8").
				String("name", t.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	io.Write8(addr, val)
}
