package hwio

import "testing"

func TestTableMapping(t *testing.T) {
	tbl := NewTable("bus")

	reg := &Reg8{Value: 0x42}
	tbl.MapReg8(0x2001, reg)

	mem := make([]uint8, 0x10)
	tbl.MapDevice(0x3000, &Device{
		Name:    "mem",
		Size:    len(mem),
		ReadCb:  func(addr uint16) uint8 { return mem[addr-0x3000] },
		PeekCb:  func(addr uint16) uint8 { return mem[addr-0x3000] },
		WriteCb: func(addr uint16, val uint8) { mem[addr-0x3000] = val },
	})

	if got := tbl.Read8(0x2001, false); got != 0x42 {
		t.Errorf("Read8(2001) = %02X, want 42", got)
	}
	tbl.Write8(0x2001, 0x99)
	if reg.Value != 0x99 {
		t.Errorf("reg value = %02X, want 99", reg.Value)
	}

	tbl.Write8(0x300F, 0x12)
	if got := tbl.Read8(0x300F, false); got != 0x12 {
		t.Errorf("Read8(300F) = %02X, want 12", got)
	}
	if got := tbl.Peek8(0x300F); got != 0x12 {
		t.Errorf("Peek8(300F) = %02X, want 12", got)
	}

	// Unmapped addresses read 0 and drop writes.
	tbl.Write8(0x4000, 0xFF)
	if got := tbl.Read8(0x4000, false); got != 0 {
		t.Errorf("Read8(4000) = %02X, want 0", got)
	}
	if got := tbl.Read8(0x3010, false); got != 0 {
		t.Errorf("Read8(3010) = %02X, want 0 (one past the device)", got)
	}
}

func TestTable16BitAccess(t *testing.T) {
	tbl := NewTable("bus")

	mem := make([]uint8, 0x10)
	tbl.MapDevice(0x3000, &Device{
		Name:    "mem",
		Size:    len(mem),
		ReadCb:  func(addr uint16) uint8 { return mem[addr-0x3000] },
		WriteCb: func(addr uint16, val uint8) { mem[addr-0x3000] = val },
	})

	Write16(tbl, 0x3002, 0xBEEF)
	if mem[2] != 0xEF || mem[3] != 0xBE {
		t.Errorf("Write16 stored %02X %02X, want EF BE", mem[2], mem[3])
	}
	if got := Read16(tbl, 0x3002); got != 0xBEEF {
		t.Errorf("Read16 = %04X, want BEEF", got)
	}
}

func TestTableOverlapPanics(t *testing.T) {
	tbl := NewTable("bus")
	tbl.MapDevice(0x100, &Device{Name: "a", Size: 0x10})

	defer func() {
		if recover() == nil {
			t.Error("overlapping mapping did not panic")
		}
	}()
	tbl.MapReg8(0x10F, &Reg8{})
}

func TestTableUnmap(t *testing.T) {
	tbl := NewTable("bus")
	reg := &Reg8{Value: 0x42}
	tbl.MapReg8(0x2001, reg)

	tbl.Unmap(0x2000, 0x2010)
	if got := tbl.Read8(0x2001, false); got != 0 {
		t.Errorf("Read8 after Unmap = %02X, want 0", got)
	}

	// The range is free again.
	tbl.MapReg8(0x2001, reg)
	if got := tbl.Read8(0x2001, false); got != 0x42 {
		t.Errorf("Read8 after remap = %02X, want 42", got)
	}
}
