package hw

import (
	"bytes"
	"strings"
	"testing"

	"gbapu/hw/apu"
)

type nullSink struct{}

func (nullSink) SampleRate() int            { return 44100 }
func (nullSink) BufferSize() int            { return 512 }
func (nullSink) Play(left, right []float32) {}

func TestSoundBusRouting(t *testing.T) {
	a := apu.New(nullSink{})
	bus := NewSoundBus(a, nil)

	bus.Write8(apu.NR52, 0x80)
	bus.Write8(apu.NR50, 0x77)
	if got := bus.Read8(apu.NR50, false); got != 0x77 {
		t.Errorf("NR50 read back %02X, want 77", got)
	}
	if got := bus.Peek8(apu.NR50); got != 0x77 {
		t.Errorf("NR50 peek %02X, want 77", got)
	}

	// Power off through the bus: register writes are dropped.
	bus.Write8(apu.NR52, 0x00)
	bus.Write8(apu.NR50, 0x12)
	if got := bus.Read8(apu.NR50, false); got != 0x77 {
		t.Errorf("NR50 after power-off write = %02X, want 77", got)
	}

	// Outside the sound block.
	bus.Write8(0xFF27, 0xFF)
	if got := bus.Read8(0xFF27, false); got != 0 {
		t.Errorf("read outside block = %02X, want 0", got)
	}
}

func TestSoundBusTracer(t *testing.T) {
	var buf bytes.Buffer
	a := apu.New(nullSink{})
	bus := NewSoundBus(a, NewTracer(&buf))

	bus.Write8(apu.NR52, 0x80)
	bus.Write8(apu.NR50, 0x77)
	bus.Read8(apu.NR50, false)
	bus.Peek8(apu.NR50) // peeks are not traced

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d trace lines, want 3:\n%s", len(lines), buf.String())
	}
	want := []string{
		`{"op":"w","addr":65318,"val":128}`,
		`{"op":"w","addr":65316,"val":119}`,
		`{"op":"r","addr":65316,"val":119}`,
	}
	for i, line := range lines {
		if line != want[i] {
			t.Errorf("trace line %d:\ngot  %s\nwant %s", i, line, want[i])
		}
	}
}
