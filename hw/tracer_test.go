package hw

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTracerOutput(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)

	tr.Write(0xFF11, 0x80)
	tr.Read(0xFF26, 0xF3)

	want := `{"op":"w","addr":65297,"val":128}
{"op":"r","addr":65318,"val":243}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("trace output mismatch (-want +got):\n%s", diff)
	}
}

func TestTracerNil(t *testing.T) {
	var tr *Tracer

	// A nil tracer must be a no-op, not a crash.
	tr.Write(0xFF11, 0x80)
	tr.Read(0xFF26, 0xF3)
}
