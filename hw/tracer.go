package hw

import (
	"io"

	"github.com/go-faster/jx"
)

// Tracer records register accesses as one JSON object per line, for
// debugging register-level driver code against a known-good log. A nil
// Tracer is valid and records nothing.
type Tracer struct {
	w   io.Writer
	enc jx.Encoder
}

func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

func (t *Tracer) Write(addr uint16, val uint8) { t.trace("w", addr, val) }
func (t *Tracer) Read(addr uint16, val uint8)  { t.trace("r", addr, val) }

func (t *Tracer) trace(op string, addr uint16, val uint8) {
	if t == nil {
		return
	}
	t.enc.Reset()
	t.enc.ObjStart()
	t.enc.FieldStart("op")
	t.enc.Str(op)
	t.enc.FieldStart("addr")
	t.enc.Int(int(addr))
	t.enc.FieldStart("val")
	t.enc.Int(int(val))
	t.enc.ObjEnd()

	// Trace output is best effort.
	t.w.Write(append(t.enc.Bytes(), '\n'))
}
