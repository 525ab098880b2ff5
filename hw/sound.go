package hw

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gbapu/emu/log"
	"gbapu/hw/apu"
	"gbapu/hw/hwio"
)

// Sound bundles the sound unit with its output device and register bus.
// This is the piece a host machine embeds: Bus goes on the memory map,
// Cycle is called with elapsed clocks after every emulated instruction, and
// Output once per rendered video frame.
type Sound struct {
	APU *apu.APU
	Bus *hwio.Table

	out      *Audio
	traceOut io.WriteCloser
}

// ErrDisabled is returned by NewSound when audio is disabled by
// configuration. Hosts treat it like an unavailable device.
var ErrDisabled = errors.New("audio disabled by configuration")

// NewSound opens the output device and wires the unit to it. An unavailable
// device is a soft failure: the host gets an error and runs without sound.
func NewSound(cfg AudioConfig) (*Sound, error) {
	if cfg.Disabled {
		return nil, ErrDisabled
	}
	out, err := NewAudio(cfg)
	if err != nil {
		return nil, fmt.Errorf("no audio device: %w", err)
	}

	snd := &Sound{
		APU: apu.New(out),
		out: out,
	}

	var tr *Tracer
	if cfg.TracePath != "" {
		f, err := os.Create(cfg.TracePath)
		if err != nil {
			log.ModAudio.WarnZ("cannot create trace file").
				String("path", cfg.TracePath).
				Error("err", err).
				End()
		} else {
			snd.traceOut = f
			tr = NewTracer(f)
		}
	}
	snd.Bus = NewSoundBus(snd.APU, tr)

	log.AddContext(snd.APU)
	return snd, nil
}

// Cycle advances the unit by the given number of clocks.
func (s *Sound) Cycle(clocks uint32) {
	s.APU.Cycle(clocks)
}

// Output flushes finished audio to the device, if a full buffer period has
// accumulated.
func (s *Sound) Output() {
	s.APU.Output()
}

func (s *Sound) Close() {
	if s.traceOut != nil {
		s.traceOut.Close()
	}
	s.out.Close()
}
