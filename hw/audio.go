package hw

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"gbapu/emu/log"
)

const (
	AudioFormat   = sdl.AUDIO_F32SYS
	AudioChannels = 2
)

// Audio is the SDL2 output device. It implements apu.Sink: the mixer hands
// it equal-length left/right float runs, which are interleaved and queued on
// the device.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	outbuf []float32 // interleave scratch
}

// NewAudio opens the default audio device. The device is free to pick a
// different sample rate than the configured one; the negotiated rate is what
// the sound unit resamples to. Failure to open or negotiate is not fatal for
// the host: it just runs without sound.
func NewAudio(cfg AudioConfig) (*Audio, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("audio init: %w", err)
	}

	want := sdl.AudioSpec{
		Freq:     int32(cfg.SampleRate),
		Format:   AudioFormat,
		Channels: AudioChannels,
		Samples:  uint16(cfg.BufferSize),
	}
	var have sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, &want, &have, sdl.AUDIO_ALLOW_FREQUENCY_CHANGE)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, fmt.Errorf("audio device: %w", err)
	}
	if have.Format != AudioFormat || have.Channels != AudioChannels {
		sdl.CloseAudioDevice(id)
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, fmt.Errorf("audio device: unusable format %#x/%d channels", have.Format, have.Channels)
	}

	log.ModAudio.InfoZ("audio device open").
		Int("rate", int(have.Freq)).
		Int("buffer", int(have.Samples)).
		End()

	sdl.PauseAudioDevice(id, false)

	return &Audio{
		id:     id,
		spec:   have,
		outbuf: make([]float32, 2*int(have.Samples)),
	}, nil
}

func (aud *Audio) SampleRate() int { return int(aud.spec.Freq) }
func (aud *Audio) BufferSize() int { return int(aud.spec.Samples) }

// Play queues one run of samples on the device.
func (aud *Audio) Play(left, right []float32) {
	if len(left) != len(right) {
		panic("audio: left/right runs of different lengths")
	}
	if len(left) == 0 {
		return
	}

	if cap(aud.outbuf) < 2*len(left) {
		aud.outbuf = make([]float32, 2*len(left))
	}
	out := aud.outbuf[:2*len(left)]
	for i := range left {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}

	buf := unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(out)*4)
	if err := sdl.QueueAudio(aud.id, buf); err != nil {
		log.ModAudio.DebugZ("failed to queue audio buffer").Error("err", err).End()
	}
}

func (aud *Audio) Close() {
	sdl.CloseAudioDevice(aud.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
}
