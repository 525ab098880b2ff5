package hw

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
)

func TestConfigRoundTrip(t *testing.T) {
	cfg := Config{
		Audio: AudioConfig{
			SampleRate: 44100,
			BufferSize: 1024,
			TracePath:  "/tmp/apu-trace.jsonl",
		},
	}

	buf, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var got Config
	if err := toml.Unmarshal(buf, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Audio.SampleRate <= 0 {
		t.Errorf("default sample rate %d, want > 0", cfg.Audio.SampleRate)
	}
	if cfg.Audio.BufferSize <= 0 {
		t.Errorf("default buffer size %d, want > 0", cfg.Audio.BufferSize)
	}
	if cfg.Audio.TracePath != "" {
		t.Errorf("default trace path %q, want empty", cfg.Audio.TracePath)
	}
}
