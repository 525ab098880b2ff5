package hw

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"gbapu/emu/log"
)

type Config struct {
	Audio AudioConfig `toml:"audio"`
}

type AudioConfig struct {
	// Disabled skips opening the audio device; the host runs without sound.
	Disabled bool `toml:"disabled"`

	SampleRate int `toml:"sample_rate"`
	BufferSize int `toml:"buffer_size"`

	// TracePath, when set, receives a JSON log of all register accesses.
	TracePath string `toml:"trace_path"`
}

func DefaultConfig() Config {
	return Config{
		Audio: AudioConfig{
			SampleRate: 48000,
			BufferSize: 2048,
		},
	}
}

var ConfigDir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("gbapu")
	if err := configdir.MakePath(dir); err != nil {
		log.ModAudio.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the config directory, or
// provides the default one.
func LoadConfigOrDefault() Config {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(filepath.Join(ConfigDir(), cfgFilename), &cfg); err != nil {
		return DefaultConfig()
	}
	if cfg.Audio.SampleRate <= 0 || cfg.Audio.BufferSize <= 0 {
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into the config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(ConfigDir(), cfgFilename), buf, 0644)
}
