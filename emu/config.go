package emu

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"sidplay/emu/log"
	"sidplay/hw"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"
)

type Config struct {
	CPU      CPUConfig      `toml:"cpu"`
	Playback PlaybackConfig `toml:"playback"`
	Log      LogConfig      `toml:"log"`
}

type CPUConfig struct {
	MaxInstructions uint64 `toml:"max_instructions"`
	MaxCycles       uint64 `toml:"max_cycles"`
}

// Limits returns the CPU limits for init and play routines. Routines are
// always bounded: if both limits are 0, hw.DefaultLimits is returned.
func (cfg CPUConfig) Limits() hw.Limits {
	if cfg.MaxInstructions == 0 && cfg.MaxCycles == 0 {
		log.ModEmu.Warnf("no cpu limits configured, using defaults")
		return hw.DefaultLimits
	}
	return hw.Limits{
		MaxInstructions: cfg.MaxInstructions,
		MaxCycles:       cfg.MaxCycles,
	}
}

type PlaybackConfig struct {
	DefaultSong int `toml:"default_song"` // 0-based, -1 for the file start song
	TickRate    int `toml:"tick_rate"`    // Hz, 0 to follow the file
	Frames      int `toml:"frames"`       // number of frames dumped by default
}

type LogConfig struct {
	Modules []string `toml:"modules"`
	JSON    bool     `toml:"json"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		CPU: CPUConfig{
			MaxInstructions: hw.DefaultLimits.MaxInstructions,
			MaxCycles:       hw.DefaultLimits.MaxCycles,
		},
		Playback: PlaybackConfig{
			DefaultSong: DefaultSong,
			Frames:      50 * 10,
		},
	}
}

// ConfigDir returns the sidplay config directory, creating it if needed.
var ConfigDir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("sidplay")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Warnf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// DefaultConfigPath returns the path of the config file in ConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfigOrDefault loads the configuration at path, falling back to
// DefaultConfigPath if path is empty. Settings missing from the file keep
// their default value. A missing file is not an error.
func LoadConfigOrDefault(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		log.ModEmu.Warnf("%s: unknown config keys %v", path, undec)
	}
	return cfg, nil
}

// SaveConfig writes cfg at path, or DefaultConfigPath if path is empty.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}
