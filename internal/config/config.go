package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration
type Config struct {
	Audio   AudioConfig   `toml:"audio"`
	VAD     VADConfig     `toml:"vad"`
	STT     STTConfig     `toml:"stt"`
	Profile ProfileConfig `toml:"profile"`
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
}

// AudioConfig holds microphone capture settings
type AudioConfig struct {
	SampleRate      int      `toml:"sample_rate"`
	Channels        int      `toml:"channels"`
	FramesPerBuffer int      `toml:"frames_per_buffer"`
	Device          string   `toml:"device"`
	MinUtterance    Duration `toml:"min_utterance"`
}

// VADConfig holds voice activity detection settings
type VADConfig struct {
	Enabled bool     `toml:"enabled"`
	Mode    int      `toml:"mode"`
	Padding Duration `toml:"padding"`
}

// STTConfig holds speech recognition engine settings
type STTConfig struct {
	Engine     string   `toml:"engine"`
	Command    string   `toml:"command"`
	ModelPath  string   `toml:"model_path"`
	Language   string   `toml:"language"`
	ServerURL  string   `toml:"server_url"`
	Timeout    Duration `toml:"timeout"`
	MaxRetries int      `toml:"max_retries"`
}

// ProfileConfig holds voice profile storage settings
type ProfileConfig struct {
	Path string `toml:"path"`
}

// HistoryConfig holds transcription history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level      string `toml:"level"`
	Dir        string `toml:"dir"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:      16000,
			Channels:        1,
			FramesPerBuffer: 512,
			MinUtterance:    Duration{time.Second},
		},
		VAD: VADConfig{
			Enabled: true,
			Mode:    2,
			Padding: Duration{100 * time.Millisecond},
		},
		STT: STTConfig{
			Engine:     "whisper-cli",
			Command:    "whisper-cli",
			Language:   "ru",
			Timeout:    Duration{60 * time.Second},
			MaxRetries: 3,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  32,
			MaxBackups: 2,
		},
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "voice-agent", "config.toml")
}

// Load reads configuration from a TOML file, layered over the defaults.
// An empty path probes the default locations; a missing file is not an
// error and yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, p := range []string{"./config.toml", DefaultPath()} {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	} else {
		path = os.ExpandEnv(path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults resets zeroed fields that have no meaningful zero value
func (c *Config) applyDefaults() {
	d := Default()

	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = d.Audio.SampleRate
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = d.Audio.Channels
	}
	if c.Audio.FramesPerBuffer == 0 {
		c.Audio.FramesPerBuffer = d.Audio.FramesPerBuffer
	}
	if c.Audio.MinUtterance.Duration == 0 {
		c.Audio.MinUtterance = d.Audio.MinUtterance
	}

	if c.VAD.Padding.Duration == 0 {
		c.VAD.Padding = d.VAD.Padding
	}

	if c.STT.Engine == "" {
		c.STT.Engine = d.STT.Engine
	}
	if c.STT.Command == "" {
		c.STT.Command = d.STT.Command
	}
	if c.STT.Language == "" {
		c.STT.Language = d.STT.Language
	}
	if c.STT.Timeout.Duration == 0 {
		c.STT.Timeout = d.STT.Timeout
	}
	if c.STT.MaxRetries == 0 {
		c.STT.MaxRetries = d.STT.MaxRetries
	}

	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = d.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = d.Logging.MaxBackups
	}
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	switch c.STT.Engine {
	case "whisper-cli", "server", "websocket", "mock":
	default:
		return fmt.Errorf("unknown stt engine %q", c.STT.Engine)
	}

	if c.STT.Engine == "server" || c.STT.Engine == "websocket" {
		if c.STT.ServerURL == "" {
			return fmt.Errorf("stt engine %q requires server_url", c.STT.Engine)
		}
	}

	if c.VAD.Enabled {
		switch c.Audio.SampleRate {
		case 8000, 16000, 32000, 48000:
		default:
			return fmt.Errorf("vad requires a sample rate of 8000, 16000, 32000 or 48000, got %d", c.Audio.SampleRate)
		}
		if c.VAD.Mode < 0 || c.VAD.Mode > 3 {
			return fmt.Errorf("vad mode must be between 0 and 3, got %d", c.VAD.Mode)
		}
	}

	if c.Audio.Channels != 1 {
		return fmt.Errorf("only mono capture is supported, got %d channels", c.Audio.Channels)
	}

	return nil
}
