package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 5 * time.Minute, "5m0s"},
		{"milliseconds", 100 * time.Millisecond, "100ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Duration{tt.duration}
			result, err := d.MarshalText()

			if err != nil {
				t.Errorf("MarshalText() error = %v", err)
				return
			}

			if string(result) != tt.expected {
				t.Errorf("MarshalText() = %v, want %v", string(result), tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("Audio.SampleRate = %v, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 1 {
		t.Errorf("Audio.Channels = %v, want 1", cfg.Audio.Channels)
	}
	if cfg.STT.Engine != "whisper-cli" {
		t.Errorf("STT.Engine = %v, want whisper-cli", cfg.STT.Engine)
	}
	if cfg.STT.Language != "ru" {
		t.Errorf("STT.Language = %v, want ru", cfg.STT.Language)
	}
	if cfg.STT.Timeout.Duration != 60*time.Second {
		t.Errorf("STT.Timeout = %v, want 60s", cfg.STT.Timeout.Duration)
	}
	if !cfg.VAD.Enabled {
		t.Error("VAD.Enabled = false, want true")
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v, want nil", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[audio]
sample_rate = 48000
min_utterance = "250ms"

[vad]
enabled = false

[stt]
engine = "server"
server_url = "http://localhost:9000"
language = "en"
timeout = "30s"

[history]
enabled = false

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("Audio.SampleRate = %v, want 48000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.MinUtterance.Duration != 250*time.Millisecond {
		t.Errorf("Audio.MinUtterance = %v, want 250ms", cfg.Audio.MinUtterance.Duration)
	}
	// Values absent from the file keep their defaults.
	if cfg.Audio.Channels != 1 {
		t.Errorf("Audio.Channels = %v, want default 1", cfg.Audio.Channels)
	}
	if cfg.VAD.Enabled {
		t.Error("VAD.Enabled = true, want false from file")
	}
	if cfg.STT.Engine != "server" {
		t.Errorf("STT.Engine = %v, want server", cfg.STT.Engine)
	}
	if cfg.STT.ServerURL != "http://localhost:9000" {
		t.Errorf("STT.ServerURL = %v, want http://localhost:9000", cfg.STT.ServerURL)
	}
	if cfg.STT.Language != "en" {
		t.Errorf("STT.Language = %v, want en", cfg.STT.Language)
	}
	if cfg.STT.Timeout.Duration != 30*time.Second {
		t.Errorf("STT.Timeout = %v, want 30s", cfg.STT.Timeout.Duration)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false from file")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("Load() with missing explicit path = nil error, want error")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown engine", "[stt]\nengine = \"banana\"\n"},
		{"server without url", "[stt]\nengine = \"server\"\n"},
		{"bad vad rate", "[audio]\nsample_rate = 44100\n"},
		{"stereo", "[audio]\nchannels = 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() = nil error, want validation error")
			}
		})
	}
}

func TestValidate_VADDisabledAllowsAnyRate(t *testing.T) {
	cfg := Default()
	cfg.VAD.Enabled = false
	cfg.Audio.SampleRate = 44100

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil when vad disabled", err)
	}
}
