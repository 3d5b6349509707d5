// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     stt
// Description: Speech-to-text engine interface
// Author:      Oleg Nassikanov
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package stt

import (
	"context"
	"fmt"
	"time"

	"github.com/OlegNassikanov/voice-agent/internal/logging"
)

// Engine names accepted by New.
const (
	EngineWhisperCLI = "whisper-cli"
	EngineServer     = "server"
	EngineWebSocket  = "websocket"
	EngineMock       = "mock"
)

// Transcriber is the interface for speech-to-text engines.
type Transcriber interface {
	// Transcribe converts audio samples to text. The prompt primes the
	// engine with expected vocabulary and spelling; empty means no
	// priming. A non-nil error reports an engine failure, an empty
	// Text with nil error means the engine heard nothing.
	Transcribe(ctx context.Context, samples []float32, prompt string) (Result, error)

	// Close releases resources.
	Close() error
}

// Result holds the transcription result.
type Result struct {
	// Text is the transcribed text.
	Text string

	// Language is the transcription language.
	Language string

	// Confidence is the confidence score (0-1).
	Confidence float32

	// Duration is the audio duration in seconds.
	Duration float32
}

// Config holds engine configuration.
type Config struct {
	// Engine selects the implementation (see the Engine constants).
	Engine string

	// Command is the recognizer command line for the whisper-cli engine.
	Command string

	// ModelPath is the path to the model file.
	ModelPath string

	// Language is the target language (e.g., "ru", "en", "auto").
	Language string

	// ServerURL is the endpoint for the server and websocket engines.
	ServerURL string

	// SampleRate is the audio sample rate of the capture pipeline.
	SampleRate int

	// Timeout bounds a single recognition request.
	Timeout time.Duration

	// MaxRetries is how often transient server failures are retried.
	MaxRetries int
}

// DefaultConfig returns default engine configuration.
func DefaultConfig() Config {
	return Config{
		Engine:     EngineWhisperCLI,
		Command:    "whisper-cli",
		Language:   "ru",
		SampleRate: 16000,
		Timeout:    60 * time.Second,
		MaxRetries: 3,
	}
}

// New creates the engine selected by cfg.Engine.
func New(cfg Config, log *logging.Logger) (Transcriber, error) {
	switch cfg.Engine {
	case EngineWhisperCLI, "":
		return NewWhisperCLI(cfg, log)
	case EngineServer:
		return NewWhisperServer(cfg, log), nil
	case EngineWebSocket:
		return NewWhisperSocket(cfg, log), nil
	case EngineMock:
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown stt engine: %s", cfg.Engine)
	}
}
