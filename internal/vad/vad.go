// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     vad
// Description: Voice activity detection interface
// Author:      Oleg Nassikanov
// Created:     2026-08-12
// License:     MIT
// ============================================================================

package vad

// Detector classifies short audio frames as speech or non-speech.
type Detector interface {
	// IsSpeech classifies one frame of float32 samples. The frame must be
	// exactly FrameSize() samples long; shorter frames are zero-padded.
	IsSpeech(frame []float32) (bool, error)

	// FrameSize returns the number of samples in one 10ms frame.
	FrameSize() int

	// Close releases resources
	Close() error
}

// Config holds VAD configuration
type Config struct {
	// SampleRate is the audio sample rate (8000, 16000, 32000, or 48000)
	SampleRate int

	// Mode is the aggressiveness (0-3, higher filters more non-speech)
	Mode int
}

// DefaultConfig returns default VAD configuration
func DefaultConfig() Config {
	return Config{
		SampleRate: 16000,
		Mode:       2,
	}
}
