// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     vad
// Description: WebRTC VAD implementation
// Author:      Oleg Nassikanov
// Created:     2026-08-12
// License:     MIT
// ============================================================================

package vad

import (
	"fmt"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

// WebRTC implements speech classification using WebRTC's VAD
type WebRTC struct {
	vad        *webrtcvad.VAD
	sampleRate int
	mode       int
}

// NewWebRTC creates a new WebRTC VAD instance
func NewWebRTC(cfg Config) (*WebRTC, error) {
	v, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create WebRTC VAD: %w", err)
	}

	mode := cfg.Mode
	if mode < 0 {
		mode = 0
	}
	if mode > 3 {
		mode = 3
	}
	if err := v.SetMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set VAD mode: %w", err)
	}

	switch cfg.SampleRate {
	case 8000, 16000, 32000, 48000:
	default:
		return nil, fmt.Errorf("invalid sample rate %d, must be 8000, 16000, 32000 or 48000", cfg.SampleRate)
	}

	return &WebRTC{
		vad:        v,
		sampleRate: cfg.SampleRate,
		mode:       mode,
	}, nil
}

// IsSpeech classifies one 10ms frame of float32 samples
func (w *WebRTC) IsSpeech(frame []float32) (bool, error) {
	frameSize := w.FrameSize()

	int16Samples := make([]int16, frameSize)
	for i, s := range frame {
		if i >= frameSize {
			break
		}
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		int16Samples[i] = int16(s * 32767)
	}

	active, err := w.vad.Process(w.sampleRate, int16ToBytes(int16Samples))
	if err != nil {
		return false, fmt.Errorf("VAD processing failed: %w", err)
	}

	return active, nil
}

// FrameSize returns the sample count of a 10ms frame at the configured rate
func (w *WebRTC) FrameSize() int {
	return w.sampleRate / 100
}

// int16ToBytes converts int16 samples to bytes (little-endian)
func int16ToBytes(samples []int16) []byte {
	bytes := make([]byte, len(samples)*2)
	for i, s := range samples {
		bytes[i*2] = byte(s)
		bytes[i*2+1] = byte(s >> 8)
	}
	return bytes
}

// Close releases resources
func (w *WebRTC) Close() error {
	// The WebRTC VAD has no explicit cleanup
	return nil
}

// Mode returns the current aggressiveness mode
func (w *WebRTC) Mode() int {
	return w.mode
}

// SampleRate returns the sample rate
func (w *WebRTC) SampleRate() int {
	return w.sampleRate
}
