// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     audio
// Description: Audio buffer utilities
// Author:      Oleg Nassikanov
// Created:     2026-08-11
// License:     MIT
// ============================================================================

package audio

import (
	"sync"
)

// Buffer is a growing buffer for collecting audio samples while a capture
// is running. It is safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	samples []float32
}

// NewBuffer creates a new audio buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		samples: make([]float32, 0, 16000*10), // Pre-allocate for ~10 seconds at 16kHz
	}
}

// Append adds samples to the buffer.
func (b *Buffer) Append(samples []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = append(b.samples, samples...)
}

// Samples returns a copy of everything collected so far.
func (b *Buffer) Samples() []float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]float32, len(b.samples))
	copy(result, b.samples)
	return result
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// DurationSeconds returns the duration in seconds at the given sample rate.
func (b *Buffer) DurationSeconds(sampleRate float64) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return float64(len(b.samples)) / sampleRate
}

// Clear discards all collected samples but keeps the allocation.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}
