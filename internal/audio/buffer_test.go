// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     audio
// Description: Tests for audio buffer utilities
// Author:      Oleg Nassikanov
// Created:     2026-08-11
// License:     MIT
// ============================================================================

package audio

import (
	"testing"
)

// TestBuffer_AppendAndSamples tests collecting samples and copy semantics.
func TestBuffer_AppendAndSamples(t *testing.T) {
	b := NewBuffer()

	b.Append([]float32{0.1, 0.2})
	b.Append([]float32{0.3})

	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}

	got := b.Samples()
	want := []float32{0.1, 0.2, 0.3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Samples()[%d] = %f, want %f", i, got[i], want[i])
		}
	}

	// The returned slice must be a copy.
	got[0] = 99
	if again := b.Samples(); again[0] != 0.1 {
		t.Errorf("Samples() shares memory with caller: got %f, want 0.1", again[0])
	}
}

// TestBuffer_DurationSeconds tests duration accounting.
func TestBuffer_DurationSeconds(t *testing.T) {
	b := NewBuffer()
	b.Append(make([]float32, 16000))

	if got := b.DurationSeconds(16000); got != 1.0 {
		t.Errorf("DurationSeconds(16000) = %f, want 1.0", got)
	}
}

// TestBuffer_Clear tests that Clear discards collected samples.
func TestBuffer_Clear(t *testing.T) {
	b := NewBuffer()
	b.Append([]float32{0.5, 0.5})

	b.Clear()

	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", b.Len())
	}
}
