// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Binds the voice profile's context to every transcription
// Author:      Oleg Nassikanov
// Created:     2026-08-19
// License:     MIT
// ============================================================================

package calibration

import (
	"context"

	"github.com/OlegNassikanov/voice-agent/internal/stt"
)

// ContextBinder wraps a speech engine and primes every request with the
// calibrated context string. Whether it is the first call or the hundredth,
// a whole take or one fragment of it, the engine sees the same context.
type ContextBinder struct {
	engine  stt.Transcriber
	context string
}

// NewContextBinder builds a binder from the loaded profile. A nil profile
// leaves the context empty, which disables priming without changing the
// call path.
func NewContextBinder(engine stt.Transcriber, profile *VoiceProfile) *ContextBinder {
	binder := &ContextBinder{engine: engine}
	if profile != nil {
		binder.context = profile.ContextString
	}
	return binder
}

// Context returns the string passed to the engine on every call.
func (b *ContextBinder) Context() string {
	return b.context
}

// Transcribe runs the engine with the bound context as prompt.
func (b *ContextBinder) Transcribe(ctx context.Context, samples []float32) (stt.Result, error) {
	return b.engine.Transcribe(ctx, samples, b.context)
}
