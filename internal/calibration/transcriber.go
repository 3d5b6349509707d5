// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Turns a calibration take into a cleaned transcript
// Author:      Oleg Nassikanov
// Created:     2026-08-19
// License:     MIT
// ============================================================================

package calibration

import (
	"context"
	"fmt"
	"strings"

	"github.com/OlegNassikanov/voice-agent/internal/audio"
	"github.com/OlegNassikanov/voice-agent/internal/stt"
)

// PhraseTranscriber recognizes a single calibration take. Calibration runs
// unprimed: the profile does not exist yet, and priming the engine with the
// expected phrase would let it parrot the prompt instead of hearing the
// speaker.
type PhraseTranscriber struct {
	engine    stt.Transcriber
	processor *audio.Processor
}

// NewPhraseTranscriber builds a transcriber. The processor may be nil, in
// which case takes go to the engine untouched.
func NewPhraseTranscriber(engine stt.Transcriber, processor *audio.Processor) *PhraseTranscriber {
	return &PhraseTranscriber{engine: engine, processor: processor}
}

// Transcribe recognizes one take and returns the trimmed transcript. An
// empty string with a nil error means the engine genuinely heard nothing;
// an engine failure is reported as ErrEngineFailed so callers can offer a
// retry.
func (t *PhraseTranscriber) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if t.processor != nil {
		samples = t.processor.Process(samples)
	}
	if len(samples) == 0 {
		return "", nil
	}

	res, err := t.engine.Transcribe(ctx, samples, "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineFailed, err)
	}
	return strings.TrimSpace(res.Text), nil
}
