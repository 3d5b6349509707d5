// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Voice profile and context derivation
// Author:      Oleg Nassikanov
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package calibration

import (
	"fmt"
	"strings"
	"time"
)

// VoiceProfile is the durable result of calibration: what the recognizer
// heard for each phrase, plus the context string derived from it.
type VoiceProfile struct {
	// PhraseTranscripts holds the recognizer output per phrase, in phrase
	// order. Always exactly PhraseCount entries.
	PhraseTranscripts []string `json:"phrase_transcripts"`

	// ContextString primes the recognizer during dictation.
	ContextString string `json:"context_string"`

	// CreatedAt is when calibration finished.
	CreatedAt time.Time `json:"created_at"`
}

// DeriveContext joins transcripts into the priming string. Same
// transcripts, same context: no trimming, reordering or length cap.
func DeriveContext(transcripts []string) string {
	return strings.Join(transcripts, " ")
}

// NewVoiceProfile builds a profile from exactly PhraseCount transcripts.
func NewVoiceProfile(transcripts []string, createdAt time.Time) (*VoiceProfile, error) {
	if len(transcripts) != PhraseCount {
		return nil, fmt.Errorf("profile needs %d transcripts, got %d", PhraseCount, len(transcripts))
	}

	ts := make([]string, PhraseCount)
	copy(ts, transcripts)

	return &VoiceProfile{
		PhraseTranscripts: ts,
		ContextString:     DeriveContext(ts),
		CreatedAt:         createdAt.UTC(),
	}, nil
}
