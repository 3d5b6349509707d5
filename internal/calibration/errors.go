// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Calibration error kinds
// Author:      Oleg Nassikanov
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package calibration

import "errors"

// Error kinds of the calibration flow. Callers discriminate with errors.Is;
// the concrete cause is folded into the message.
var (
	// ErrCaptureFailed means the microphone could not deliver a take.
	// The phrase is offered again.
	ErrCaptureFailed = errors.New("audio capture failed")

	// ErrEngineFailed means the recognizer failed on a finished take.
	// The phrase is offered again.
	ErrEngineFailed = errors.New("speech recognition failed")

	// ErrPhraseAborted means the speaker cancelled the current phrase.
	// The phrase is offered again.
	ErrPhraseAborted = errors.New("phrase recording cancelled")

	// ErrAborted means the speaker abandoned calibration entirely.
	// Nothing is kept.
	ErrAborted = errors.New("calibration abandoned")

	// ErrNoProfile means no stored profile exists at the configured path.
	ErrNoProfile = errors.New("voice profile not found")

	// ErrCorruptProfile means a stored profile exists but cannot be
	// trusted. It is treated like no profile at all.
	ErrCorruptProfile = errors.New("voice profile is corrupt")

	// ErrSaveFailed means a freshly built profile could not be written.
	// The in-memory profile stays usable for the session.
	ErrSaveFailed = errors.New("voice profile could not be saved")
)
