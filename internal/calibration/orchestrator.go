// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Drives the six-phrase calibration flow
// Author:      Oleg Nassikanov
// Created:     2026-08-19
// License:     MIT
// ============================================================================

package calibration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OlegNassikanov/voice-agent/internal/logging"
	"github.com/OlegNassikanov/voice-agent/internal/terminal"
)

// Transcriber recognizes a single take. An empty string with a nil error
// means nothing was heard.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32) (string, error)
}

// Orchestrator walks the user through all calibration phrases in order and
// assembles the voice profile. Nothing is persisted here: the caller
// receives the finished profile and decides where it goes.
type Orchestrator struct {
	term     terminal.Terminal
	recorder Recorder
	engine   Transcriber
	log      *logging.Logger
	now      func() time.Time
}

// NewOrchestrator wires the calibration flow together.
func NewOrchestrator(term terminal.Terminal, recorder Recorder, engine Transcriber, log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		term:     term,
		recorder: recorder,
		engine:   engine,
		log:      log,
		now:      time.Now,
	}
}

// Run performs the full calibration. Every phrase must yield a usable
// transcript before the next one is offered; a failed or cancelled take
// re-offers the same phrase. Quitting abandons the run with ErrAborted and
// no profile.
func (o *Orchestrator) Run(ctx context.Context) (*VoiceProfile, error) {
	transcripts := make([]string, 0, PhraseCount)
	for i, phrase := range Phrases() {
		text, err := o.collectPhrase(ctx, i, phrase)
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, text)
	}

	profile, err := NewVoiceProfile(transcripts, o.now())
	if err != nil {
		return nil, err
	}
	o.log.Info("calibration complete", "phrases", PhraseCount)
	return profile, nil
}

// collectPhrase records and recognizes one phrase, retrying until it has a
// non-empty transcript or the user quits.
func (o *Orchestrator) collectPhrase(ctx context.Context, index int, phrase string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrAborted, err)
		}

		o.term.ShowPrompt(fmt.Sprintf(
			"Phrase %d of %d\n\nHold the microphone 15-20 cm away and read aloud:\n\n%s",
			index+1, PhraseCount, phrase))

		session := NewSession(o.term, o.recorder, o.log)
		samples, err := session.Run()
		switch {
		case errors.Is(err, ErrPhraseAborted):
			o.term.ShowStatus("⏭ cancelled, the same phrase again")
			continue
		case errors.Is(err, ErrCaptureFailed):
			o.log.Error("capture failed", "phrase", index+1, "error", err)
			o.term.ShowStatus("⚠️ capture failed, try again")
			continue
		case err != nil:
			return "", err
		}

		o.term.ShowStatus("⚙️ recognizing...")
		text, err := o.engine.Transcribe(ctx, samples)
		if errors.Is(err, ErrEngineFailed) {
			o.log.Error("recognition failed", "phrase", index+1, "error", err)
			o.term.ShowStatus("⚠️ recognition failed, try the phrase again")
			continue
		}
		if err != nil {
			return "", err
		}
		if text == "" {
			o.term.ShowStatus("⚠️ no speech detected, try again")
			continue
		}

		o.term.ShowStatus(fmt.Sprintf("✅ heard: %s", text))
		o.log.Debug("phrase transcribed", "phrase", index+1, "text", text)
		return text, nil
	}
}
