// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     agent
// Description: The main dictation loop
// Author:      Oleg Nassikanov
// Created:     2026-08-20
// License:     MIT
// ============================================================================

package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OlegNassikanov/voice-agent/internal/audio"
	"github.com/OlegNassikanov/voice-agent/internal/calibration"
	"github.com/OlegNassikanov/voice-agent/internal/history"
	"github.com/OlegNassikanov/voice-agent/internal/logging"
	"github.com/OlegNassikanov/voice-agent/internal/terminal"
)

const dictateHelp = "Dictation\n\n" +
	"Press [space] to start a take and [space] again to finish it.\n" +
	"Recognized text is shown below and kept in the history."

// transcriptTail is how many finished lines stay visible on screen.
const transcriptTail = 5

// dictation is one run of the main loop: record a take, recognize it,
// show and store the text, repeat until quit.
type dictation struct {
	term      terminal.Terminal
	recorder  calibration.Recorder
	processor *audio.Processor
	binder    *calibration.ContextBinder
	history   *history.Store
	log       *logging.Logger
	engine    string
	language  string
}

// run drives takes until the speaker quits or the context dies. It returns
// every recognized line in order.
func (d *dictation) run(ctx context.Context) ([]string, error) {
	var lines []string
	for {
		if ctx.Err() != nil {
			return lines, nil
		}
		d.showTranscript(lines)

		session := calibration.NewSession(d.term, d.recorder, d.log)
		samples, err := session.Run()
		switch {
		case errors.Is(err, calibration.ErrAborted):
			return lines, nil
		case errors.Is(err, calibration.ErrPhraseAborted):
			d.term.ShowStatus("⏭ take cancelled")
			continue
		case errors.Is(err, calibration.ErrCaptureFailed):
			d.log.Error("capture failed", "error", err)
			d.term.ShowStatus("⚠️ capture failed, try again")
			continue
		case err != nil:
			return lines, err
		}

		text, confidence, ok := d.recognize(ctx, samples)
		if !ok {
			continue
		}

		lines = append(lines, text)
		d.showTranscript(lines)
		d.record(ctx, samples, text, confidence)
	}
}

// recognize turns a raw take into text. A discarded take reports ok=false
// with the reason already on screen.
func (d *dictation) recognize(ctx context.Context, samples []float32) (string, float64, bool) {
	processed := d.processor.Process(samples)
	if len(processed) == 0 {
		d.term.ShowStatus("⚠️ no speech detected, take discarded")
		return "", 0, false
	}

	chunks := d.processor.Chunk(processed)
	if len(chunks) == 0 {
		d.term.ShowStatus("⚠️ take too short, discarded")
		return "", 0, false
	}

	if len(chunks) == 1 {
		d.term.ShowStatus("⚙️ recognizing...")
	} else {
		d.term.ShowStatus(fmt.Sprintf("⚙️ recognizing %d fragments...", len(chunks)))
	}

	var parts []string
	var confidence float64
	for _, chunk := range chunks {
		res, err := d.binder.Transcribe(ctx, chunk)
		if err != nil {
			d.log.Error("recognition failed", "error", err)
			d.term.ShowStatus("⚠️ recognition failed, take discarded")
			return "", 0, false
		}
		if t := strings.TrimSpace(res.Text); t != "" {
			parts = append(parts, t)
		}
		confidence += float64(res.Confidence)
	}
	confidence /= float64(len(chunks))

	text := strings.Join(parts, " ")
	if text == "" {
		d.term.ShowStatus("⚠️ nothing recognized, take discarded")
		return "", 0, false
	}

	d.term.ShowStatus(fmt.Sprintf("✅ %d words", len(strings.Fields(text))))
	return text, confidence, true
}

// record appends the finished dictation to the history. History trouble is
// logged, never fatal.
func (d *dictation) record(ctx context.Context, samples []float32, text string, confidence float64) {
	if d.history == nil {
		return
	}

	entry := &history.Entry{
		Engine:       d.engine,
		Language:     d.language,
		DurationSecs: float64(len(samples)) / float64(d.processor.SampleRate()),
		Text:         text,
		Confidence:   confidence,
		Calibrated:   d.binder.Context() != "",
	}
	if err := d.history.Add(ctx, entry); err != nil {
		d.log.Warn("dictation not recorded to history", "error", err)
	}
}

// showTranscript renders the help text plus the freshest lines.
func (d *dictation) showTranscript(lines []string) {
	prompt := dictateHelp
	if n := len(lines); n > 0 {
		tail := lines
		if n > transcriptTail {
			tail = lines[n-transcriptTail:]
		}
		prompt += "\n\n" + strings.Join(tail, "\n")
	}
	d.term.ShowPrompt(prompt)
}
