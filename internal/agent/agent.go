// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     agent
// Description: Process wiring and the calibration-then-dictation lifecycle
// Author:      Oleg Nassikanov
// Created:     2026-08-20
// License:     MIT
// ============================================================================

// Package agent assembles the recorder, recognizer, profile store and
// terminal into the running dictation process.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/OlegNassikanov/voice-agent/internal/audio"
	"github.com/OlegNassikanov/voice-agent/internal/calibration"
	"github.com/OlegNassikanov/voice-agent/internal/config"
	"github.com/OlegNassikanov/voice-agent/internal/history"
	"github.com/OlegNassikanov/voice-agent/internal/logging"
	"github.com/OlegNassikanov/voice-agent/internal/stt"
	"github.com/OlegNassikanov/voice-agent/internal/terminal"
	"github.com/OlegNassikanov/voice-agent/internal/vad"
)

// App holds the wired collaborators of one voice-agent process.
type App struct {
	cfg       *config.Config
	log       *logging.Logger
	recorder  *audio.Recorder
	processor *audio.Processor
	engine    stt.Transcriber
	profiles  *calibration.ProfileStore
	history   *history.Store
}

// New builds the process from its configuration. The recorder and engine
// must be usable; voice activity detection and history degrade to warnings.
func New(cfg *config.Config, log *logging.Logger) (*App, error) {
	recorder, err := audio.NewRecorder(audio.RecorderConfig{
		SampleRate:      cfg.Audio.SampleRate,
		FramesPerBuffer: cfg.Audio.FramesPerBuffer,
		Channels:        cfg.Audio.Channels,
		DeviceName:      cfg.Audio.Device,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open recorder: %w", err)
	}

	var detector vad.Detector
	if cfg.VAD.Enabled {
		d, err := vad.NewWebRTC(vad.Config{
			SampleRate: cfg.Audio.SampleRate,
			Mode:       cfg.VAD.Mode,
		})
		if err != nil {
			log.Warn("voice activity detection unavailable, keeping takes untrimmed", "error", err)
		} else {
			detector = d
		}
	}

	processor := audio.NewProcessor(audio.ProcessorConfig{
		SampleRate: cfg.Audio.SampleRate,
		Detector:   detector,
		Padding:    cfg.VAD.Padding.Duration,
		MinChunk:   cfg.Audio.MinUtterance.Duration,
	}, log)

	engine, err := stt.New(stt.Config{
		Engine:     cfg.STT.Engine,
		Command:    cfg.STT.Command,
		ModelPath:  cfg.STT.ModelPath,
		Language:   cfg.STT.Language,
		ServerURL:  cfg.STT.ServerURL,
		SampleRate: cfg.Audio.SampleRate,
		Timeout:    cfg.STT.Timeout.Duration,
		MaxRetries: cfg.STT.MaxRetries,
	}, log)
	if err != nil {
		recorder.Close()
		return nil, fmt.Errorf("failed to build recognizer: %w", err)
	}

	profilePath := cfg.Profile.Path
	if profilePath == "" {
		profilePath, err = calibration.DefaultProfilePath()
		if err != nil {
			engine.Close()
			recorder.Close()
			return nil, err
		}
	}

	app := &App{
		cfg:       cfg,
		log:       log,
		recorder:  recorder,
		processor: processor,
		engine:    engine,
		profiles:  calibration.NewProfileStore(profilePath),
	}

	if cfg.History.Enabled {
		app.history = openHistory(cfg.History.Path, log)
	}

	return app, nil
}

// openHistory opens the dictation history. History never blocks dictation,
// so failures are logged and swallowed.
func openHistory(path string, log *logging.Logger) *history.Store {
	var err error
	if path == "" {
		path, err = history.DefaultPath()
		if err != nil {
			log.Warn("dictation history unavailable", "error", err)
			return nil
		}
	}

	store, err := history.NewStore(path)
	if err != nil {
		log.Warn("dictation history unavailable", "error", err)
		return nil
	}
	return store
}

// ProfilePath returns where the voice profile is stored.
func (a *App) ProfilePath() string {
	return a.profiles.Path()
}

// HasProfile reports whether a profile file is stored, readable or not.
func (a *App) HasProfile() bool {
	return a.profiles.Exists()
}

// Close releases the engine, history and capture device.
func (a *App) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.log.Warn("failed to close history", "error", err)
		}
	}
	if err := a.engine.Close(); err != nil {
		a.log.Warn("failed to close recognizer", "error", err)
	}
	if err := a.recorder.Close(); err != nil {
		a.log.Warn("failed to close recorder", "error", err)
	}
}

// Run applies the startup policy, binds the profile and drives the
// dictation loop until the speaker quits. It returns the dictated lines so
// the caller can print them once the screen is gone.
func (a *App) Run(ctx context.Context, term terminal.Terminal, force bool) ([]string, error) {
	profile, err := a.prepareProfile(ctx, term, force)
	if err != nil {
		return nil, err
	}

	binder := calibration.NewContextBinder(a.engine, profile)
	if profile != nil {
		a.log.Info("voice profile bound", "context_chars", len(profile.ContextString))
	} else {
		a.log.Info("dictating without a voice profile")
	}

	d := &dictation{
		term:      term,
		recorder:  recorderAdapter{a.recorder},
		processor: a.processor,
		binder:    binder,
		history:   a.history,
		log:       a.log,
		engine:    a.cfg.STT.Engine,
		language:  a.cfg.STT.Language,
	}
	return d.run(ctx)
}

// Calibrate runs the calibration flow on its own. Unlike the startup path,
// the fresh profile is gone when this process exits, so a failed save is
// an error here.
func (a *App) Calibrate(ctx context.Context, term terminal.Terminal) error {
	profile, err := a.runCalibration(ctx, term)
	if err != nil {
		return err
	}
	if err := a.profiles.Save(profile); err != nil {
		return err
	}
	a.log.Info("voice profile saved", "path", a.profiles.Path())
	return nil
}

// prepareProfile applies the startup policy and returns the profile to
// bind, which may be nil when the speaker declines calibration and nothing
// usable is stored.
func (a *App) prepareProfile(ctx context.Context, term terminal.Terminal, force bool) (*calibration.VoiceProfile, error) {
	stored, loadErr := a.profiles.Load()
	switch {
	case loadErr == nil:
		a.log.Info("voice profile loaded", "path", a.profiles.Path(),
			"created_at", stored.CreatedAt)
	case errors.Is(loadErr, calibration.ErrNoProfile):
		a.log.Info("no voice profile found", "path", a.profiles.Path())
	case errors.Is(loadErr, calibration.ErrCorruptProfile):
		a.log.Warn("stored voice profile is corrupt, recalibrating", "error", loadErr)
	default:
		a.log.Warn("voice profile unreadable, recalibrating", "error", loadErr)
	}

	if !NeedsCalibration(force, loadErr) {
		return stored, nil
	}

	profile, err := a.calibrate(ctx, term)
	switch {
	case errors.Is(err, calibration.ErrAborted):
		// The speaker backed out. A stored profile stays in use;
		// otherwise dictation runs unprimed.
		if loadErr == nil {
			a.log.Info("calibration abandoned, keeping the stored profile")
			return stored, nil
		}
		a.log.Info("calibration abandoned, continuing without a profile")
		return nil, nil
	case err != nil:
		return nil, err
	}
	return profile, nil
}

// runCalibration drives the six-phrase flow.
func (a *App) runCalibration(ctx context.Context, term terminal.Terminal) (*calibration.VoiceProfile, error) {
	orch := calibration.NewOrchestrator(term, recorderAdapter{a.recorder},
		calibration.NewPhraseTranscriber(a.engine, a.processor), a.log)
	return orch.Run(ctx)
}

// calibrate runs the flow and saves the profile. A failed save is reported
// but keeps the fresh profile usable for this session.
func (a *App) calibrate(ctx context.Context, term terminal.Terminal) (*calibration.VoiceProfile, error) {
	profile, err := a.runCalibration(ctx, term)
	if err != nil {
		return nil, err
	}

	if err := a.profiles.Save(profile); err != nil {
		a.log.Error("voice profile not saved", "error", err, "path", a.profiles.Path())
		term.ShowStatus("⚠️ profile could not be saved, using it for this session only")
	} else {
		a.log.Info("voice profile saved", "path", a.profiles.Path())
		term.ShowStatus("✅ voice profile saved")
	}
	return profile, nil
}

// recorderAdapter lets the concrete recorder satisfy the calibration
// package's capture interface.
type recorderAdapter struct {
	rec *audio.Recorder
}

func (r recorderAdapter) Begin() (calibration.Capture, error) {
	c, err := r.rec.Begin()
	if err != nil {
		return nil, err
	}
	return c, nil
}
