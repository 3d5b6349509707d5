// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     stt
// Description: Recognition via the whisper.cpp CLI
// Author:      Oleg Nassikanov
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/OlegNassikanov/voice-agent/internal/audio"
	"github.com/OlegNassikanov/voice-agent/internal/logging"
)

// WhisperCLI implements speech-to-text by shelling out to whisper.cpp.
type WhisperCLI struct {
	command    []string
	modelPath  string
	language   string
	sampleRate int
	tempDir    string
	log        *logging.Logger
}

// NewWhisperCLI creates a whisper.cpp CLI engine. The configured command is
// parsed shell-style, so it may carry extra arguments.
func NewWhisperCLI(cfg Config, log *logging.Logger) (*WhisperCLI, error) {
	parts, err := shellwords.NewParser().Parse(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recognizer command: %w", err)
	}
	if len(parts) == 0 {
		parts = []string{"whisper-cli"}
	}

	binary := findWhisperBinary(parts[0])
	if binary == "" {
		return nil, fmt.Errorf("whisper binary not found: %s", parts[0])
	}
	parts[0] = binary

	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	tempDir, err := os.MkdirTemp("", "voice-agent-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &WhisperCLI{
		command:    parts,
		modelPath:  cfg.ModelPath,
		language:   cfg.Language,
		sampleRate: cfg.SampleRate,
		tempDir:    tempDir,
		log:        log,
	}, nil
}

// findWhisperBinary resolves the binary via PATH, then common install
// locations.
func findWhisperBinary(name string) string {
	if path, err := exec.LookPath(name); err == nil {
		return path
	}

	locations := []string{
		"/opt/homebrew/bin/whisper-cli",
		"/usr/local/bin/whisper-cli",
		"/usr/bin/whisper-cli",
		"/opt/homebrew/bin/whisper",
		"/usr/local/bin/whisper",
		"/usr/bin/whisper",
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Transcribe writes the samples to a temp WAV file and runs whisper.cpp
// over it.
func (w *WhisperCLI) Transcribe(ctx context.Context, samples []float32, prompt string) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("no audio samples")
	}

	wavPath := filepath.Join(w.tempDir, fmt.Sprintf("audio_%d.wav", time.Now().UnixNano()))
	if err := audio.WriteWAVFile(wavPath, samples, w.sampleRate); err != nil {
		return Result{}, fmt.Errorf("failed to write WAV file: %w", err)
	}
	defer os.Remove(wavPath)

	args := append([]string(nil), w.command[1:]...)
	args = append(args,
		"--model", w.modelPath,
		"--language", w.language,
		"--no-prints",
		"--output-txt",
		"--output-file", "-",
	)
	if prompt != "" {
		args = append(args, "--prompt", prompt)
	}
	args = append(args, wavPath)

	out, err := w.run(ctx, args)
	if err != nil {
		// Older whisper.cpp builds only understand the short flags.
		short := append([]string(nil), w.command[1:]...)
		short = append(short, "-m", w.modelPath, "-l", w.language, "-np")
		if prompt != "" {
			short = append(short, "--prompt", prompt)
		}
		short = append(short, wavPath)

		out2, err2 := w.run(ctx, short)
		if err2 != nil {
			return Result{}, err
		}
		out = out2
	}

	return Result{
		Text:       cleanTranscript(out),
		Language:   w.language,
		Confidence: 0.9, // whisper.cpp reports none
		Duration:   float32(len(samples)) / float32(w.sampleRate),
	}, nil
}

func (w *WhisperCLI) run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, w.command[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	w.log.Debug("running recognizer", "binary", w.command[0], "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper failed: %w, stderr: %s", err, stderr.String())
	}
	return stdout.String(), nil
}

// cleanTranscript strips whisper timestamp prefixes and joins the remaining
// lines. Timestamped lines look like "[00:00:00.000 --> 00:00:05.000] text".
func cleanTranscript(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.Contains(line, "-->") {
			if idx := strings.Index(line, "]"); idx != -1 {
				line = strings.TrimSpace(line[idx+1:])
			}
		}
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, " ")
}

// Close removes the engine's temp directory.
func (w *WhisperCLI) Close() error {
	if w.tempDir != "" {
		os.RemoveAll(w.tempDir)
	}
	return nil
}
