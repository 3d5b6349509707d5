// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     audio
// Description: WAV encoding for recognizer hand-off
// Author:      Oleg Nassikanov
// Created:     2026-08-13
// License:     MIT
// ============================================================================

package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes samples as 16-bit mono PCM WAV.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	buffer := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           float32ToPCM(samples),
		SourceBitDepth: 16,
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	if err := enc.Write(buffer); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// WriteWAVFile writes samples to path as a WAV file.
func WriteWAVFile(path string, samples []float32, sampleRate int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}

	if err := WriteWAV(file, samples, sampleRate); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WAVBytes encodes samples into an in-memory WAV document. The encoder
// needs a seekable writer to patch up the header, so this goes through a
// temporary file.
func WAVBytes(samples []float32, sampleRate int) ([]byte, error) {
	file, err := os.CreateTemp("", "voice-agent-*.wav")
	if err != nil {
		return nil, fmt.Errorf("temp file: %w", err)
	}
	name := file.Name()
	defer os.Remove(name)

	if err := WriteWAV(file, samples, sampleRate); err != nil {
		file.Close()
		return nil, err
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("close wav file: %w", err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read wav file: %w", err)
	}
	return data, nil
}

// float32ToPCM converts samples in [-1, 1] to 16-bit integer PCM, clamping
// anything outside the range.
func float32ToPCM(samples []float32) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		out[i] = int(s * 32767)
	}
	return out
}
