// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     audio
// Description: Capture post-processing before recognition
// Author:      Oleg Nassikanov
// Created:     2026-08-13
// License:     MIT
// ============================================================================

package audio

import (
	"time"

	"github.com/OlegNassikanov/voice-agent/internal/logging"
	"github.com/OlegNassikanov/voice-agent/internal/vad"
)

const (
	// ChunkSeconds is the fragment length sent to the recognizer. Whisper
	// quality drops on inputs much longer than 30 seconds.
	ChunkSeconds = 25

	// OverlapSeconds is shared between neighbouring fragments so words on
	// a boundary appear in both.
	OverlapSeconds = 2
)

// Processor cleans up finished captures before recognition: trims leading
// and trailing silence, normalizes the level and splits long recordings
// into overlapping fragments.
type Processor struct {
	sampleRate int
	detector   vad.Detector
	padding    time.Duration
	minChunk   time.Duration
	log        *logging.Logger
}

// ProcessorConfig holds configuration for audio post-processing.
type ProcessorConfig struct {
	SampleRate int
	Detector   vad.Detector  // nil disables silence trimming
	Padding    time.Duration // audio kept around the detected speech span
	MinChunk   time.Duration // fragments shorter than this are dropped
}

// NewProcessor creates a processor. A nil detector turns silence trimming
// into a pass-through.
func NewProcessor(cfg ProcessorConfig, log *logging.Logger) *Processor {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.MinChunk <= 0 {
		cfg.MinChunk = time.Second
	}
	if cfg.Padding < 0 {
		cfg.Padding = 0
	}

	return &Processor{
		sampleRate: cfg.SampleRate,
		detector:   cfg.Detector,
		padding:    cfg.Padding,
		minChunk:   cfg.MinChunk,
		log:        log,
	}
}

// Process trims silence from both ends and normalizes the level. It returns
// nil when the capture contains no speech at all.
func (p *Processor) Process(samples []float32) []float32 {
	trimmed := p.trimSilence(samples)
	if len(trimmed) == 0 {
		return nil
	}
	return normalize(trimmed)
}

// trimSilence cuts everything before the first and after the last frame the
// detector classifies as speech, keeping padding around the span. If the
// detector fails the take is kept untrimmed.
func (p *Processor) trimSilence(samples []float32) []float32 {
	if p.detector == nil || len(samples) == 0 {
		return samples
	}

	frameSize := p.detector.FrameSize()
	first, last := -1, 0
	for pos := 0; pos < len(samples); pos += frameSize {
		end := pos + frameSize
		if end > len(samples) {
			end = len(samples)
		}
		speech, err := p.detector.IsSpeech(samples[pos:end])
		if err != nil {
			p.log.Warn("voice activity detection failed, keeping full take", "error", err)
			return samples
		}
		if speech {
			if first < 0 {
				first = pos
			}
			last = end
		}
	}
	if first < 0 {
		return nil
	}

	pad := int(p.padding.Seconds() * float64(p.sampleRate))
	start := first - pad
	if start < 0 {
		start = 0
	}
	stop := last + pad
	if stop > len(samples) {
		stop = len(samples)
	}
	return samples[start:stop]
}

// normalize scales samples so the peak sits at 0.95, leaving headroom
// against clipping. Near-silent audio is returned unscaled.
func normalize(samples []float32) []float32 {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}

	out := make([]float32, len(samples))
	if peak < 1e-6 {
		copy(out, samples)
		return out
	}

	scale := 0.95 / peak
	for i, s := range samples {
		out[i] = s * scale
	}
	return out
}

// Chunk splits audio into fragments of at most ChunkSeconds with
// OverlapSeconds shared between neighbours. Fragments shorter than the
// minimum are dropped, so audio below the minimum yields no fragments
// at all.
func (p *Processor) Chunk(samples []float32) [][]float32 {
	chunkSamples := ChunkSeconds * p.sampleRate
	overlapSamples := OverlapSeconds * p.sampleRate
	minSamples := int(p.minChunk.Seconds() * float64(p.sampleRate))

	if len(samples) <= chunkSamples {
		if len(samples) >= minSamples {
			return [][]float32{samples}
		}
		return nil
	}

	step := chunkSamples - overlapSamples
	var chunks [][]float32
	pos := 0

	for pos < len(samples) {
		end := pos + chunkSamples
		if end > len(samples) {
			end = len(samples)
		}
		if end-pos >= minSamples {
			chunks = append(chunks, samples[pos:end])
		}

		pos += step

		// Avoid a tiny trailing fragment.
		if len(samples)-pos < minSamples && len(chunks) > 0 {
			break
		}
	}

	return chunks
}

// SampleRate returns the rate the processor assumes for its inputs.
func (p *Processor) SampleRate() int {
	return p.sampleRate
}
