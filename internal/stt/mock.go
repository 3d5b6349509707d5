// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     stt
// Description: Canned engine for tests and dry runs
// Author:      Oleg Nassikanov
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package stt

import (
	"context"
	"fmt"
	"sync"
)

// Mock is a canned engine. Without queued responses it describes its input,
// which is enough to exercise the pipeline without a real recognizer.
type Mock struct {
	mu        sync.Mutex
	responses []mockResponse
	prompts   []string
}

type mockResponse struct {
	result Result
	err    error
}

// NewMock creates an empty mock engine.
func NewMock() *Mock {
	return &Mock{}
}

// Enqueue adds a canned response returned by the next Transcribe call.
func (m *Mock) Enqueue(text string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{
		result: Result{Text: text, Confidence: 1},
		err:    err,
	})
}

// Transcribe records the prompt and returns the next queued response, or a
// deterministic description of the input when the queue is empty.
func (m *Mock) Transcribe(_ context.Context, samples []float32, prompt string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)

	if len(m.responses) > 0 {
		r := m.responses[0]
		m.responses = m.responses[1:]
		return r.result, r.err
	}

	return Result{
		Text:       fmt.Sprintf("[mock transcript samples=%d]", len(samples)),
		Confidence: 1,
		Duration:   float32(len(samples)) / 16000,
	}, nil
}

// Prompts returns the prompt passed to each call so far, in order.
func (m *Mock) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Close releases nothing.
func (m *Mock) Close() error {
	return nil
}
