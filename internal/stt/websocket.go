// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     stt
// Description: Recognition via a streaming WebSocket server
// Author:      Oleg Nassikanov
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package stt

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/OlegNassikanov/voice-agent/internal/audio"
	"github.com/OlegNassikanov/voice-agent/internal/logging"
)

// WhisperSocket implements speech-to-text against a WebSocket server that
// accepts a JSON request header followed by one binary WAV message.
type WhisperSocket struct {
	mu         sync.Mutex
	url        string
	language   string
	sampleRate int
	conn       *websocket.Conn
	log        *logging.Logger
}

// wsRequest is the header sent before the audio payload.
type wsRequest struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
}

// wsResponse is a message from the server.
type wsResponse struct {
	Type       string  `json:"type"`
	ID         string  `json:"id,omitempty"`
	Text       string  `json:"text,omitempty"`
	Confidence float32 `json:"confidence,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// NewWhisperSocket creates a WebSocket engine for cfg.ServerURL. The
// connection is established lazily on the first request.
func NewWhisperSocket(cfg Config, log *logging.Logger) *WhisperSocket {
	return &WhisperSocket{
		url:        cfg.ServerURL,
		language:   cfg.Language,
		sampleRate: cfg.SampleRate,
		log:        log,
	}
}

// connect establishes the connection if needed. Callers hold the mutex.
func (w *WhisperSocket) connect(ctx context.Context) error {
	if w.conn != nil {
		return nil
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	w.conn = conn
	w.log.Info("connected to transcription socket", "url", w.url)
	return nil
}

// drop discards a broken connection so the next request reconnects.
func (w *WhisperSocket) drop() {
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
}

// Transcribe sends the samples and waits for the matching result message.
// Requests are serialized; the microphone produces one take at a time
// anyway.
func (w *WhisperSocket) Transcribe(ctx context.Context, samples []float32, prompt string) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("no audio samples")
	}

	wavData, err := audio.WAVBytes(samples, w.sampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create WAV: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.connect(ctx); err != nil {
		return Result{}, err
	}

	var deadline time.Time
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	w.conn.SetWriteDeadline(deadline)
	w.conn.SetReadDeadline(deadline)

	id := uuid.NewString()
	req := wsRequest{Type: "transcribe", ID: id, Language: w.language, Prompt: prompt}
	if err := w.conn.WriteJSON(req); err != nil {
		w.drop()
		return Result{}, fmt.Errorf("failed to send request: %w", err)
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, wavData); err != nil {
		w.drop()
		return Result{}, fmt.Errorf("failed to send audio: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.drop()
			return Result{}, ctx.Err()
		default:
		}

		var resp wsResponse
		if err := w.conn.ReadJSON(&resp); err != nil {
			w.drop()
			return Result{}, fmt.Errorf("failed to read response: %w", err)
		}

		switch resp.Type {
		case "result":
			if resp.ID != "" && resp.ID != id {
				// Stale reply from an earlier request.
				continue
			}
			confidence := resp.Confidence
			if confidence == 0 {
				confidence = 0.9
			}
			return Result{
				Text:       strings.TrimSpace(resp.Text),
				Language:   w.language,
				Confidence: confidence,
				Duration:   float32(len(samples)) / float32(w.sampleRate),
			}, nil

		case "error":
			return Result{}, fmt.Errorf("server error: %s", resp.Error)

		case "pong":
			continue

		default:
			continue
		}
	}
}

// Close closes the connection.
func (w *WhisperSocket) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.conn != nil {
		err := w.conn.Close()
		w.conn = nil
		return err
	}
	return nil
}
