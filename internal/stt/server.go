// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     stt
// Description: Recognition via a whisper HTTP server
// Author:      Oleg Nassikanov
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/OlegNassikanov/voice-agent/internal/audio"
	"github.com/OlegNassikanov/voice-agent/internal/logging"
)

// WhisperServer implements speech-to-text against an OpenAI-compatible
// transcription endpoint (go-whisper server, LocalAI, faster-whisper).
type WhisperServer struct {
	baseURL    string
	language   string
	sampleRate int
	maxRetries int
	client     *http.Client
	log        *logging.Logger
}

// NewWhisperServer creates an HTTP engine for cfg.ServerURL.
func NewWhisperServer(cfg Config, log *logging.Logger) *WhisperServer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	return &WhisperServer{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		language:   cfg.Language,
		sampleRate: cfg.SampleRate,
		maxRetries: retries,
		client:     &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Transcribe posts the samples as a WAV upload, retrying transient server
// failures with exponential backoff.
func (w *WhisperServer) Transcribe(ctx context.Context, samples []float32, prompt string) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("no audio samples")
	}

	wavData, err := audio.WAVBytes(samples, w.sampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create WAV: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			if backoff > 30*time.Second {
				backoff = 30 * time.Second
			}
			w.log.Warn("retrying transcription request",
				"attempt", attempt, "backoff", backoff, "error", lastErr)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return Result{}, ctx.Err()
			}
		}

		text, err := w.doRequest(ctx, wavData, prompt)
		if err == nil {
			return Result{
				Text:       text,
				Language:   w.language,
				Confidence: 0.9,
				Duration:   float32(len(samples)) / float32(w.sampleRate),
			}, nil
		}

		lastErr = err
		if !isRetryable(err) {
			break
		}
	}

	return Result{}, fmt.Errorf("transcription failed after %d attempts: %w", w.maxRetries+1, lastErr)
}

// doRequest performs a single multipart upload.
func (w *WhisperServer) doRequest(ctx context.Context, wavData []byte, prompt string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fileWriter, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := fileWriter.Write(wavData); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}

	fields := map[string]string{
		"response_format": "json",
	}
	if w.language != "" {
		fields["language"] = w.language
	}
	if prompt != "" {
		fields["prompt"] = prompt
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	url := w.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response JSON: %w", err)
	}

	return strings.TrimSpace(response.Text), nil
}

// isRetryable reports whether a failed request is worth repeating. Server
// errors, rate limiting and transport problems are; client errors are not.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := err.Error()
	if strings.Contains(errStr, "HTTP error 5") ||
		strings.Contains(errStr, "HTTP error 429") {
		return true
	}
	if strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "refused") {
		return true
	}

	return false
}

// Close releases resources.
func (w *WhisperServer) Close() error {
	w.client.CloseIdleConnections()
	return nil
}
