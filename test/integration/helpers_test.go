package integration

import (
	"context"
	"testing"
	"time"

	"github.com/OlegNassikanov/voice-agent/internal/calibration"
	"github.com/OlegNassikanov/voice-agent/internal/terminal"
)

// testContext returns a context with timeout for tests
func testContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}

// requireNoError fails the test if err is not nil
func requireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// requireTrue fails the test if condition is false
func requireTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Fatalf("Expected true: %s", msg)
	}
}

// requireEqual fails the test if expected != actual
func requireEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// requireNotEmpty fails the test if value is empty
func requireNotEmpty(t *testing.T, value string, msg string) {
	t.Helper()
	if value == "" {
		t.Fatalf("Expected non-empty: %s", msg)
	}
}

// scriptedCapture returns a fixed take.
type scriptedCapture struct {
	samples []float32
}

func (c scriptedCapture) Stop() ([]float32, error) { return c.samples, nil }
func (c scriptedCapture) Abort() error             { return nil }

// scriptedRecorder hands out the same take for every Begin.
type scriptedRecorder struct {
	samples []float32
}

func (r scriptedRecorder) Begin() (calibration.Capture, error) {
	return scriptedCapture{samples: r.samples}, nil
}

// speechTake builds a loud take of n samples.
func speechTake(n int) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = 0.3
	}
	return samples
}

// toggleTakes returns the key sequence for n clean takes.
func toggleTakes(n int) []terminal.Key {
	keys := make([]terminal.Key, 0, 2*n)
	for i := 0; i < n; i++ {
		keys = append(keys, terminal.KeyToggle, terminal.KeyToggle)
	}
	return keys
}
