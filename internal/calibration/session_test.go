// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Tests for the phrase recording session
// Author:      Oleg Nassikanov
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package calibration

import (
	"errors"
	"testing"

	"github.com/OlegNassikanov/voice-agent/internal/terminal"
)

// fakeCapture is an in-flight recording double.
type fakeCapture struct {
	samples []float32
	stopErr error
	stopped bool
	aborted bool
}

func (c *fakeCapture) Stop() ([]float32, error) {
	c.stopped = true
	if c.stopErr != nil {
		return nil, c.stopErr
	}
	return c.samples, nil
}

func (c *fakeCapture) Abort() error {
	c.aborted = true
	return nil
}

// fakeRecorder hands out fake captures and can fail on selected Begin
// calls (1-based).
type fakeRecorder struct {
	begins    int
	failBegin map[int]error
	failStop  map[int]error
	captures  []*fakeCapture
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		failBegin: map[int]error{},
		failStop:  map[int]error{},
	}
}

func (r *fakeRecorder) Begin() (Capture, error) {
	r.begins++
	if err := r.failBegin[r.begins]; err != nil {
		return nil, err
	}
	c := &fakeCapture{
		samples: []float32{0.1, 0.2, 0.3},
		stopErr: r.failStop[r.begins],
	}
	r.captures = append(r.captures, c)
	return c, nil
}

// TestStateMachine_Transitions checks which state steps are legal.
func TestStateMachine_Transitions(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
		want bool
	}{
		{"arm from idle", StateIdle, StateArmedForStart, true},
		{"record without arming", StateIdle, StateRecording, false},
		{"finalize from idle", StateIdle, StateFinalized, false},
		{"start recording", StateArmedForStart, StateRecording, true},
		{"abort before start", StateArmedForStart, StateIdle, true},
		{"arm for stop", StateRecording, StateArmedForStop, true},
		{"abort while recording", StateRecording, StateIdle, true},
		{"seal the take", StateArmedForStop, StateFinalized, true},
		{"abort before stop", StateArmedForStop, StateIdle, true},
		{"rewind a sealed take", StateFinalized, StateArmedForStop, false},
		{"new round after seal", StateFinalized, StateIdle, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewStateMachine()
			sm.current = tt.from
			if got := sm.Transition(tt.to); got != tt.want {
				t.Errorf("Transition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// TestStateMachine_Reset checks Reset is legal from any state.
func TestStateMachine_Reset(t *testing.T) {
	for _, from := range []State{StateIdle, StateArmedForStart, StateRecording, StateArmedForStop, StateFinalized} {
		sm := NewStateMachine()
		sm.current = from
		sm.Reset()
		if got := sm.Current(); got != StateIdle {
			t.Errorf("Current() after Reset from %s = %s, want %s", from, got, StateIdle)
		}
	}
}

// TestSession_Run checks the toggle-toggle happy path seals the take.
func TestSession_Run(t *testing.T) {
	term := terminal.NewScript(terminal.KeyToggle, terminal.KeyToggle)
	rec := newFakeRecorder()
	session := NewSession(term, rec, nil)

	samples, err := session.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(samples) != 3 {
		t.Errorf("len(samples) = %d, want 3", len(samples))
	}
	if got := session.State(); got != StateFinalized {
		t.Errorf("State() = %s, want %s", got, StateFinalized)
	}
	if !rec.captures[0].stopped {
		t.Error("capture was not stopped")
	}
	if rec.captures[0].aborted {
		t.Error("sealed capture was aborted")
	}
}

// TestSession_AbortBeforeStart checks backing out before the take begins
// never touches the recorder.
func TestSession_AbortBeforeStart(t *testing.T) {
	term := terminal.NewScript(terminal.KeyAbort)
	rec := newFakeRecorder()
	session := NewSession(term, rec, nil)

	_, err := session.Run()
	if !errors.Is(err, ErrPhraseAborted) {
		t.Errorf("Run() error = %v, want ErrPhraseAborted", err)
	}
	if rec.begins != 0 {
		t.Errorf("Begin() called %d times, want 0", rec.begins)
	}
	if got := session.State(); got != StateIdle {
		t.Errorf("State() = %s, want %s", got, StateIdle)
	}
}

// TestSession_AbortWhileRecording checks a mid-take abort discards the
// capture and releases the recorder.
func TestSession_AbortWhileRecording(t *testing.T) {
	term := terminal.NewScript(terminal.KeyToggle, terminal.KeyAbort)
	rec := newFakeRecorder()
	session := NewSession(term, rec, nil)

	_, err := session.Run()
	if !errors.Is(err, ErrPhraseAborted) {
		t.Errorf("Run() error = %v, want ErrPhraseAborted", err)
	}
	if !rec.captures[0].aborted {
		t.Error("capture was not aborted")
	}
	if rec.captures[0].stopped {
		t.Error("discarded capture was stopped")
	}
	if got := session.State(); got != StateIdle {
		t.Errorf("State() = %s, want %s", got, StateIdle)
	}
}

// TestSession_Quit checks quitting surfaces as ErrAborted on both waits.
func TestSession_Quit(t *testing.T) {
	tests := []struct {
		name string
		keys []terminal.Key
	}{
		{"before start", []terminal.Key{terminal.KeyQuit}},
		{"while recording", []terminal.Key{terminal.KeyToggle, terminal.KeyQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newFakeRecorder()
			session := NewSession(terminal.NewScript(tt.keys...), rec, nil)

			_, err := session.Run()
			if !errors.Is(err, ErrAborted) {
				t.Errorf("Run() error = %v, want ErrAborted", err)
			}
			for _, c := range rec.captures {
				if !c.aborted {
					t.Error("capture was not aborted on quit")
				}
			}
		})
	}
}

// TestSession_BeginFails checks a microphone failure is an ErrCaptureFailed
// and leaves the session idle.
func TestSession_BeginFails(t *testing.T) {
	term := terminal.NewScript(terminal.KeyToggle)
	rec := newFakeRecorder()
	rec.failBegin[1] = errors.New("no input device")
	session := NewSession(term, rec, nil)

	_, err := session.Run()
	if !errors.Is(err, ErrCaptureFailed) {
		t.Errorf("Run() error = %v, want ErrCaptureFailed", err)
	}
	if got := session.State(); got != StateIdle {
		t.Errorf("State() = %s, want %s", got, StateIdle)
	}
}

// TestSession_StopFails checks a failure while sealing the take is an
// ErrCaptureFailed.
func TestSession_StopFails(t *testing.T) {
	term := terminal.NewScript(terminal.KeyToggle, terminal.KeyToggle)
	rec := newFakeRecorder()
	rec.failStop[1] = errors.New("stream died")
	session := NewSession(term, rec, nil)

	_, err := session.Run()
	if !errors.Is(err, ErrCaptureFailed) {
		t.Errorf("Run() error = %v, want ErrCaptureFailed", err)
	}
	if got := session.State(); got != StateIdle {
		t.Errorf("State() = %s, want %s", got, StateIdle)
	}
}

// TestSession_TerminalGone checks a dead terminal abandons the flow rather
// than spinning.
func TestSession_TerminalGone(t *testing.T) {
	session := NewSession(terminal.NewScript(), newFakeRecorder(), nil)

	_, err := session.Run()
	if !errors.Is(err, ErrAborted) {
		t.Errorf("Run() error = %v, want ErrAborted", err)
	}
}
