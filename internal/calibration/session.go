// ============================================================================
// voice-agent - Personalized Voice Dictation
// ============================================================================
//
// Package:     calibration
// Description: Phrase recording session state machine
// Author:      Oleg Nassikanov
// Created:     2026-08-17
// License:     MIT
// ============================================================================

package calibration

import (
	"fmt"
	"sync"

	"github.com/OlegNassikanov/voice-agent/internal/logging"
	"github.com/OlegNassikanov/voice-agent/internal/terminal"
)

// State represents where a recording session stands.
type State int

const (
	// StateIdle - nothing armed, no capture resources held
	StateIdle State = iota

	// StateArmedForStart - waiting for the speaker to start the take
	StateArmedForStart

	// StateRecording - capture is being opened
	StateRecording

	// StateArmedForStop - capture running, waiting for the stop toggle
	StateArmedForStop

	// StateFinalized - take sealed, samples available
	StateFinalized
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmedForStart:
		return "armed-for-start"
	case StateRecording:
		return "recording"
	case StateArmedForStop:
		return "armed-for-stop"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Icon returns an icon for the state.
func (s State) Icon() string {
	switch s {
	case StateIdle:
		return "⏸"
	case StateArmedForStart:
		return "🎙"
	case StateRecording, StateArmedForStop:
		return "🔴"
	case StateFinalized:
		return "✅"
	default:
		return "?"
	}
}

// StateMachine guards the legal order of session states.
type StateMachine struct {
	mu      sync.RWMutex
	current State
}

// NewStateMachine creates a machine in StateIdle.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StateIdle}
}

// Current returns the current state.
func (sm *StateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// Transition changes to a new state. It returns false when the step is not
// a legal one.
func (sm *StateMachine) Transition(next State) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !isValidTransition(sm.current, next) {
		return false
	}
	sm.current = next
	return true
}

// Reset puts the machine back to StateIdle. Always legal; abandoning a
// session discards whatever it held.
func (sm *StateMachine) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.current = StateIdle
}

// isValidTransition checks if a state transition is valid.
func isValidTransition(from, to State) bool {
	validTransitions := map[State][]State{
		StateIdle:          {StateArmedForStart},
		StateArmedForStart: {StateRecording, StateIdle},
		StateRecording:     {StateArmedForStop, StateIdle},
		StateArmedForStop:  {StateFinalized, StateIdle},
		StateFinalized:     {StateIdle},
	}

	validTargets, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, valid := range validTargets {
		if valid == to {
			return true
		}
	}
	return false
}

// Recorder hands out one live capture at a time.
type Recorder interface {
	Begin() (Capture, error)
}

// Capture is an in-flight recording. Stop seals and returns the take,
// Abort discards it; both release the recorder.
type Capture interface {
	Stop() ([]float32, error)
	Abort() error
}

// Session drives one phrase take through its states. Create a fresh session
// for every attempt.
type Session struct {
	term     terminal.Terminal
	recorder Recorder
	machine  *StateMachine
	log      *logging.Logger
}

// NewSession creates an idle session.
func NewSession(term terminal.Terminal, recorder Recorder, log *logging.Logger) *Session {
	return &Session{
		term:     term,
		recorder: recorder,
		machine:  NewStateMachine(),
		log:      log,
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.machine.Current()
}

// Run arms the session and drives it to a sealed take. The speaker backing
// out surfaces as ErrPhraseAborted (retry the phrase) or ErrAborted (leave
// the flow); microphone trouble as ErrCaptureFailed. On every non-nil error
// the capture, if any, has been discarded and the session is idle again.
func (s *Session) Run() ([]float32, error) {
	if err := s.transition(StateArmedForStart); err != nil {
		return nil, err
	}
	s.term.ShowStatus(StateArmedForStart.Icon() + " space to start recording")

	if err := s.waitToggle(); err != nil {
		s.machine.Reset()
		return nil, err
	}

	capture, err := s.recorder.Begin()
	if err != nil {
		s.machine.Reset()
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	sealed := false
	defer func() {
		if !sealed {
			capture.Abort()
		}
	}()

	if err := s.transition(StateRecording); err != nil {
		return nil, err
	}
	if err := s.transition(StateArmedForStop); err != nil {
		return nil, err
	}
	s.term.ShowStatus(StateArmedForStop.Icon() + " recording... space to stop")

	if err := s.waitToggle(); err != nil {
		s.machine.Reset()
		return nil, err
	}

	samples, err := capture.Stop()
	sealed = true
	if err != nil {
		s.machine.Reset()
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	if err := s.transition(StateFinalized); err != nil {
		return nil, err
	}
	s.log.Debug("take sealed", "samples", len(samples))
	return samples, nil
}

// waitToggle blocks until the toggle key, mapping abort and quit to their
// error kinds.
func (s *Session) waitToggle() error {
	for {
		key, err := s.term.NextKey()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAborted, err)
		}
		switch key {
		case terminal.KeyToggle:
			return nil
		case terminal.KeyAbort:
			return ErrPhraseAborted
		case terminal.KeyQuit:
			return ErrAborted
		}
	}
}

// transition moves the machine or reports a sequencing bug.
func (s *Session) transition(next State) error {
	from := s.machine.Current()
	if !s.machine.Transition(next) {
		return fmt.Errorf("invalid session transition: %s -> %s", from, next)
	}
	s.log.Debug("session state", "from", from, "to", next)
	return nil
}
